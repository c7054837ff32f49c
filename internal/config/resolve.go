package config

import (
	"net/url"
	"strings"
)

// FallbackOrigin is used when nothing in the environment names a backend.
const FallbackOrigin = "https://api.collectmall.example"

// Source names the rule that produced a Target.
type Source string

const (
	SourceOverride Source = "override"
	SourceTarget   Source = "target"
	SourceDevProxy Source = "dev_proxy"
	SourceFallback Source = "fallback"
)

// Target is the resolved place requests and assets are issued against.
type Target struct {
	// BaseURL is prepended to every endpoint path.
	BaseURL string
	// Origin is scheme://host[:port] used for asset URLs.
	Origin string
	Source Source

	pageScheme string
}

// Resolve decides, once at startup, which base URL to use.
//
// Order: explicit API_BASE_URL, origin derived from API_TARGET, the dev proxy
// route when running in development, then FallbackOrigin.
func Resolve(cfg Config) Target {
	prefix := normalisePrefix(cfg.APIPrefix)
	scheme := strings.TrimSuffix(strings.TrimSpace(cfg.PageScheme), ":")
	if scheme == "" {
		scheme = "https"
	}

	if override := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/"); override != "" {
		return Target{
			BaseURL:    override,
			Origin:     originOf(override),
			Source:     SourceOverride,
			pageScheme: scheme,
		}
	}

	if origin := originOf(cfg.APITarget); origin != "" {
		return Target{
			BaseURL:    origin + prefix,
			Origin:     origin,
			Source:     SourceTarget,
			pageScheme: scheme,
		}
	}

	if cfg.IsDevelopment() {
		origin := originOf(cfg.DevProxyAddr)
		if origin == "" {
			origin = "http://127.0.0.1:5173"
		}
		return Target{
			BaseURL:    origin + prefix,
			Origin:     origin,
			Source:     SourceDevProxy,
			pageScheme: scheme,
		}
	}

	return Target{
		BaseURL:    FallbackOrigin + prefix,
		Origin:     FallbackOrigin,
		Source:     SourceFallback,
		pageScheme: scheme,
	}
}

// UpstreamOrigin is the real backend origin the dev proxy forwards to.
func UpstreamOrigin(cfg Config) string {
	if origin := originOf(cfg.APITarget); origin != "" {
		return origin
	}
	if origin := originOf(cfg.APIBaseURL); origin != "" {
		return origin
	}
	return FallbackOrigin
}

// AssetURL turns a possibly relative path returned by the server into an
// absolute URL.
func (t Target) AssetURL(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	lower := strings.ToLower(value)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "blob:") {
		return value
	}

	if strings.HasPrefix(value, "//") {
		return t.scheme() + ":" + value
	}

	origin := strings.TrimRight(t.Origin, "/")
	if strings.HasPrefix(value, "/") {
		return origin + value
	}
	return origin + "/" + value
}

func (t Target) scheme() string {
	if parsed, err := url.Parse(t.Origin); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		return parsed.Scheme
	}
	if t.pageScheme != "" {
		return t.pageScheme
	}
	return "https"
}

func originOf(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if !strings.Contains(value, "://") {
		value = "https://" + value
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

func normalisePrefix(value string) string {
	trimmed := strings.Trim(strings.TrimSpace(value), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}
