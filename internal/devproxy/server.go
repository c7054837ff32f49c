// Package devproxy is the local reverse proxy used in development. The client
// resolves its base URL to this listener, which forwards to the real backend
// so the browser-style cross-origin rules never apply.
package devproxy

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"collectibles/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Server forwards /<prefix>/* to the upstream origin.
type Server struct {
	upstream *url.URL
	prefix   string
	listen   string
	engine   *gin.Engine
	proxy    *httputil.ReverseProxy
	log      *logrus.Entry
}

// New builds the proxy from cfg: the upstream comes from API_TARGET (or the
// fallback origin) and the listen address from DEV_PROXY_ADDR.
func New(cfg config.Config, log *logrus.Entry) (*Server, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("component", "devproxy")

	upstream, err := url.Parse(config.UpstreamOrigin(cfg))
	if err != nil || upstream.Host == "" {
		return nil, fmt.Errorf("devproxy: invalid upstream %q", config.UpstreamOrigin(cfg))
	}
	listen, err := listenAddr(cfg.DevProxyAddr)
	if err != nil {
		return nil, err
	}

	prefix := "/" + strings.Trim(strings.TrimSpace(cfg.APIPrefix), "/")
	if prefix == "/" {
		return nil, errors.New("devproxy: API_PREFIX must not be empty")
	}

	s := &Server{
		upstream: upstream,
		prefix:   prefix,
		listen:   listen,
		log:      log,
	}
	s.proxy = &httputil.ReverseProxy{
		Rewrite:      s.rewrite,
		ErrorHandler: s.upstreamError,
	}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(LoggingMiddleware(s.log))
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "upstream": s.upstream.String()})
	})
	r.Any(s.prefix+"/*path", func(c *gin.Context) {
		s.proxy.ServeHTTP(c.Writer, c.Request)
	})
	r.NoRoute(NotFound)
	return r
}

// Handler exposes the engine, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr is the host:port the server listens on.
func (s *Server) Addr() string {
	return s.listen
}

// Upstream is the origin requests are forwarded to.
func (s *Server) Upstream() string {
	return s.upstream.String()
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithFields(logrus.Fields{
			"addr":     s.listen,
			"prefix":   s.prefix,
			"upstream": s.upstream.String(),
		}).Info("dev_proxy_started")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.log.WithError(err).Error("dev_proxy_failed")
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("dev_proxy_stopping")
		return httpServer.Shutdown(shutdownCtx)
	}
}

// rewrite keeps the path unchanged: the backend serves under the same prefix.
func (s *Server) rewrite(pr *httputil.ProxyRequest) {
	pr.SetURL(s.upstream)
	pr.Out.Host = s.upstream.Host
	pr.SetXForwarded()
	// The backend answers CORS itself only for its own origin.
	pr.Out.Header.Del("Origin")
	pr.Out.Header.Del("Referer")
}

func (s *Server) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	code := ErrCodeUpstreamUnavailable
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		status = http.StatusGatewayTimeout
		code = ErrCodeUpstreamTimeout
	}
	s.log.WithError(err).WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Warn("dev_proxy_upstream_failed")
	writeError(w, status, APIError{
		Code:     code,
		Message:  err.Error(),
		Upstream: s.upstream.String(),
	})
}

func listenAddr(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "127.0.0.1:5173", nil
	}
	if !strings.Contains(value, "://") {
		value = "http://" + value
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("devproxy: invalid DEV_PROXY_ADDR %q", raw)
	}
	if parsed.Port() == "" {
		return net.JoinHostPort(parsed.Hostname(), "80"), nil
	}
	return parsed.Host, nil
}
