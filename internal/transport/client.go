// Package transport is the single chokepoint for every call to the platform
// API: header conventions, body encoding, response parsing and error shape.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"collectibles/internal/entity/common"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	// TokenHeader carries the session token.
	TokenHeader = "ba-user-token"
	// LegacyTokenHeader is read by an older auth middleware. It is sent empty.
	LegacyTokenHeader = "batoken"

	parseSnippetLimit = 100
)

// Options configures a Client.
type Options struct {
	BaseURL          string
	LegacyAuthHeader bool
	Logger           *logrus.Entry
	// HTTPClient overrides the underlying client, mostly for tests.
	HTTPClient *http.Client
	UserAgent  string
}

// Request is one API call. Path is relative to the base URL.
type Request struct {
	Method string
	Path   string
	Header map[string]string
	Query  map[string]string
	Body   Body
	Token  string
}

// Result is a parsed 2xx response.
type Result struct {
	Status  int
	Header  http.Header
	Payload json.RawMessage
}

// Client issues single-attempt requests against one base URL.
type Client struct {
	rc      *resty.Client
	baseURL string
	legacy  bool
	log     *logrus.Entry
}

// New builds a Client. Retries stay disabled: form submissions are not
// idempotent.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	logger = logger.WithField("component", "transport")

	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}
	rc.SetRetryCount(0).
		SetLogger(logger)
	if ua := strings.TrimSpace(opts.UserAgent); ua != "" {
		rc.SetHeader("User-Agent", ua)
	}

	if !opts.LegacyAuthHeader {
		logger.WithField("header", LegacyTokenHeader).Warn("legacy_auth_header_disabled")
	}

	return &Client{
		rc:      rc,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		legacy:  opts.LegacyAuthHeader,
		log:     logger,
	}
}

// BaseURL returns the prefix prepended to every request path.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends req once and parses the response.
func (c *Client) Do(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	fullURL := c.url(req.Path)
	log := requestLogger(ctx, c.log, method, req.Path)

	r := c.rc.R().SetContext(ctx)
	for k, v := range req.Header {
		r.SetHeader(k, v)
	}
	if len(req.Query) > 0 {
		r.SetQueryParams(req.Query)
	}
	if req.Token != "" {
		r.SetHeader(TokenHeader, req.Token)
		if c.legacy && !hasHeader(req.Header, LegacyTokenHeader) {
			r.SetHeader(LegacyTokenHeader, "")
		}
	}

	isForm := false
	switch body := req.Body.(type) {
	case *FormData:
		if body != nil {
			applyForm(r, body)
			isForm = true
		}
	case JSONBody:
		r.SetBody(string(body))
	}
	if !isForm && !hasHeader(req.Header, "Content-Type") {
		r.SetHeader("Content-Type", "application/json")
	}

	log.WithField("body", bodyKind(req.Body)).Debug("api_request")
	start := time.Now()
	resp, err := r.Execute(method, fullURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.WithError(err).Debug("api_request_cancelled")
			return nil, fmt.Errorf("%s %s: %w", method, req.Path, err)
		}
		log.WithError(err).Warn("api_transport_failed")
		return nil, &TransportError{Method: method, URL: fullURL, PossibleCORS: true, Err: err}
	}

	raw := resp.Body()
	contentType := resp.Header().Get("Content-Type")
	status := resp.StatusCode()
	log = log.WithFields(logrus.Fields{
		"status":      status,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	payload, parseErr := parsePayload(raw, contentType)
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		httpErr := &HTTPError{Status: status, Body: raw}
		if parseErr == nil {
			httpErr.Message = extractMessage(payload)
		}
		log.WithField("snippet", logSnippet(string(raw))).Warn("api_http_error")
		return nil, httpErr
	}
	if parseErr != nil {
		log.WithField("snippet", logSnippet(string(raw))).Warn("api_non_json_response")
		return nil, &ParseError{
			Status:      status,
			ContentType: contentType,
			Snippet:     truncate(string(raw), parseSnippetLimit, ""),
			Err:         parseErr,
		}
	}

	log.Debug("api_response")
	return &Result{Status: status, Header: resp.Header(), Payload: payload}, nil
}

// Fetch sends req and decodes the platform envelope with a typed data field.
func Fetch[T any](ctx context.Context, c *Client, req Request) (*common.Response[T], error) {
	result, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return DecodeEnvelope[T](result.Payload)
}

// DecodeEnvelope decodes payload into a Response. A data field holding an
// empty array, empty string or false (common for empty objects on the
// platform) decodes as the zero value of T.
func DecodeEnvelope[T any](payload json.RawMessage) (*common.Response[T], error) {
	var out common.Response[T]
	err := json.Unmarshal(payload, &out)
	if err == nil {
		return &out, nil
	}

	var loose common.Response[json.RawMessage]
	if looseErr := json.Unmarshal(payload, &loose); looseErr != nil {
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}
	switch string(bytes.TrimSpace(loose.Data)) {
	case "[]", `""`, "false", "null", "":
		return &common.Response[T]{Code: loose.Code, Msg: loose.Msg, Time: loose.Time}, nil
	}
	return nil, fmt.Errorf("decode response data: %w", err)
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func applyForm(r *resty.Request, form *FormData) {
	if len(form.keys) == 0 && len(form.files) == 0 {
		// resty only switches to multipart once a part is added.
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		_ = w.Close()
		r.SetHeader("Content-Type", w.FormDataContentType()).SetBody(buf.Bytes())
		return
	}
	for _, key := range form.keys {
		for _, value := range form.values[key] {
			r.SetMultipartField(key, "", "", strings.NewReader(value))
		}
	}
	for _, file := range form.files {
		r.SetFileReader(file.field, file.filename, file.reader)
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func parsePayload(raw []byte, contentType string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(raw, utf8BOM))
	if isJSONContentType(contentType) {
		if !json.Valid(trimmed) {
			return nil, errors.New("invalid JSON body")
		}
		return json.RawMessage(trimmed), nil
	}
	// Some deployments send JSON as text/html.
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return json.RawMessage(trimmed), nil
	}
	return nil, errors.New("body is not JSON")
}

func isJSONContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "application/json") || strings.Contains(ct, "+json")
}

func extractMessage(payload json.RawMessage) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err == nil {
		for _, key := range []string{"msg", "message"} {
			var s string
			if raw, ok := fields[key]; ok && json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return string(payload)
}

func hasHeader(header map[string]string, name string) bool {
	for k := range header {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

func bodyKind(b Body) string {
	switch b.(type) {
	case *FormData:
		return "form"
	case JSONBody:
		return "json"
	default:
		return "none"
	}
}
