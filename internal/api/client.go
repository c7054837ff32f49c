// Package api groups the platform operations by business area. Each method
// validates locally, resolves the token, encodes the body the way the
// endpoint expects and returns the decoded envelope unchanged.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"collectibles/internal/config"
	"collectibles/internal/endpoint"
	"collectibles/internal/entity/common"
	"collectibles/internal/session"
	"collectibles/internal/storage"
	"collectibles/internal/transport"

	"github.com/sirupsen/logrus"
)

// codeTokenInvalid is the envelope code the platform uses for a rejected token.
const codeTokenInvalid = 401

// Client is the typed entry point for every platform operation.
type Client struct {
	transport *transport.Client
	endpoints *endpoint.Table
	session   *session.Session
	target    config.Target
	log       *logrus.Entry

	onCompensation CompensationHandler
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEndpoints replaces the default endpoint table.
func WithEndpoints(table *endpoint.Table) ClientOption {
	return func(c *Client) {
		if table != nil {
			c.endpoints = table
		}
	}
}

// WithLogger sets the logger.
func WithLogger(entry *logrus.Entry) ClientOption {
	return func(c *Client) {
		if entry != nil {
			c.log = entry
		}
	}
}

// WithCompensationHandler receives failures of secondary lookups.
func WithCompensationHandler(h CompensationHandler) ClientOption {
	return func(c *Client) { c.onCompensation = h }
}

// NewClient wires a Client. A nil session is replaced by an in-memory one.
func NewClient(tc *transport.Client, sess *session.Session, target config.Target, opts ...ClientOption) *Client {
	c := &Client{
		transport: tc,
		endpoints: endpoint.Default(),
		session:   sess,
		target:    target,
		log:       logrus.WithField("component", "api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == nil {
		c.session = session.New(storage.NewLocal(storage.NewMemoryStore(), ""))
	}
	return c
}

// NewFromConfig resolves the target from cfg and builds the transport.
func NewFromConfig(cfg config.Config, sess *session.Session, opts ...ClientOption) *Client {
	target := config.Resolve(cfg)
	c := NewClient(nil, sess, target, opts...)
	c.transport = transport.New(transport.Options{
		BaseURL:          target.BaseURL,
		LegacyAuthHeader: cfg.LegacyAuthHeader,
		Logger:           c.log,
	})
	c.log.WithFields(logrus.Fields{
		"base_url": target.BaseURL,
		"source":   target.Source,
	}).Debug("api_target_resolved")
	return c
}

// Session returns the session the client reads tokens from.
func (c *Client) Session() *session.Session {
	return c.session
}

// Target returns the resolved base URL and origin.
func (c *Client) Target() config.Target {
	return c.target
}

// Option adjusts a single call.
type Option func(*callOptions)

type callOptions struct {
	token string
}

// WithToken sends token instead of the session token.
func WithToken(token string) Option {
	return func(o *callOptions) { o.token = strings.TrimSpace(token) }
}

func (c *Client) resolveToken(ctx context.Context, opts []Option) (token string, fromSession bool) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.token != "" {
		return o.token, false
	}
	if tok := c.session.Token(ctx); tok != "" {
		return tok, true
	}
	return "", false
}

// payload carries the request fields. Exactly one of query, form or json is
// used, matching the endpoint's body kind.
type payload struct {
	query map[string]string
	form  *transport.FormData
	json  any
}

func queryOf(base common.BaseParams, extra map[string]string) map[string]string {
	q := base.Query()
	for k, v := range extra {
		if strings.TrimSpace(v) != "" {
			q[k] = v
		}
	}
	return q
}

func idForm(key string, id common.ID) *transport.FormData {
	return transport.NewFormData().Append(key, id.String())
}

func idQuery(key string, id common.ID) map[string]string {
	return map[string]string{key: id.String()}
}

// invoke is the single path every operation takes to the network.
func invoke[T any](ctx context.Context, c *Client, name string, in payload, opts []Option) (*common.Response[T], error) {
	d, ok := c.endpoints.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("api: unknown endpoint %q", name)
	}
	log := c.log.WithField("endpoint", name)

	token, fromSession := c.resolveToken(ctx, opts)
	if d.Auth && token == "" {
		log.Info("api_call_requires_login")
		return nil, ErrNotLoggedIn
	}

	req := transport.Request{Method: d.Method, Path: d.Path, Token: token}
	if err := encode(d, in, &req); err != nil {
		log.WithError(err).Error("api_request_encode_failed")
		return nil, err
	}

	resp, err := transport.Fetch[T](ctx, c.transport, req)
	if err != nil {
		log.WithError(err).Warn("api_call_failed")
		if fromSession {
			c.dropRejectedSession(ctx, d, err)
		}
		return nil, err
	}
	if !d.Succeeded(resp.Code) {
		appErr := &AppError{Endpoint: name, Code: resp.CodeValue(), Msg: resp.Msg}
		log.WithFields(logrus.Fields{
			"code": appErr.Code,
			"msg":  appErr.Msg,
		}).Warn("api_call_unsuccessful")
		if fromSession {
			c.dropRejectedSession(ctx, d, appErr)
		}
		return resp, appErr
	}
	return resp, nil
}

func encode(d endpoint.Descriptor, in payload, req *transport.Request) error {
	mismatch := func(got string) error {
		return fmt.Errorf("api: %s expects a %s body, got %s", d.Name, d.Body, got)
	}
	switch d.Body {
	case endpoint.BodyNone:
		if in.form != nil || in.json != nil || len(in.query) > 0 {
			return mismatch("parameters")
		}
	case endpoint.BodyQuery:
		if in.form != nil || in.json != nil {
			return mismatch("a request body")
		}
		req.Query = in.query
	case endpoint.BodyForm:
		if in.json != nil || len(in.query) > 0 {
			return mismatch("json or query")
		}
		form := in.form
		if form == nil {
			form = transport.NewFormData()
		}
		req.Body = form
	case endpoint.BodyJSON:
		if in.form != nil || len(in.query) > 0 {
			return mismatch("form or query")
		}
		value := in.json
		if value == nil {
			value = struct{}{}
		}
		body, err := transport.NewJSONBody(value)
		if err != nil {
			return fmt.Errorf("api: encode %s body: %w", d.Name, err)
		}
		req.Body = body
	}
	return nil
}

// dropRejectedSession clears a session token the server refused.
func (c *Client) dropRejectedSession(ctx context.Context, d endpoint.Descriptor, err error) {
	if !d.Auth {
		return
	}
	var (
		appErr  *AppError
		httpErr *transport.HTTPError
	)
	rejected := (errors.As(err, &appErr) && appErr.Code == codeTokenInvalid) ||
		(errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized)
	if !rejected {
		return
	}
	c.log.WithField("endpoint", d.Name).Info("session_rejected")
	if clearErr := c.session.Clear(ctx); clearErr != nil {
		c.log.WithError(clearErr).Warn("session_clear_failed")
	}
}
