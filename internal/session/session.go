// Package session owns the client's login state: the token and the cached
// profile snapshot. It is created once and passed to the API client.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"collectibles/internal/auth"
	"collectibles/internal/entity/dto"
	"collectibles/internal/storage"

	"github.com/sirupsen/logrus"
)

// Storage keys.
const (
	KeyToken = "user-token"
	KeyUser  = "user-info"
)

var (
	// ErrEmptyToken is returned by Login for a blank token.
	ErrEmptyToken = errors.New("session: empty token")
	// ErrTokenExpired is returned by Login when the token's exp is in the past.
	ErrTokenExpired = errors.New("session: token already expired")
)

// Session reads and writes the persisted token and user info.
type Session struct {
	local *storage.Local
	ttl   time.Duration
	now   func() time.Time
	log   *logrus.Entry
}

// Option configures a Session.
type Option func(*Session)

// WithTTL bounds how long an opaque token is kept. Zero keeps it until logout.
func WithTTL(ttl time.Duration) Option {
	return func(s *Session) { s.ttl = ttl }
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(entry *logrus.Entry) Option {
	return func(s *Session) {
		if entry != nil {
			s.log = entry
		}
	}
}

// New returns a Session backed by local.
func New(local *storage.Local, opts ...Option) *Session {
	s := &Session{
		local: local,
		now:   time.Now,
		log:   logrus.WithField("component", "session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login stores token and, when given, the user snapshot. Both share the
// token's expiry: the JWT exp claim if present, else the configured TTL.
func (s *Session) Login(ctx context.Context, token string, user *dto.UserInfo) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	expireAt := s.expiryFor(token)
	if !expireAt.IsZero() && !expireAt.After(s.now()) {
		return ErrTokenExpired
	}

	if err := s.local.SetUntil(ctx, KeyToken, token, expireAt); err != nil {
		return err
	}
	if user != nil {
		if err := s.local.SetUntil(ctx, KeyUser, user, expireAt); err != nil {
			return err
		}
	} else if err := s.local.Remove(ctx, KeyUser); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"expires_at": formatExpiry(expireAt),
		"has_user":   user != nil,
	}).Info("session_login")
	return nil
}

// Token returns the stored token, or "" when absent or expired.
func (s *Session) Token(ctx context.Context) string {
	return storage.Value(ctx, s.local, KeyToken, "")
}

// LoggedIn reports whether a usable token is stored.
func (s *Session) LoggedIn(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// User returns the cached profile snapshot.
func (s *Session) User(ctx context.Context) (*dto.UserInfo, bool) {
	var user dto.UserInfo
	ok, err := s.local.Get(ctx, KeyUser, &user)
	if err != nil {
		s.log.WithError(err).Warn("session_user_decode_failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &user, true
}

// SetUser refreshes the cached profile, keeping the token's expiry. It is a
// no-op without a token so a late refresh cannot resurrect a cleared session.
func (s *Session) SetUser(ctx context.Context, user dto.UserInfo) error {
	if !s.LoggedIn(ctx) {
		return nil
	}
	expireAt, err := s.local.ExpiresAt(ctx, KeyToken)
	if err != nil {
		return err
	}
	return s.local.SetUntil(ctx, KeyUser, user, expireAt)
}

// ExpiresAt returns when the session ends; zero means no expiry.
func (s *Session) ExpiresAt(ctx context.Context) time.Time {
	if !s.LoggedIn(ctx) {
		return time.Time{}
	}
	at, err := s.local.ExpiresAt(ctx, KeyToken)
	if err != nil {
		return time.Time{}
	}
	return at
}

// Clear removes the token and the profile snapshot.
func (s *Session) Clear(ctx context.Context) error {
	tokenErr := s.local.Remove(ctx, KeyToken)
	userErr := s.local.Remove(ctx, KeyUser)
	if err := errors.Join(tokenErr, userErr); err != nil {
		s.log.WithError(err).Warn("session_clear_failed")
		return err
	}
	s.log.Info("session_cleared")
	return nil
}

func (s *Session) expiryFor(token string) time.Time {
	if exp := auth.ExpiresAt(token); !exp.IsZero() {
		return exp
	}
	if s.ttl > 0 {
		return s.now().Add(s.ttl)
	}
	return time.Time{}
}

func formatExpiry(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.UTC().Format(time.RFC3339)
}
