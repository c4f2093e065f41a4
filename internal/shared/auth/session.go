// Package auth carries the caller's backend session through a request.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is an authenticated backend session. EmailConfirmed is false until
// the account's address has been verified.
type Session struct {
	AccessToken    string
	RefreshToken   string
	ExpiresAt      time.Time
	UserID         uuid.UUID
	Email          string
	EmailConfirmed bool
}

// Expired reports whether the access token has lapsed at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Account is the auth service's view of a user.
type Account struct {
	ID             uuid.UUID
	Email          string
	EmailConfirmed bool
}

// ErrEmailNotConfirmed is returned by password sign-in before the account's
// address has been verified.
var ErrEmailNotConfirmed = errors.New("email not confirmed")

// ErrInvalidCredentials is returned by password sign-in for a wrong email or password.
var ErrInvalidCredentials = errors.New("invalid login credentials")

type sessionKey struct{}

func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by ContextWithSession.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}
