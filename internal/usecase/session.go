package usecase

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
	"github.com/polkiloo/salonbook/internal/domain/repository"
	pkgAuth "github.com/polkiloo/salonbook/internal/pkg/auth"
)

// Clock returns the current time.
type Clock func() time.Time

// SystemClock reads the wall clock in UTC.
func SystemClock() time.Time { return time.Now().UTC() }

// SessionRegistry maps opaque tokens to users and enforces the session TTL.
type SessionRegistry struct {
	sessions repository.SessionRepository
	tokens   pkgAuth.TokenGenerator
	ttl      time.Duration
	now      Clock
}

// NewSessionRegistry constructs SessionRegistry. A nil clock means SystemClock.
func NewSessionRegistry(sessions repository.SessionRepository, tokens pkgAuth.TokenGenerator, ttl time.Duration, now Clock) *SessionRegistry {
	if now == nil {
		now = SystemClock
	}
	return &SessionRegistry{sessions: sessions, tokens: tokens, ttl: ttl, now: now}
}

// TTL returns the configured session lifetime.
func (r *SessionRegistry) TTL() time.Duration {
	return r.ttl
}

// Create issues a fresh token for userID.
func (r *SessionRegistry) Create(ctx context.Context, userID string) (string, error) {
	token, err := r.tokens.NewToken()
	if err != nil {
		return "", err
	}
	if err := r.sessions.Create(ctx, model.Session{Token: token, UserID: userID, CreatedAt: r.now()}); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves token to its user id. An expired session is deleted
// during the lookup and reported as ErrUnauthorized.
func (r *SessionRegistry) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domainErrors.ErrUnauthorized
	}

	session, err := r.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", domainErrors.ErrUnauthorized
		}
		return "", err
	}

	if session.Expired(r.now(), r.ttl) {
		if err := r.sessions.Delete(ctx, token); err != nil {
			return "", err
		}
		return "", domainErrors.ErrUnauthorized
	}

	return session.UserID, nil
}

// Revoke deletes token. Unknown tokens are ignored.
func (r *SessionRegistry) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return r.sessions.Delete(ctx, token)
}

// Purge removes every session older than the TTL and returns how many were dropped.
func (r *SessionRegistry) Purge(ctx context.Context) (int, error) {
	return r.sessions.DeleteExpired(ctx, r.now().Add(-r.ttl))
}
