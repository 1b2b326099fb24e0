package repository

import (
	"context"
	"time"

	"github.com/polkiloo/salonbook/internal/domain/model"
)

// SessionRepository keeps issued session tokens.
type SessionRepository interface {
	Create(ctx context.Context, session model.Session) error
	Get(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) error
	// DeleteExpired removes sessions created before the cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
}
