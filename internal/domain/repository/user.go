package repository

import (
	"context"
	"time"

	"github.com/polkiloo/salonbook/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	// Create stores user; ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	// UpdateProfile applies non-nil fields of upd and stamps updatedAt.
	UpdateProfile(ctx context.Context, id string, upd model.ProfileUpdate, at time.Time) (*model.User, error)
}
