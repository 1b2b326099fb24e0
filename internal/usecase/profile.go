package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
	"github.com/polkiloo/salonbook/internal/domain/repository"
)

// ProfileUseCase exposes the customer's own account data.
type ProfileUseCase struct {
	users repository.UserRepository
	now   Clock
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(users repository.UserRepository, now Clock) *ProfileUseCase {
	if now == nil {
		now = SystemClock
	}
	return &ProfileUseCase{users: users, now: now}
}

// Profile returns the user record.
func (u *ProfileUseCase) Profile(ctx context.Context, userID string) (*model.User, error) {
	return u.users.GetByID(ctx, userID)
}

// Points returns the loyalty balance.
func (u *ProfileUseCase) Points(ctx context.Context, userID string) (int, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return usr.Points, nil
}

// UpdateProfile validates and applies in. Nil or blank fields are kept and
// email changes must stay unique.
func (u *ProfileUseCase) UpdateProfile(ctx context.Context, userID string, in model.ProfileUpdate) (*model.User, error) {
	current, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var upd model.ProfileUpdate

	if email := optional(in.Email); email != "" {
		email = NormalizeEmail(email)
		if email != current.Email {
			if !ValidateEmail(email) {
				return nil, domainErrors.NewValidationError("email", "Invalid email format")
			}
			upd.Email = &email
		}
	}

	if name := optional(in.Name); name != "" {
		upd.Name = &name
	}

	if phone := optional(in.Phone); phone != "" {
		if !ValidatePhone(phone) {
			return nil, domainErrors.NewValidationError("phone", "Invalid phone number")
		}
		upd.Phone = &phone
	}

	return u.users.UpdateProfile(ctx, userID, upd, nextStamp(u.now(), current.UpdatedAt))
}

func optional(value *string) string {
	if value == nil {
		return ""
	}
	return Sanitize(*value)
}
