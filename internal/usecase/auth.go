package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
	"github.com/polkiloo/salonbook/internal/domain/repository"
	pkgAuth "github.com/polkiloo/salonbook/internal/pkg/auth"
)

// RegisterInput carries a customer sign-up request.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// AuthUseCase handles customer registration, login and session checks.
type AuthUseCase struct {
	users    repository.UserRepository
	sessions *SessionRegistry
	hasher   pkgAuth.PasswordHasher
	now      Clock
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, sessions *SessionRegistry, hasher pkgAuth.PasswordHasher, now Clock) *AuthUseCase {
	if now == nil {
		now = SystemClock
	}
	return &AuthUseCase{users: users, sessions: sessions, hasher: hasher, now: now}
}

// Register validates input, stores the customer and opens a session for them.
func (u *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	name := Sanitize(in.Name)
	email := NormalizeEmail(Sanitize(in.Email))
	phone := Sanitize(in.Phone)

	switch {
	case name == "":
		return nil, "", domainErrors.NewValidationError("name", "All fields are required")
	case email == "":
		return nil, "", domainErrors.NewValidationError("email", "All fields are required")
	case phone == "":
		return nil, "", domainErrors.NewValidationError("phone", "All fields are required")
	case in.Password == "":
		return nil, "", domainErrors.NewValidationError("password", "All fields are required")
	case !ValidateEmail(email):
		return nil, "", domainErrors.NewValidationError("email", "Invalid email format")
	case !ValidatePhone(phone):
		return nil, "", domainErrors.NewValidationError("phone", "Invalid phone number")
	case !ValidatePassword(in.Password):
		return nil, "", domainErrors.NewValidationError("password", "Password must be at least 8 characters with uppercase, lowercase, and numbers")
	}

	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return nil, "", domainErrors.ErrAlreadyExists
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, "", err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	now := u.now()
	usr, err := u.users.Create(ctx, &model.User{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		Phone:          phone,
		PasswordHash:   hash,
		AppointmentIDs: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.sessions.Create(ctx, usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Login checks credentials and opens a new session. Unknown email and wrong
// password are reported identically.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = NormalizeEmail(Sanitize(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.NewValidationError("", "Email and password are required")
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.sessions.Create(ctx, usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Logout revokes token.
func (u *AuthUseCase) Logout(ctx context.Context, token string) error {
	return u.sessions.Revoke(ctx, token)
}

// Authorize resolves token to a user id without loading the user.
func (u *AuthUseCase) Authorize(ctx context.Context, token string) (string, error) {
	return u.sessions.Validate(ctx, token)
}

// Verify resolves token to the full user record.
func (u *AuthUseCase) Verify(ctx context.Context, token string) (*model.User, error) {
	userID, err := u.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	return u.users.GetByID(ctx, userID)
}
