package test

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
	"github.com/polkiloo/salonbook/internal/domain/repository"
)

// UserRepositoryStub lets tests override individual user repository calls.
type UserRepositoryStub struct {
	CreateFn        func(context.Context, *model.User) (*model.User, error)
	GetByEmailFn    func(context.Context, string) (*model.User, error)
	GetByIDFn       func(context.Context, string) (*model.User, error)
	UpdateProfileFn func(context.Context, string, model.ProfileUpdate, time.Time) (*model.User, error)
}

// Create delegates to CreateFn or echoes the user back.
func (s UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, user)
	}
	return user, nil
}

// GetByEmail delegates to GetByEmailFn or reports not found.
func (s UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.GetByEmailFn != nil {
		return s.GetByEmailFn(ctx, email)
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID delegates to GetByIDFn or reports not found.
func (s UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateProfile delegates to UpdateProfileFn or reports not found.
func (s UserRepositoryStub) UpdateProfile(ctx context.Context, id string, upd model.ProfileUpdate, at time.Time) (*model.User, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, id, upd, at)
	}
	return nil, domainErrors.ErrNotFound
}

// SessionRepositoryStub lets tests inject session storage failures.
type SessionRepositoryStub struct {
	CreateFn        func(context.Context, model.Session) error
	GetFn           func(context.Context, string) (*model.Session, error)
	DeleteFn        func(context.Context, string) error
	DeleteExpiredFn func(context.Context, time.Time) (int, error)
}

// Create delegates to CreateFn.
func (s SessionRepositoryStub) Create(ctx context.Context, session model.Session) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, session)
	}
	return nil
}

// Get delegates to GetFn or reports not found.
func (s SessionRepositoryStub) Get(ctx context.Context, token string) (*model.Session, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, token)
	}
	return nil, domainErrors.ErrNotFound
}

// Delete delegates to DeleteFn.
func (s SessionRepositoryStub) Delete(ctx context.Context, token string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, token)
	}
	return nil
}

// DeleteExpired delegates to DeleteExpiredFn.
func (s SessionRepositoryStub) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	if s.DeleteExpiredFn != nil {
		return s.DeleteExpiredFn(ctx, cutoff)
	}
	return 0, nil
}

// AppointmentRepositoryStub lets tests override ledger calls.
type AppointmentRepositoryStub struct {
	CreateFn       func(context.Context, *model.Appointment, int) (*model.Appointment, error)
	GetByIDFn      func(context.Context, string) (*model.Appointment, error)
	ListByUserFn   func(context.Context, string) ([]model.Appointment, error)
	UpdateStatusFn func(context.Context, string, model.AppointmentStatus, time.Time) (*model.Appointment, error)
	AddImageFn     func(context.Context, string, string, time.Time) (*model.Appointment, error)
}

// Create delegates to CreateFn or echoes the appointment back.
func (s AppointmentRepositoryStub) Create(ctx context.Context, appointment *model.Appointment, points int) (*model.Appointment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, appointment, points)
	}
	return appointment, nil
}

// GetByID delegates to GetByIDFn or reports not found.
func (s AppointmentRepositoryStub) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser delegates to ListByUserFn or returns nothing.
func (s AppointmentRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

// UpdateStatus delegates to UpdateStatusFn or reports not found.
func (s AppointmentRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus, at time.Time) (*model.Appointment, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status, at)
	}
	return nil, domainErrors.ErrNotFound
}

// AddImage delegates to AddImageFn or reports not found.
func (s AppointmentRepositoryStub) AddImage(ctx context.Context, id, url string, at time.Time) (*model.Appointment, error) {
	if s.AddImageFn != nil {
		return s.AddImageFn(ctx, id, url, at)
	}
	return nil, domainErrors.ErrNotFound
}

// FactoryStub assembles repositories for DI tests.
type FactoryStub struct {
	UserRepo        repository.UserRepository
	SessionRepo     repository.SessionRepository
	AppointmentRepo repository.AppointmentRepository
	HealthErr       error
	Closed          bool
}

func (f *FactoryStub) Users() repository.UserRepository               { return f.UserRepo }
func (f *FactoryStub) Sessions() repository.SessionRepository         { return f.SessionRepo }
func (f *FactoryStub) Appointments() repository.AppointmentRepository { return f.AppointmentRepo }
func (f *FactoryStub) HealthCheck(context.Context) error              { return f.HealthErr }
func (f *FactoryStub) Close()                                         { f.Closed = true }

var (
	_ repository.UserRepository        = UserRepositoryStub{}
	_ repository.SessionRepository     = SessionRepositoryStub{}
	_ repository.AppointmentRepository = AppointmentRepositoryStub{}
	_ repository.Factory               = (*FactoryStub)(nil)
)
