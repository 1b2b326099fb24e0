package handlers

import (
	"context"

	"github.com/polkiloo/salonbook/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, phone, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*model.User, error)
	Authorize(ctx context.Context, token string) (string, error)
}

// ProfileFacade exposes profile and loyalty points operations.
type ProfileFacade interface {
	Profile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, upd model.ProfileUpdate) (*model.User, error)
	Points(ctx context.Context, userID string) (int, error)
}

// AppointmentFacade encapsulates booking operations exposed via HTTP.
type AppointmentFacade interface {
	CreateAppointment(ctx context.Context, userID string, draft model.AppointmentDraft) (*model.Appointment, int, error)
	Appointments(ctx context.Context, userID string) ([]model.Appointment, error)
	Appointment(ctx context.Context, userID, id string) (*model.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, userID, id, status string) (*model.Appointment, error)
	AddAppointmentImage(ctx context.Context, userID, id, url string) (*model.Appointment, error)
}

// CatalogFacade serves the read-only service catalog.
type CatalogFacade interface {
	Services(ctx context.Context, category string) []model.Service
	Service(ctx context.Context, id string) (*model.Service, error)
	Categories(ctx context.Context) []string
}

// HealthChecker reports readiness of backing storage.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// SalonFacade aggregates the full set of operations used across handlers.
type SalonFacade interface {
	AuthFacade
	ProfileFacade
	AppointmentFacade
	CatalogFacade
	HealthChecker
}
