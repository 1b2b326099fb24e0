package app

import (
	"context"

	"github.com/polkiloo/salonbook/internal/domain/model"
	"github.com/polkiloo/salonbook/internal/usecase"
)

// StorageHealth reports whether backing storage is reachable.
type StorageHealth interface {
	HealthCheck(ctx context.Context) error
}

// SalonFacade is the single entry point HTTP handlers talk to.
type SalonFacade struct {
	auth    *usecase.AuthUseCase
	booking *usecase.BookingUseCase
	profile *usecase.ProfileUseCase
	catalog *usecase.CatalogUseCase
	storage StorageHealth
}

func NewSalonFacade(auth *usecase.AuthUseCase, booking *usecase.BookingUseCase, profile *usecase.ProfileUseCase, catalog *usecase.CatalogUseCase, storage StorageHealth) *SalonFacade {
	return &SalonFacade{auth: auth, booking: booking, profile: profile, catalog: catalog, storage: storage}
}

func (f *SalonFacade) Register(ctx context.Context, name, email, phone, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, usecase.RegisterInput{Name: name, Email: email, Phone: phone, Password: password})
}

func (f *SalonFacade) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *SalonFacade) Logout(ctx context.Context, token string) error {
	return f.auth.Logout(ctx, token)
}

func (f *SalonFacade) Verify(ctx context.Context, token string) (*model.User, error) {
	return f.auth.Verify(ctx, token)
}

func (f *SalonFacade) Authorize(ctx context.Context, token string) (string, error) {
	return f.auth.Authorize(ctx, token)
}

func (f *SalonFacade) Profile(ctx context.Context, userID string) (*model.User, error) {
	return f.profile.Profile(ctx, userID)
}

func (f *SalonFacade) UpdateProfile(ctx context.Context, userID string, upd model.ProfileUpdate) (*model.User, error) {
	return f.profile.UpdateProfile(ctx, userID, upd)
}

func (f *SalonFacade) Points(ctx context.Context, userID string) (int, error) {
	return f.profile.Points(ctx, userID)
}

func (f *SalonFacade) CreateAppointment(ctx context.Context, userID string, draft model.AppointmentDraft) (*model.Appointment, int, error) {
	return f.booking.Create(ctx, userID, draft)
}

func (f *SalonFacade) Appointments(ctx context.Context, userID string) ([]model.Appointment, error) {
	return f.booking.List(ctx, userID)
}

func (f *SalonFacade) Appointment(ctx context.Context, userID, id string) (*model.Appointment, error) {
	return f.booking.Get(ctx, userID, id)
}

func (f *SalonFacade) UpdateAppointmentStatus(ctx context.Context, userID, id, status string) (*model.Appointment, error) {
	return f.booking.UpdateStatus(ctx, userID, id, status)
}

func (f *SalonFacade) AddAppointmentImage(ctx context.Context, userID, id, url string) (*model.Appointment, error) {
	return f.booking.AddImage(ctx, userID, id, url)
}

func (f *SalonFacade) Services(ctx context.Context, category string) []model.Service {
	return f.catalog.List(ctx, category)
}

func (f *SalonFacade) Service(ctx context.Context, id string) (*model.Service, error) {
	return f.catalog.Get(ctx, id)
}

func (f *SalonFacade) Categories(ctx context.Context) []string {
	return f.catalog.Categories(ctx)
}

func (f *SalonFacade) HealthCheck(ctx context.Context) error {
	return f.storage.HealthCheck(ctx)
}
