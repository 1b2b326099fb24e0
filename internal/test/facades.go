package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
)

// FixedTime is the timestamp stubs stamp on the records they return.
var FixedTime = time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

// AuthFacadeStub mimics authentication behaviour for handler tests.
type AuthFacadeStub struct {
	RegisterFn  func(context.Context, string, string, string, string) (*model.User, string, error)
	LoginFn     func(context.Context, string, string) (*model.User, string, error)
	LogoutFn    func(context.Context, string) error
	VerifyFn    func(context.Context, string) (*model.User, error)
	AuthorizeFn func(context.Context, string) (string, error)
}

// Register delegates to RegisterFn or returns a fresh user and token.
func (s AuthFacadeStub) Register(ctx context.Context, name, email, phone, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, phone, password)
	}
	return &model.User{ID: "u1", Name: name, Email: email, Phone: phone, CreatedAt: FixedTime, UpdatedAt: FixedTime}, "token", nil
}

// Login delegates to LoginFn or returns a default user and token.
func (s AuthFacadeStub) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return &model.User{ID: "u1", Email: email, CreatedAt: FixedTime, UpdatedAt: FixedTime}, "token", nil
}

// Logout delegates to LogoutFn or succeeds.
func (s AuthFacadeStub) Logout(ctx context.Context, token string) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx, token)
	}
	return nil
}

// Verify delegates to VerifyFn or returns a default user.
func (s AuthFacadeStub) Verify(ctx context.Context, token string) (*model.User, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, token)
	}
	return &model.User{ID: "u1", CreatedAt: FixedTime, UpdatedAt: FixedTime}, nil
}

// Authorize delegates to AuthorizeFn; by default the token "token" maps to user u1.
func (s AuthFacadeStub) Authorize(ctx context.Context, token string) (string, error) {
	if s.AuthorizeFn != nil {
		return s.AuthorizeFn(ctx, token)
	}
	if token == "token" {
		return "u1", nil
	}
	return "", domainErrors.ErrUnauthorized
}

// ProfileFacadeStub simulates profile operations.
type ProfileFacadeStub struct {
	ProfileFn       func(context.Context, string) (*model.User, error)
	UpdateProfileFn func(context.Context, string, model.ProfileUpdate) (*model.User, error)
	PointsFn        func(context.Context, string) (int, error)
}

// Profile delegates to ProfileFn or returns a default user.
func (s ProfileFacadeStub) Profile(ctx context.Context, userID string) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Name: "Ann", Points: 10, CreatedAt: FixedTime, UpdatedAt: FixedTime}, nil
}

// UpdateProfile delegates to UpdateProfileFn or applies the name change.
func (s ProfileFacadeStub) UpdateProfile(ctx context.Context, userID string, upd model.ProfileUpdate) (*model.User, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, userID, upd)
	}
	u := &model.User{ID: userID, Name: "Ann", CreatedAt: FixedTime, UpdatedAt: FixedTime}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	return u, nil
}

// Points delegates to PointsFn or returns 10.
func (s ProfileFacadeStub) Points(ctx context.Context, userID string) (int, error) {
	if s.PointsFn != nil {
		return s.PointsFn(ctx, userID)
	}
	return 10, nil
}

// AppointmentFacadeStub simulates the booking ledger.
type AppointmentFacadeStub struct {
	CreateFn       func(context.Context, string, model.AppointmentDraft) (*model.Appointment, int, error)
	ListFn         func(context.Context, string) ([]model.Appointment, error)
	GetFn          func(context.Context, string, string) (*model.Appointment, error)
	UpdateStatusFn func(context.Context, string, string, string) (*model.Appointment, error)
	AddImageFn     func(context.Context, string, string, string) (*model.Appointment, error)
}

func stubAppointment(userID, id string) *model.Appointment {
	return &model.Appointment{
		ID:            id,
		UserID:        userID,
		Status:        model.AppointmentStatusUpcoming,
		PaymentMethod: model.PaymentMethodCash,
		CreatedAt:     FixedTime,
		UpdatedAt:     FixedTime,
	}
}

// CreateAppointment delegates to CreateFn or books the draft as is.
func (s AppointmentFacadeStub) CreateAppointment(ctx context.Context, userID string, draft model.AppointmentDraft) (*model.Appointment, int, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, draft)
	}
	a := stubAppointment(userID, "a1")
	a.Date, a.Time, a.Total, a.Services = draft.Date, draft.Time, draft.Total, draft.Services
	return a, int(draft.Total * 10), nil
}

// Appointments delegates to ListFn or returns one appointment.
func (s AppointmentFacadeStub) Appointments(ctx context.Context, userID string) ([]model.Appointment, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return []model.Appointment{*stubAppointment(userID, "a1")}, nil
}

// Appointment delegates to GetFn or returns the requested appointment.
func (s AppointmentFacadeStub) Appointment(ctx context.Context, userID, id string) (*model.Appointment, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID, id)
	}
	return stubAppointment(userID, id), nil
}

// UpdateAppointmentStatus delegates to UpdateStatusFn or applies the status.
func (s AppointmentFacadeStub) UpdateAppointmentStatus(ctx context.Context, userID, id, status string) (*model.Appointment, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, userID, id, status)
	}
	a := stubAppointment(userID, id)
	a.Status = model.AppointmentStatus(status)
	return a, nil
}

// AddAppointmentImage delegates to AddImageFn or appends the URL.
func (s AppointmentFacadeStub) AddAppointmentImage(ctx context.Context, userID, id, url string) (*model.Appointment, error) {
	if s.AddImageFn != nil {
		return s.AddImageFn(ctx, userID, id, url)
	}
	a := stubAppointment(userID, id)
	a.Images = []string{url}
	return a, nil
}

// CatalogFacadeStub serves a fixed two-entry catalog.
type CatalogFacadeStub struct {
	Items []model.Service
}

func (s CatalogFacadeStub) items() []model.Service {
	if s.Items != nil {
		return s.Items
	}
	return []model.Service{
		{ID: "1", Name: "Haircut", Category: "hair", Price: 45},
		{ID: "5", Name: "Manicure", Category: "nails", Price: 35},
	}
}

// Services filters by category; empty and "all" return everything.
func (s CatalogFacadeStub) Services(_ context.Context, category string) []model.Service {
	var out []model.Service
	for _, svc := range s.items() {
		if category == "" || category == "all" || svc.Category == category {
			out = append(out, svc)
		}
	}
	return out
}

// Service looks an entry up by id.
func (s CatalogFacadeStub) Service(_ context.Context, id string) (*model.Service, error) {
	for _, svc := range s.items() {
		if svc.ID == id {
			found := svc
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Categories lists distinct categories in catalog order.
func (s CatalogFacadeStub) Categories(context.Context) []string {
	seen := map[string]bool{}
	var out []string
	for _, svc := range s.items() {
		if !seen[svc.Category] {
			seen[svc.Category] = true
			out = append(out, svc.Category)
		}
	}
	return out
}

// HealthCheckerStub returns Err from HealthCheck.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck reports the configured error.
func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}

// SalonFacadeStub combines all facade stubs.
type SalonFacadeStub struct {
	AuthFacadeStub
	ProfileFacadeStub
	AppointmentFacadeStub
	CatalogFacadeStub
	HealthCheckerStub
}

// SessionPurgerStub records purge calls for worker tests.
type SessionPurgerStub struct {
	sync.Mutex
	Removed int
	Err     error
	Calls   int
}

// Purge counts the call and returns the configured result.
func (s *SessionPurgerStub) Purge(context.Context) (int, error) {
	s.Lock()
	defer s.Unlock()
	s.Calls++
	return s.Removed, s.Err
}

// CallCount returns the number of purges so far.
func (s *SessionPurgerStub) CallCount() int {
	s.Lock()
	defer s.Unlock()
	return s.Calls
}
