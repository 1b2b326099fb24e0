package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
	"github.com/polkiloo/salonbook/internal/domain/repository"
)

// Storage keeps all salon data in process memory. A single RWMutex guards
// every table so multi-table mutations are atomic.
type Storage struct {
	mu           sync.RWMutex
	users        table[model.User]
	sessions     table[model.Session]
	appointments table[model.Appointment]
}

type userRepository struct {
	storage *Storage
}

type sessionRepository struct {
	storage *Storage
}

type appointmentRepository struct {
	storage *Storage
}

// New creates empty in-memory storage.
func New() *Storage {
	return &Storage{
		users:        newTable[model.User](),
		sessions:     newTable[model.Session](),
		appointments: newTable[model.Appointment](),
	}
}

// Users returns the credential store.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

// Sessions returns the session table.
func (s *Storage) Sessions() repository.SessionRepository {
	return &sessionRepository{storage: s}
}

// Appointments returns the appointment ledger.
func (s *Storage) Appointments() repository.AppointmentRepository {
	return &appointmentRepository{storage: s}
}

// HealthCheck always succeeds unless ctx is done.
func (s *Storage) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op for memory storage.
func (s *Storage) Close() {}

func (s *Storage) emailTaken(email, exceptID string) bool {
	_, taken := s.users.find(func(u *model.User) bool {
		return u.ID != exceptID && strings.EqualFold(u.Email, email)
	})
	return taken
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	if r.storage.emailTaken(user.Email, "") {
		return nil, domainErrors.ErrAlreadyExists
	}
	if _, exists := r.storage.users.get(user.ID); exists {
		return nil, domainErrors.ErrAlreadyExists
	}

	stored := user.Clone()
	r.storage.users.put(stored.ID, stored)
	return stored.Clone(), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	u, ok := r.storage.users.find(func(u *model.User) bool { return strings.EqualFold(u.Email, email) })
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	u, ok := r.storage.users.get(id)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, upd model.ProfileUpdate, at time.Time) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	u, ok := r.storage.users.get(id)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if upd.Email != nil && r.storage.emailTaken(*upd.Email, id) {
		return nil, domainErrors.ErrAlreadyExists
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	u.UpdatedAt = at
	return u.Clone(), nil
}

// --- SessionRepository implementation ---

func (r *sessionRepository) Create(ctx context.Context, session model.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	if _, exists := r.storage.sessions.get(session.Token); exists {
		return domainErrors.ErrAlreadyExists
	}
	r.storage.sessions.put(session.Token, &session)
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, token string) (*model.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	s, ok := r.storage.sessions.get(token)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	r.storage.sessions.remove(token)
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	return r.storage.sessions.removeWhere(func(s *model.Session) bool {
		return s.CreatedAt.Before(cutoff)
	}), nil
}

// --- AppointmentRepository implementation ---

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment, points int) (*model.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	owner, ok := r.storage.users.get(appointment.UserID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if _, exists := r.storage.appointments.get(appointment.ID); exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	balance, err := model.CreditPoints(owner.Points, points)
	if err != nil {
		return nil, err
	}

	stored := appointment.Clone()
	r.storage.appointments.put(stored.ID, stored)
	owner.AppointmentIDs = append(owner.AppointmentIDs, stored.ID)
	owner.Points = balance
	return stored.Clone(), nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	a, ok := r.storage.appointments.get(id)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return a.Clone(), nil
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	owner, ok := r.storage.users.get(userID)
	if !ok {
		return []model.Appointment{}, nil
	}

	result := make([]model.Appointment, 0, len(owner.AppointmentIDs))
	for i := len(owner.AppointmentIDs) - 1; i >= 0; i-- {
		if a, ok := r.storage.appointments.get(owner.AppointmentIDs[i]); ok {
			result = append(result, *a.Clone())
		}
	}
	slices.SortStableFunc(result, func(a, b model.Appointment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus, at time.Time) (*model.Appointment, error) {
	return r.mutate(ctx, id, func(a *model.Appointment) {
		a.Status = status
		a.UpdatedAt = at
	})
}

func (r *appointmentRepository) AddImage(ctx context.Context, id, url string, at time.Time) (*model.Appointment, error) {
	return r.mutate(ctx, id, func(a *model.Appointment) {
		a.Images = append(a.Images, url)
		a.UpdatedAt = at
	})
}

func (r *appointmentRepository) mutate(ctx context.Context, id string, apply func(*model.Appointment)) (*model.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	a, ok := r.storage.appointments.get(id)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	apply(a)
	return a.Clone(), nil
}

var _ repository.Factory = (*Storage)(nil)
