package memory

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
)

var baseTime = time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, s *Storage, id, email string) *model.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &model.User{
		ID:        id,
		Name:      "User " + id,
		Email:     email,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	})
	require.NoError(t, err)
	return u
}

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	s := New()
	ctx := context.Background()
	created := seedUser(t, s, "u1", "ann@example.com")
	assert.Equal(t, "u1", created.ID)

	byEmail, err := s.Users().GetByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", byEmail.ID)

	byID, err := s.Users().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", byID.Email)

	_, err = s.Users().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = s.Users().GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestUserRepositoryRejectsDuplicateEmail(t *testing.T) {
	s := New()
	seedUser(t, s, "u1", "ann@example.com")

	_, err := s.Users().Create(context.Background(), &model.User{ID: "u2", Email: "Ann@Example.com"})
	assert.ErrorIs(t, err, domainErrors.ErrAlreadyExists)

	_, err = s.Users().Create(context.Background(), &model.User{ID: "u1", Email: "other@example.com"})
	assert.ErrorIs(t, err, domainErrors.ErrAlreadyExists)
	assert.Equal(t, 1, s.users.len())
}

func TestUserRepositoryReturnsCopies(t *testing.T) {
	s := New()
	u := seedUser(t, s, "u1", "ann@example.com")
	u.Points = 1000
	u.AppointmentIDs = append(u.AppointmentIDs, "forged")

	stored, err := s.Users().GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, stored.Points)
	assert.Empty(t, stored.AppointmentIDs)
}

func TestUserRepositoryUpdateProfile(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedUser(t, s, "u1", "ann@example.com")
	seedUser(t, s, "u2", "bob@example.com")

	name := "Ann Lee"
	phone := "+1 (555) 123-4567"
	updatedAt := baseTime.Add(time.Minute)
	updated, err := s.Users().UpdateProfile(ctx, "u1", model.ProfileUpdate{Name: &name, Phone: &phone}, updatedAt)
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "ann@example.com", updated.Email)
	assert.Equal(t, updatedAt, updated.UpdatedAt)

	taken := "bob@example.com"
	_, err = s.Users().UpdateProfile(ctx, "u1", model.ProfileUpdate{Email: &taken}, updatedAt)
	assert.ErrorIs(t, err, domainErrors.ErrAlreadyExists)

	own := "ann@example.com"
	_, err = s.Users().UpdateProfile(ctx, "u1", model.ProfileUpdate{Email: &own}, updatedAt)
	assert.NoError(t, err)

	_, err = s.Users().UpdateProfile(ctx, "ghost", model.ProfileUpdate{Name: &name}, updatedAt)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestSessionRepository(t *testing.T) {
	s := New()
	ctx := context.Background()
	repo := s.Sessions()

	require.NoError(t, repo.Create(ctx, model.Session{Token: "old", UserID: "u1", CreatedAt: baseTime}))
	require.NoError(t, repo.Create(ctx, model.Session{Token: "new", UserID: "u1", CreatedAt: baseTime.Add(2 * time.Hour)}))
	assert.ErrorIs(t, repo.Create(ctx, model.Session{Token: "new"}), domainErrors.ErrAlreadyExists)

	got, err := repo.Get(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	removed, err := repo.DeleteExpired(ctx, baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = repo.Get(ctx, "old")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "new"))
	require.NoError(t, repo.Delete(ctx, "new"))
	_, err = repo.Get(ctx, "new")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestAppointmentCreateCreditsOwner(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedUser(t, s, "u1", "ann@example.com")

	appt := &model.Appointment{
		ID:       "a1",
		UserID:   "u1",
		Services: []model.ServiceLine{{Name: "Haircut", Price: 45, Quantity: 1}},
		Total:    45,
		Status:   model.AppointmentStatusUpcoming,
	}
	created, err := s.Appointments().Create(ctx, appt, 450)
	require.NoError(t, err)
	assert.Equal(t, "a1", created.ID)

	owner, err := s.Users().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 450, owner.Points)
	assert.Equal(t, []string{"a1"}, owner.AppointmentIDs)

	_, err = s.Appointments().Create(ctx, &model.Appointment{ID: "a2", UserID: "ghost"}, 10)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = s.Appointments().GetByID(ctx, "a2")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)

	_, err = s.Appointments().Create(ctx, appt, 450)
	assert.ErrorIs(t, err, domainErrors.ErrAlreadyExists)
	owner, err = s.Users().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 450, owner.Points, "failed create must not credit points")
}

func TestAppointmentListNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedUser(t, s, "u1", "ann@example.com")
	seedUser(t, s, "u2", "bob@example.com")

	for i := 0; i < 3; i++ {
		_, err := s.Appointments().Create(ctx, &model.Appointment{
			ID:        fmt.Sprintf("a%d", i),
			UserID:    "u1",
			CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
		}, 0)
		require.NoError(t, err)
	}
	_, err := s.Appointments().Create(ctx, &model.Appointment{ID: "b0", UserID: "u2", CreatedAt: baseTime}, 0)
	require.NoError(t, err)

	list, err := s.Appointments().ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a2", list[0].ID)
	assert.Equal(t, "a1", list[1].ID)
	assert.Equal(t, "a0", list[2].ID)

	empty, err := s.Appointments().ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAppointmentMutations(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedUser(t, s, "u1", "ann@example.com")
	_, err := s.Appointments().Create(ctx, &model.Appointment{ID: "a1", UserID: "u1", Status: model.AppointmentStatusUpcoming, CreatedAt: baseTime, UpdatedAt: baseTime}, 0)
	require.NoError(t, err)

	later := baseTime.Add(time.Hour)
	updated, err := s.Appointments().UpdateStatus(ctx, "a1", model.AppointmentStatusCompleted, later)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, updated.Status)
	assert.Equal(t, later, updated.UpdatedAt)

	withImage, err := s.Appointments().AddImage(ctx, "a1", "https://img.example/1.png", later.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.example/1.png"}, withImage.Images)

	_, err = s.Appointments().UpdateStatus(ctx, "missing", model.AppointmentStatusCancelled, later)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = s.Appointments().AddImage(ctx, "missing", "x", later)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestStorageHonoursCancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Users().GetByID(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Sessions().Create(ctx, model.Session{Token: "t"}), context.Canceled)
	_, err = s.Appointments().ListByUser(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.HealthCheck(ctx), context.Canceled)
	assert.NoError(t, s.HealthCheck(context.Background()))
	s.Close()
}

func TestConcurrentBookingsKeepLedgerConsistent(t *testing.T) {
	s := New()
	ctx := context.Background()
	seedUser(t, s, "u1", "ann@example.com")

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Appointments().Create(ctx, &model.Appointment{ID: fmt.Sprintf("a%d", i), UserID: "u1"}, 10)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	owner, err := s.Users().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, workers*10, owner.Points)
	assert.Len(t, owner.AppointmentIDs, workers)
	assert.Equal(t, workers, s.appointments.len())
}

func TestAppointmentCreateRejectsBalanceOverflow(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.Users().Create(ctx, &model.User{ID: "u1", Email: "rich@example.com", Points: math.MaxInt - 10})
	require.NoError(t, err)

	appt := &model.Appointment{ID: "a1", UserID: "u1", Total: 5, Status: model.AppointmentStatusUpcoming}
	_, err = s.Appointments().Create(ctx, appt, 50)
	require.ErrorIs(t, err, model.ErrPointsLimit)
	assert.ErrorIs(t, err, domainErrors.ErrValidation)

	owner, err := s.Users().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt-10, owner.Points)
	assert.Empty(t, owner.AppointmentIDs)
	_, err = s.Appointments().GetByID(ctx, "a1")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}
