package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
	"github.com/polkiloo/salonbook/internal/storage/memory"
	testhelpers "github.com/polkiloo/salonbook/internal/test"
)

func TestRegisterLoginBookComplete(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	clock := testhelpers.NewManualClock(time.Date(2030, 3, 1, 8, 0, 0, 0, time.UTC))
	registry := NewSessionRegistry(store.Sessions(), &testhelpers.TokenGeneratorStub{}, time.Hour, clock.Now)
	auth := NewAuthUseCase(store.Users(), registry, testhelpers.HasherStub{}, clock.Now)
	booking := NewBookingUseCase(store.Appointments(), slog.New(slog.NewJSONHandler(io.Discard, nil)), clock.Now)
	profile := NewProfileUseCase(store.Users(), clock.Now)

	_, _, err := auth.Register(ctx, RegisterInput{Name: "Cara", Email: "cara@example.com", Phone: "555-123-4567", Password: "Passw0rd"})
	require.NoError(t, err)

	_, token, err := auth.Login(ctx, "cara@example.com", "Passw0rd")
	require.NoError(t, err)
	userID, err := auth.Authorize(ctx, token)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	appt, points, err := booking.Create(ctx, userID, model.AppointmentDraft{
		Date:          "2030-03-05T14:30",
		Time:          "14:30",
		Services:      []model.ServiceLine{{ID: "facial", Name: "Facial Treatment", Price: 75, Quantity: 1}},
		Total:         75,
		PaymentMethod: "credit-card",
	})
	require.NoError(t, err)
	assert.Equal(t, 750, points)

	balance, err := profile.Points(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 750, balance)

	clock.Advance(time.Minute)
	done, err := booking.UpdateStatus(ctx, userID, appt.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, done.Status)
	assert.True(t, done.UpdatedAt.After(done.CreatedAt))

	list, err := booking.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.AppointmentStatusCompleted, list[0].Status)

	require.NoError(t, auth.Logout(ctx, token))
	_, err = auth.Authorize(ctx, token)
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
}
