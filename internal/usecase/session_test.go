package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
	"github.com/polkiloo/salonbook/internal/storage/memory"
	testhelpers "github.com/polkiloo/salonbook/internal/test"
)

var epoch = time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

func newRegistry(t *testing.T) (*SessionRegistry, *memory.Storage, *testhelpers.ManualClock) {
	t.Helper()
	store := memory.New()
	clock := testhelpers.NewManualClock(epoch)
	return NewSessionRegistry(store.Sessions(), &testhelpers.TokenGeneratorStub{}, time.Hour, clock.Now), store, clock
}

func TestSessionRegistryCreateAndValidate(t *testing.T) {
	registry, _, _ := newRegistry(t)
	ctx := context.Background()

	token, err := registry.Create(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	userID, err := registry.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	_, err = registry.Validate(ctx, "")
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
	_, err = registry.Validate(ctx, "unknown")
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
}

func TestSessionRegistryExpiresLazily(t *testing.T) {
	registry, store, clock := newRegistry(t)
	ctx := context.Background()

	token, err := registry.Create(ctx, "u1")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	_, err = registry.Validate(ctx, token)
	require.NoError(t, err, "session is valid exactly at ttl")

	clock.Advance(time.Second)
	_, err = registry.Validate(ctx, token)
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)

	_, err = store.Sessions().Get(ctx, token)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound, "expired session must be removed on lookup")
}

func TestSessionRegistryRevokeIsIdempotent(t *testing.T) {
	registry, _, _ := newRegistry(t)
	ctx := context.Background()

	token, err := registry.Create(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, registry.Revoke(ctx, token))
	require.NoError(t, registry.Revoke(ctx, token))
	require.NoError(t, registry.Revoke(ctx, ""))

	_, err = registry.Validate(ctx, token)
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
}

func TestSessionRegistryPurge(t *testing.T) {
	registry, _, clock := newRegistry(t)
	ctx := context.Background()

	old, err := registry.Create(ctx, "u1")
	require.NoError(t, err)
	clock.Advance(50 * time.Minute)
	fresh, err := registry.Create(ctx, "u2")
	require.NoError(t, err)
	clock.Advance(20 * time.Minute)

	removed, err := registry.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = registry.Validate(ctx, old)
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
	userID, err := registry.Validate(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, "u2", userID)
	assert.Equal(t, time.Hour, registry.TTL())
}

func TestSessionRegistryPropagatesFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	registry := NewSessionRegistry(testhelpers.SessionRepositoryStub{}, &testhelpers.TokenGeneratorStub{Err: boom}, time.Hour, nil)
	_, err := registry.Create(ctx, "u1")
	assert.ErrorIs(t, err, boom)

	registry = NewSessionRegistry(testhelpers.SessionRepositoryStub{
		CreateFn: func(context.Context, model.Session) error { return boom },
		GetFn:    func(context.Context, string) (*model.Session, error) { return nil, boom },
	}, &testhelpers.TokenGeneratorStub{}, time.Hour, nil)
	_, err = registry.Create(ctx, "u1")
	assert.ErrorIs(t, err, boom)
	_, err = registry.Validate(ctx, "token")
	assert.ErrorIs(t, err, boom)

	registry = NewSessionRegistry(testhelpers.SessionRepositoryStub{
		GetFn: func(context.Context, string) (*model.Session, error) {
			return &model.Session{Token: "t", UserID: "u1", CreatedAt: epoch}, nil
		},
		DeleteFn: func(context.Context, string) error { return boom },
	}, &testhelpers.TokenGeneratorStub{}, time.Hour, func() time.Time { return epoch.Add(2 * time.Hour) })
	_, err = registry.Validate(ctx, "t")
	assert.ErrorIs(t, err, boom)
}
