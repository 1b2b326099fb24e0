package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
	"github.com/polkiloo/salonbook/internal/storage/memory"
	testhelpers "github.com/polkiloo/salonbook/internal/test"
)

type authFixture struct {
	auth     *AuthUseCase
	registry *SessionRegistry
	store    *memory.Storage
	clock    *testhelpers.ManualClock
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	store := memory.New()
	clock := testhelpers.NewManualClock(epoch)
	registry := NewSessionRegistry(store.Sessions(), &testhelpers.TokenGeneratorStub{}, time.Hour, clock.Now)
	return authFixture{
		auth:     NewAuthUseCase(store.Users(), registry, testhelpers.HasherStub{}, clock.Now),
		registry: registry,
		store:    store,
		clock:    clock,
	}
}

func validRegistration() RegisterInput {
	return RegisterInput{Name: "Ann Lee", Email: "Ann@Example.com", Phone: "+1 (555) 123-4567", Password: "Secret123"}
}

func TestAuthRegisterSuccess(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, token, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, "hash:Secret123", user.PasswordHash)
	assert.Zero(t, user.Points)
	assert.Empty(t, user.AppointmentIDs)
	assert.Equal(t, epoch, user.CreatedAt)
	assert.Equal(t, "token-1", token)

	userID, err := f.registry.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuthRegisterDuplicateEmailIgnoresCase(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, _, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	again := validRegistration()
	again.Email = "  ANN@example.COM "
	_, _, err = f.auth.Register(ctx, again)
	assert.ErrorIs(t, err, domainErrors.ErrAlreadyExists)
}

func TestAuthRegisterValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterInput)
		field  string
	}{
		{"missing name", func(in *RegisterInput) { in.Name = " " }, "name"},
		{"missing email", func(in *RegisterInput) { in.Email = "" }, "email"},
		{"missing phone", func(in *RegisterInput) { in.Phone = "" }, "phone"},
		{"missing password", func(in *RegisterInput) { in.Password = "" }, "password"},
		{"bad email", func(in *RegisterInput) { in.Email = "ann@example" }, "email"},
		{"bad phone", func(in *RegisterInput) { in.Phone = "12345" }, "phone"},
		{"weak password", func(in *RegisterInput) { in.Password = "password" }, "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture(t)
			in := validRegistration()
			tc.mutate(&in)

			_, _, err := f.auth.Register(context.Background(), in)
			require.ErrorIs(t, err, domainErrors.ErrValidation)
			var verr *domainErrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)

			_, err = f.store.Users().GetByEmail(context.Background(), NormalizeEmail(in.Email))
			assert.ErrorIs(t, err, domainErrors.ErrNotFound, "invalid input must not create a user")
		})
	}
}

func TestAuthRegisterSanitizesName(t *testing.T) {
	f := newAuthFixture(t)
	in := validRegistration()
	in.Name = "<script>Ann</script>"

	user, _, err := f.auth.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "scriptAnn/script", user.Name)
}

func TestAuthRegisterFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	registry := NewSessionRegistry(testhelpers.SessionRepositoryStub{}, &testhelpers.TokenGeneratorStub{}, time.Hour, nil)

	uc := NewAuthUseCase(testhelpers.UserRepositoryStub{
		GetByEmailFn: func(context.Context, string) (*model.User, error) { return nil, boom },
	}, registry, testhelpers.HasherStub{}, nil)
	_, _, err := uc.Register(ctx, validRegistration())
	assert.ErrorIs(t, err, boom)

	uc = NewAuthUseCase(testhelpers.UserRepositoryStub{}, registry, testhelpers.HasherStub{
		HashFn: func(string) (string, error) { return "", boom },
	}, nil)
	_, _, err = uc.Register(ctx, validRegistration())
	assert.ErrorIs(t, err, boom)

	uc = NewAuthUseCase(testhelpers.UserRepositoryStub{
		CreateFn: func(context.Context, *model.User) (*model.User, error) { return nil, domainErrors.ErrAlreadyExists },
	}, registry, testhelpers.HasherStub{}, nil)
	_, _, err = uc.Register(ctx, validRegistration())
	assert.ErrorIs(t, err, domainErrors.ErrAlreadyExists)

	failingRegistry := NewSessionRegistry(testhelpers.SessionRepositoryStub{}, &testhelpers.TokenGeneratorStub{Err: boom}, time.Hour, nil)
	uc = NewAuthUseCase(testhelpers.UserRepositoryStub{}, failingRegistry, testhelpers.HasherStub{}, nil)
	_, _, err = uc.Register(ctx, validRegistration())
	assert.ErrorIs(t, err, boom)
}

func TestAuthLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, _, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	user, token, err := f.auth.Login(ctx, " ANN@example.com", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "token-2", token)

	_, second, err := f.auth.Login(ctx, "ann@example.com", "Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, token, second, "each login opens its own session")
	_, err = f.registry.Validate(ctx, token)
	assert.NoError(t, err, "earlier sessions stay valid")

	_, _, err = f.auth.Login(ctx, "ann@example.com", "Wrong1234")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, "nobody@example.com", "Secret123")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, "", "Secret123")
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
	_, _, err = f.auth.Login(ctx, "ann@example.com", "")
	assert.ErrorIs(t, err, domainErrors.ErrValidation)
}

func TestAuthLoginSanitizesEmailLikeRegister(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	in := validRegistration()
	in.Email = "a<b@example.com"
	registered, _, err := f.auth.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "ab@example.com", registered.Email)

	user, _, err := f.auth.Login(ctx, "A<b@Example.com", in.Password)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthLoginRepositoryError(t *testing.T) {
	boom := errors.New("boom")
	registry := NewSessionRegistry(testhelpers.SessionRepositoryStub{}, &testhelpers.TokenGeneratorStub{}, time.Hour, nil)
	uc := NewAuthUseCase(testhelpers.UserRepositoryStub{
		GetByEmailFn: func(context.Context, string) (*model.User, error) { return nil, boom },
	}, registry, testhelpers.HasherStub{}, nil)

	_, _, err := uc.Login(context.Background(), "ann@example.com", "Secret123")
	assert.ErrorIs(t, err, boom)
}

func TestAuthLogoutAndVerify(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	registered, token, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)

	verified, err := f.auth.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, verified.ID)

	userID, err := f.auth.Authorize(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)

	require.NoError(t, f.auth.Logout(ctx, token))
	require.NoError(t, f.auth.Logout(ctx, token))
	require.NoError(t, f.auth.Logout(ctx, "never-issued"))

	_, err = f.auth.Verify(ctx, token)
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
}

func TestAuthVerifyExpiredAndOrphaned(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, token, err := f.auth.Register(ctx, validRegistration())
	require.NoError(t, err)
	f.clock.Advance(time.Hour + time.Millisecond)
	_, err = f.auth.Verify(ctx, token)
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)

	orphan, err := f.registry.Create(ctx, "deleted-user")
	require.NoError(t, err)
	_, err = f.auth.Verify(ctx, orphan)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestAuthConcurrentRegistrationSameEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	const attempts = 20
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			in := validRegistration()
			in.Name = fmt.Sprintf("Ann %d", i)
			_, _, err := f.auth.Register(ctx, in)
			results <- err
		}(i)
	}

	succeeded := 0
	for i := 0; i < attempts; i++ {
		err := <-results
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domainErrors.ErrAlreadyExists)
	}
	assert.Equal(t, 1, succeeded)
}
