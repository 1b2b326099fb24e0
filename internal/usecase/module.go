package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/salonbook/internal/config"
	"github.com/polkiloo/salonbook/internal/domain/repository"
	pkgAuth "github.com/polkiloo/salonbook/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newSessionRegistry,
	newAuthUseCase,
	newBookingUseCase,
	newProfileUseCase,
	NewCatalogUseCase,
)

type registryParams struct {
	fx.In

	Config   *config.Config
	Sessions repository.SessionRepository
	Tokens   pkgAuth.TokenGenerator
}

func newSessionRegistry(p registryParams) *SessionRegistry {
	return NewSessionRegistry(p.Sessions, p.Tokens, p.Config.SessionTTL, SystemClock)
}

func newAuthUseCase(users repository.UserRepository, sessions *SessionRegistry, hasher pkgAuth.PasswordHasher) *AuthUseCase {
	return NewAuthUseCase(users, sessions, hasher, SystemClock)
}

func newBookingUseCase(appointments repository.AppointmentRepository, logger *slog.Logger) *BookingUseCase {
	return NewBookingUseCase(appointments, logger, SystemClock)
}

func newProfileUseCase(users repository.UserRepository) *ProfileUseCase {
	return NewProfileUseCase(users, SystemClock)
}
