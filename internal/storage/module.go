package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/salonbook/internal/config"
	"github.com/polkiloo/salonbook/internal/domain/repository"
)

// Module wires the configured storage backend and its repositories.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.SessionRepository { return f.Sessions() },
		func(f repository.Factory) repository.AppointmentRepository { return f.Appointments() },
	),
	fx.Invoke(registerLifecycle),
)

type factoryParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newFactory(p factoryParams) (repository.Factory, error) {
	return Open(p.Ctx, p.Config, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, factory repository.Factory) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			factory.Close()
			return nil
		},
	})
}
