package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/salonbook/internal/config"
	"github.com/polkiloo/salonbook/internal/domain/repository"
	"github.com/polkiloo/salonbook/internal/server/http/handlers"
	"github.com/polkiloo/salonbook/internal/usecase"
	"github.com/polkiloo/salonbook/internal/worker"
)

const readHeaderTimeout = 10 * time.Second

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newSalonFacade,
		func(f *SalonFacade) handlers.SalonFacade { return f },
		newHTTPServer,
		newSessionSweeper,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth    *usecase.AuthUseCase
	Booking *usecase.BookingUseCase
	Profile *usecase.ProfileUseCase
	Catalog *usecase.CatalogUseCase
	Storage repository.Factory
}

func newSalonFacade(p facadeParams) *SalonFacade {
	return NewSalonFacade(p.Auth, p.Booking, p.Profile, p.Catalog, p.Storage)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

type sweeperParams struct {
	fx.In

	Sessions *usecase.SessionRegistry
	Config   *config.Config
	Logger   *slog.Logger
}

func newSessionSweeper(p sweeperParams) *worker.SessionSweeper {
	return worker.NewSessionSweeper(p.Sessions, p.Config.SessionSweepInterval, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Sweeper    *worker.SessionSweeper
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting salonbook", slog.String("addr", p.Server.Addr))
			p.Sweeper.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Sweeper.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("salonbook stopped")
			return nil
		},
	})
}
