package storage

import (
	"context"
	"log/slog"

	"github.com/polkiloo/salonbook/internal/config"
	"github.com/polkiloo/salonbook/internal/domain/repository"
	"github.com/polkiloo/salonbook/internal/storage/memory"
	"github.com/polkiloo/salonbook/internal/storage/postgres"
	redisstore "github.com/polkiloo/salonbook/internal/storage/redis"
)

// sessionStore is a session repository with its own connection lifecycle.
type sessionStore interface {
	repository.SessionRepository
	HealthCheck(ctx context.Context) error
	Close() error
}

var (
	openPostgres = func(ctx context.Context, dsn string, logger *slog.Logger) (repository.Factory, error) {
		return postgres.New(ctx, dsn, logger)
	}
	openRedis = func(ctx context.Context, opts redisstore.Options, logger *slog.Logger) (sessionStore, error) {
		return redisstore.New(ctx, opts, logger)
	}
)

// Open selects the storage backend from configuration: PostgreSQL when a DSN
// is set, process memory otherwise. Sessions move to redis when an address is set.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Factory, error) {
	var (
		base repository.Factory
		err  error
	)

	if cfg.DatabaseURI != "" {
		base, err = openPostgres(ctx, cfg.DatabaseURI, logger)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Info("using in-memory storage")
		base = memory.New()
	}

	if cfg.RedisAddr == "" {
		return base, nil
	}

	sessions, err := openRedis(ctx, redisstore.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.SessionTTL,
	}, logger)
	if err != nil {
		base.Close()
		return nil, err
	}

	return &withSessions{Factory: base, sessions: sessions, logger: logger}, nil
}

// withSessions overrides the session repository of an underlying factory.
type withSessions struct {
	repository.Factory
	sessions sessionStore
	logger   *slog.Logger
}

func (f *withSessions) Sessions() repository.SessionRepository {
	return f.sessions
}

func (f *withSessions) HealthCheck(ctx context.Context) error {
	if err := f.Factory.HealthCheck(ctx); err != nil {
		return err
	}
	return f.sessions.HealthCheck(ctx)
}

func (f *withSessions) Close() {
	f.Factory.Close()
	if err := f.sessions.Close(); err != nil {
		f.logger.Error("failed to close session store", slog.String("error", err.Error()))
	}
}
