package logger

import (
	"log/slog"

	"github.com/polkiloo/salonbook/internal/config"
	"go.uber.org/fx"
)

// Module wires slog logger for dependency injection.
var Module = fx.Provide(newFromConfig)

type loggerParams struct {
	fx.In

	Config *config.Config
}

func newFromConfig(p loggerParams) *slog.Logger {
	return New(p.Config.LogLevel)
}
