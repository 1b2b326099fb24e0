package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/salonbook/internal/app"
	"github.com/polkiloo/salonbook/internal/config"
	"github.com/polkiloo/salonbook/internal/logger"
	"github.com/polkiloo/salonbook/internal/pkg/auth"
	"github.com/polkiloo/salonbook/internal/server/http/router"
	"github.com/polkiloo/salonbook/internal/storage"
	"github.com/polkiloo/salonbook/internal/usecase"
)

// Module assembles the full salonbook graph. Extra options are appended last,
// so callers can swap providers with fx.Replace or fx.Decorate.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		storage.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
