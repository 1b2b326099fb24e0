package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/salonbook/internal/config"
	"github.com/polkiloo/salonbook/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newRouter)

type routerParams struct {
	fx.In

	Facade handlers.SalonFacade
	Logger *slog.Logger
	Config *config.Config
}

func newRouter(p routerParams) *gin.Engine {
	return Setup(p.Facade, p.Logger, p.Config)
}
