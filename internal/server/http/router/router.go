package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/salonbook/internal/config"
	"github.com/polkiloo/salonbook/internal/server/http/handlers"
	"github.com/polkiloo/salonbook/internal/server/http/middleware"
)

const (
	apiLimitMessage  = "Too many requests from this IP, please try again later."
	authLimitMessage = "Too many login attempts, please try again later."
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.SalonFacade, logger *slog.Logger, cfg *config.Config) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(cors.New(corsConfig(cfg.FrontendURL)))
	engine.Use(middleware.LimitBody(middleware.MaxBodyBytes))
	engine.Use(middleware.DecompressRequest(middleware.MaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade, logger)
	profileHandler := handlers.NewProfileHandler(facade, logger)
	appointmentHandler := handlers.NewAppointmentHandler(facade, logger)
	catalogHandler := handlers.NewCatalogHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(facade, logger)

	engine.GET("/health", healthHandler.Check)

	apiLimiter := middleware.NewRateLimiter(cfg.APIRateLimit, cfg.RateLimitWindow)
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.RateLimitWindow)
	authLimit := middleware.RateLimit(authLimiter, authLimitMessage, true)
	requireSession := middleware.AuthRequired(facade, logger)

	api := engine.Group("/api")
	api.Use(middleware.RateLimit(apiLimiter, apiLimitMessage, false))

	auth := api.Group("/auth")
	auth.POST("/register", authLimit, authHandler.Register)
	auth.POST("/login", authLimit, authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/verify", authHandler.Verify)

	users := api.Group("/users")
	users.Use(requireSession)
	users.GET("/profile", profileHandler.Get)
	users.PATCH("/profile", profileHandler.Update)
	users.GET("/points", profileHandler.Points)

	appointments := api.Group("/appointments")
	appointments.Use(requireSession)
	appointments.POST("", appointmentHandler.Create)
	appointments.GET("", appointmentHandler.List)
	appointments.GET("/:id", appointmentHandler.Get)
	appointments.PATCH("/:id/status", appointmentHandler.UpdateStatus)
	appointments.POST("/:id/images", appointmentHandler.AddImage)

	services := api.Group("/services")
	services.GET("", catalogHandler.List)
	services.GET("/categories/list", catalogHandler.Categories)
	services.GET("/:id", catalogHandler.Get)

	return engine
}

func corsConfig(frontendURL string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.SessionHeader},
		ExposeHeaders:    []string{"RateLimit-Limit", "RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if frontendURL == "" || frontendURL == "*" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = []string{frontendURL}
	return cfg
}
