package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/visitorgate/visitor-admin/docs"
	"github.com/visitorgate/visitor-admin/internal/api/handler"
	"github.com/visitorgate/visitor-admin/internal/api/middleware"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
)

// Dependencies are the services and probes the router wires into handlers.
type Dependencies struct {
	Auth       ports.AuthService
	Visitors   ports.VisitorService
	Users      ports.UserService
	Presence   ports.PresenceService
	Heartbeats handler.HeartbeatQueue
	Readiness  map[string]handler.Check

	JWTSecret string
	Location  *time.Location
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddleware("visitor_admin"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	visitorHandler := handler.NewVisitorHandler(deps.Visitors, deps.Location)
	userHandler := handler.NewUserHandler(deps.Users)
	presenceHandler := handler.NewPresenceHandler(deps.Heartbeats, deps.Presence)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))
	admin := middleware.AdminOnly()

	visitors := v1.Group("/visitors")
	visitors.GET("", visitorHandler.List)
	visitors.POST("", visitorHandler.CheckIn)
	visitors.GET("/stats", visitorHandler.Stats)
	visitors.GET("/overdue", visitorHandler.Overdue)
	visitors.GET("/by-day", visitorHandler.ByDay)
	visitors.GET("/grouped", visitorHandler.Grouped)
	visitors.GET("/export", visitorHandler.Export)
	visitors.GET("/:id", visitorHandler.Get)
	visitors.GET("/:id/history", visitorHandler.History)
	visitors.PATCH("/:id", visitorHandler.Edit, admin)
	visitors.POST("/:id/checkout", visitorHandler.Checkout, admin)

	users := v1.Group("/users", admin)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PATCH("/:uid", userHandler.Update)
	users.DELETE("/:uid", userHandler.Delete)

	presence := v1.Group("/presence")
	presence.POST("/heartbeat", presenceHandler.Heartbeat)
	presence.GET("/online", presenceHandler.Online)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
