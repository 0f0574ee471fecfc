package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/sirpyerre/proposals-api/internal/api/handler"
	"github.com/sirpyerre/proposals-api/internal/api/middleware"
	"github.com/sirpyerre/proposals-api/internal/core/domain"
	"github.com/sirpyerre/proposals-api/internal/core/ports"
	"github.com/sirpyerre/proposals-api/internal/infrastructure/http/handlers"
)

// Deps holds everything the router wires into handlers.
type Deps struct {
	Auth      ports.AuthService
	Tokens    ports.TokenVerifier
	Clients   ports.ClientService
	Proposals ports.ProposalService
	Readiness *handlers.ReadinessHandler
	Logger    zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "proposals",
		Registerer: registerer,
	}))

	authRequired := middleware.Auth(d.Tokens)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/token/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, authRequired)
	auth.GET("/profile", authHandler.Profile, authRequired)

	// --- Owned records ---
	clientHandler := handler.NewClientHandler(d.Clients)
	clients := e.Group("/clients", authRequired)
	clients.GET("", clientHandler.List)
	clients.POST("", clientHandler.Create)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.PATCH("/:id", clientHandler.Patch)
	clients.DELETE("/:id", clientHandler.Delete)

	proposalHandler := handler.NewProposalHandler(d.Proposals)
	proposals := e.Group("/proposals", authRequired)
	proposals.GET("", proposalHandler.List)
	proposals.POST("", proposalHandler.Create)
	proposals.GET("/:id", proposalHandler.Get)
	proposals.PUT("/:id", proposalHandler.Update)
	proposals.PATCH("/:id", proposalHandler.Patch)
	proposals.DELETE("/:id", proposalHandler.Delete)

	// --- Staff only ---
	adminHandler := handler.NewAdminHandler(d.Auth, d.Clients, d.Proposals)
	admin := e.Group("/admin", authRequired, middleware.RBAC(domain.RoleStaff))
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/clients/:id", adminHandler.DeleteClient)
	admin.DELETE("/proposals/:id", adminHandler.DeleteProposal)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	readiness := d.Readiness
	if readiness == nil {
		readiness = handlers.NewReadinessHandler()
	}
	e.GET("/health/ready", readiness.Readiness)

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
