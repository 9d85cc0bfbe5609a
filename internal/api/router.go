package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/Abdikarim-dev/inventory-MS/docs"
	"github.com/Abdikarim-dev/inventory-MS/internal/api/handler"
	"github.com/Abdikarim-dev/inventory-MS/internal/api/middleware"
	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
	"github.com/Abdikarim-dev/inventory-MS/internal/core/service"
	mongodb "github.com/Abdikarim-dev/inventory-MS/internal/infrastructure/db/mongo"
	redisdb "github.com/Abdikarim-dev/inventory-MS/internal/infrastructure/db/redis"
	"github.com/Abdikarim-dev/inventory-MS/internal/infrastructure/http/handlers"
	"github.com/Abdikarim-dev/inventory-MS/internal/infrastructure/queue"
	"github.com/Abdikarim-dev/inventory-MS/internal/pkg/token"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the audit dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, issuer *token.Issuer, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	dedup := redisdb.NewDedupChecker(rdb)

	auditService := service.NewAuditService(auditRepo, dedup, log)
	dispatcher := queue.NewDispatcher(0, auditService, log)

	authService := service.NewAuthService(userRepo, issuer, dispatcher, log)
	userService := service.NewUserService(userRepo, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditService)

	authn := middleware.Auth(issuer, userRepo)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	anyStaff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleStaff)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- User routes ---
	users := e.Group("/api/users", authn)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/me", userHandler.Me, anyStaff)
	users.PATCH("/change-password", userHandler.ChangePassword)
	users.GET("/:id", userHandler.Get, adminOnly)
	users.PATCH("/:id/role", userHandler.ChangeRole, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)
	users.PATCH("/:id/restore", userHandler.Restore, adminOnly)
	users.GET("/:id/events", auditHandler.ListByAccount, adminOnly)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, dispatcher
}
