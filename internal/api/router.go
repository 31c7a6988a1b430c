package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kolecta/collection-system/internal/api/handler"
	"github.com/kolecta/collection-system/internal/api/middleware"
	"github.com/kolecta/collection-system/internal/core/domain"
	"github.com/kolecta/collection-system/internal/core/service"
	"github.com/kolecta/collection-system/internal/infrastructure/config"
	mongorepo "github.com/kolecta/collection-system/internal/infrastructure/db/mongo"
	redisstore "github.com/kolecta/collection-system/internal/infrastructure/db/redis"
	"github.com/kolecta/collection-system/internal/infrastructure/http/handlers"
	"github.com/kolecta/collection-system/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("collecte"))

	// --- Repositories ---
	users := mongorepo.NewUserRepository(db)
	agents := mongorepo.NewAgentRepository(db)
	commercants := mongorepo.NewCommercantRepository(db)
	accounts := mongorepo.NewAccountRepository(db)
	collections := mongorepo.NewCollectionRepository(db)
	withdrawals := mongorepo.NewWithdrawalRepository(db)
	kycRecords := mongorepo.NewKycRepository(db)
	institutions := mongorepo.NewInstitutionRepository(db)
	sessions := redisstore.NewSessionStore(rdb, cfg.SessionTTL)

	// --- Services ---
	sessionService := service.NewSessionService(users, sessions, cfg.JWTSecret, cfg.SessionTTL, log)
	identityService := service.NewIdentityService(agents, commercants, log)
	aggregator := service.NewAggregatorService(identityService, agents, accounts, collections, withdrawals, log)
	kycService := service.NewKycService(kycRecords, log)
	ledgerService := service.NewLedgerService(accounts, collections, withdrawals, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(sessionService)
	dashboardHandler := handler.NewDashboardHandler(aggregator, cfg.Location())
	ledgerHandler := handler.NewLedgerHandler(ledgerService, identityService)
	kycHandler := handler.NewKycHandler(kycService)
	institutionHandler := handler.NewInstitutionHandler(institutions)

	authenticated := middleware.Auth(cfg.JWTSecret, sessionService)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authenticated)
	e.GET("/auth/me", authHandler.Me, authenticated)

	// --- Protected API ---
	v1 := e.Group("/v1", authenticated)

	v1.GET("/agent/dashboard", dashboardHandler.Agent,
		middleware.RBAC(domain.RoleAgent))
	v1.POST("/collections", ledgerHandler.RecordCollection,
		middleware.RBAC(domain.RoleAgent))

	v1.GET("/client/summary", dashboardHandler.Client,
		middleware.RBAC(domain.RoleCommercant))

	v1.POST("/withdrawals", ledgerHandler.RecordWithdrawal,
		middleware.RBAC(domain.RoleCaisse))
	v1.GET("/withdrawals", ledgerHandler.ListWithdrawals,
		middleware.RBAC(domain.RoleCaisse, domain.RoleAdmin, domain.RoleAdjoint))

	v1.GET("/kyc", kycHandler.List,
		middleware.RBAC(domain.RoleAdmin, domain.RoleAdjoint, domain.RoleSuperAdmin))
	v1.POST("/kyc/:id/decision", kycHandler.Decide,
		middleware.RBAC(domain.RoleAdmin, domain.RoleAdjoint, domain.RoleSuperAdmin))

	v1.GET("/institutions", institutionHandler.List,
		middleware.RBAC(domain.RoleSuperAdmin))
	v1.POST("/institutions", institutionHandler.Create,
		middleware.RBAC(domain.RoleSuperAdmin))

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
