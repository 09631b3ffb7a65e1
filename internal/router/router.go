package router

import (
	"github.com/anonto42/warbler/backend/internal/handlers"
	"github.com/anonto42/warbler/backend/internal/middleware"
	"github.com/anonto42/warbler/backend/internal/repositories"
	"github.com/anonto42/warbler/backend/internal/services"
	"github.com/anonto42/warbler/backend/pkg/config"
	"github.com/anonto42/warbler/backend/pkg/monitoring"
	"github.com/anonto42/warbler/backend/validators"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// New returns an Echo instance with global middleware and every route wired
// to db.
func New(db *gorm.DB, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	config.SetupMiddleware(e)
	SetupRoutes(e, db, cfg)
	return e
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	e.Validator = validators.NewValidator()

	e.GET("/health", handlers.HealthCheck(db))
	e.GET("/metrics", monitoring.Handler())

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	messageRepo := repositories.NewPostgresMessageRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)

	accounts := services.NewAccountService(userRepo)

	userHandler := handlers.NewUserHandler(userRepo, followRepo, messageRepo, likeRepo, accounts)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	messageHandler := handlers.NewMessageHandler(messageRepo, likeRepo)
	likeHandler := handlers.NewLikeHandler(likeRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	handlers.NewAuthHandler(accounts, cfg.JWTSecret).RegisterAuthRoutes(authGroup)

	// --- Public read routes; a valid token only adds viewer context ---
	public := e.Group("/api/v1", middleware.OptionalJWTAuthMiddleware(cfg.JWTSecret))
	userHandler.RegisterPublicRoutes(public)
	followHandler.RegisterPublicRoutes(public)
	messageHandler.RegisterPublicRoutes(public)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1",
		middleware.JWTAuthMiddleware(cfg.JWTSecret),
		middleware.ActiveUserMiddleware(userRepo),
	)
	userHandler.RegisterProfileRoutes(api)
	followHandler.RegisterFollowRoutes(api)
	messageHandler.RegisterMessageRoutes(api)
	likeHandler.RegisterLikeRoutes(api)

	// Both groups above register catch-all routes carrying their middleware;
	// unknown API paths are a plain 404, not an auth failure.
	e.RouteNotFound("/api/v1", echo.NotFoundHandler)
	e.RouteNotFound("/api/v1/*", echo.NotFoundHandler)

	log.Debug("All routes configured.")
}
