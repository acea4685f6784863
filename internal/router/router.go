package router

import (
	"time"

	"github.com/anonto42/yatube/backend/internal/cache"
	"github.com/anonto42/yatube/backend/internal/feed"
	"github.com/anonto42/yatube/backend/internal/handlers"
	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the routes are wired to
type Dependencies struct {
	DB           *gorm.DB
	Posts        repositories.PostRepository
	PageCache    *cache.PageCache
	FirebaseAuth handlers.TokenVerifier
	JWTSecret    string
	PageSize     int
	CacheTTL     time.Duration
	Log          *zap.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	pageCache := deps.PageCache
	if pageCache == nil {
		pageCache = cache.NewPageCache()
	}

	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewSQLUserRepository(deps.DB)
	groupRepo := repositories.NewSQLGroupRepository(deps.DB)
	followRepo := repositories.NewSQLFollowRepository(deps.DB)
	commentRepo := repositories.NewSQLCommentRepository(deps.DB)
	postRepo := deps.Posts
	if postRepo == nil {
		postRepo = repositories.NewSQLPostRepository(deps.DB)
	}

	feeds := feed.NewService(postRepo, followRepo, userRepo, groupRepo, deps.PageSize, log.Named("feed"))

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, deps.FirebaseAuth, deps.JWTSecret, log.Named("auth"))
	authHandler.RegisterAuthRoutes(authGroup)

	// --- API routes; the viewer is optional unless a route requires it ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(deps.JWTSecret))

	feedHandler := handlers.NewFeedHandler(feeds, pageCache, deps.CacheTTL, log.Named("feed"))
	feedHandler.RegisterFeedRoutes(api)

	followHandler := handlers.NewFollowHandler(feeds)
	followHandler.RegisterFollowRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, groupRepo, commentRepo, userRepo, feeds, log.Named("posts"))
	postHandler.RegisterPostRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(api)

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	groupHandler := handlers.NewGroupHandler(groupRepo)
	groupHandler.RegisterGroupRoutes(api)

	log.Info("Routes configured", zap.Int("count", len(e.Routes())))
}
