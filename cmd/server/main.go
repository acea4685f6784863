package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/yatube/backend/internal/cache"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/internal/router"
	"github.com/anonto42/yatube/backend/internal/seed"
	"github.com/anonto42/yatube/backend/internal/validators"
	"github.com/anonto42/yatube/backend/pkg/config"
	"github.com/anonto42/yatube/backend/pkg/firebase"
	"github.com/anonto42/yatube/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, dotenv := config.Load()

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		panic(err)
	}
	defer logger.Close()
	log := logger.Log
	if !dotenv {
		log.Info("No .env file found, using environment variables")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	// Initialize database connections
	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize databases", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := repositories.AutoMigrate(db.SQL, cfg.PostStore == config.PostStoreSQL); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	var posts repositories.PostRepository
	if cfg.PostStore == config.PostStoreMongo {
		mongoPosts := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))
		if err := mongoPosts.EnsureIndexes(ctx); err != nil {
			log.Fatal("Failed to create post indexes", zap.Error(err))
		}
		posts = mongoPosts
	} else {
		posts = repositories.NewSQLPostRepository(db.SQL)
	}

	if cfg.SeedDemo {
		if _, err := seed.Demo(ctx,
			repositories.NewSQLUserRepository(db.SQL),
			repositories.NewSQLGroupRepository(db.SQL),
			repositories.NewSQLFollowRepository(db.SQL),
			posts,
			log.Named("seed"),
		); err != nil {
			log.Fatal("Failed to seed demo content", zap.Error(err))
		}
	}

	deps := router.Dependencies{
		DB:        db.SQL,
		Posts:     posts,
		PageCache: cache.NewPageCache(),
		JWTSecret: cfg.JWTSecret,
		PageSize:  cfg.ShowedPosts,
		CacheTTL:  cfg.IndexCacheTTL,
		Log:       log,
	}

	// Firebase login is optional
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	switch {
	case err == nil:
		deps.FirebaseAuth = firebaseApp.AuthClient
		log.Info("Firebase auth client initialized")
	case errors.Is(err, firebase.ErrNotConfigured):
		log.Info("Firebase login disabled")
	default:
		log.Fatal("Failed to initialize Firebase", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, log)
	router.SetupRoutes(e, deps)

	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
}
