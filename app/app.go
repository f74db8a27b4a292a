package app

import (
	"context"
	"database/sql"
	"go-jobs-api/config"
	"go-jobs-api/db"
	"go-jobs-api/handler"
	"go-jobs-api/logger"
	"go-jobs-api/repository"
	"go-jobs-api/router"
	"go-jobs-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// buildRouter wires repositories, services, and handlers together on top of
// the given connections. Shared between Run and NewTestApp.
func buildRouter(database *sql.DB, redisClient *redis.Client) http.Handler {
	userRepo := repository.NewUserRepository(database)
	refreshRepo := repository.NewRefreshTokenRepository(redisClient)
	blacklistRepo := repository.NewBlacklistRepository(redisClient)
	jobCategoryRepo := repository.NewJobCategoryRepository(database)

	tokenService := service.NewTokenService(&config.AppConfig)
	authService := service.NewAuthService(userRepo, refreshRepo, blacklistRepo, tokenService, &config.AppConfig)
	jobCategoryService := service.NewJobCategoryService(jobCategoryRepo, redisClient)

	authHandler := handler.NewAuthHandler(authService)
	jobCategoryHandler := handler.NewJobCategoryHandler(jobCategoryService)
	authMiddleware := handler.NewAuthMiddleware(tokenService, blacklistRepo, userRepo)

	return router.NewRouter(authHandler, jobCategoryHandler, authMiddleware)
}

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	r := buildRouter(database, redisClient)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// TestApp exposes the wired router plus the raw connections so integration
// tests can seed and inspect state directly.
type TestApp struct {
	DB     *sql.DB
	Redis  *redis.Client
	Router http.Handler
}

func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	return &TestApp{
		DB:     database,
		Redis:  redisClient,
		Router: buildRouter(database, redisClient),
	}
}
