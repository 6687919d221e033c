// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"answerly/config"
	"answerly/db"
	"answerly/handler"
	"answerly/logger"
	"answerly/repository"
	"answerly/router"
	"answerly/service"

	"github.com/redis/go-redis/v9"
)

// TestApp bundles the wired router with its backing stores so integration
// tests can drive the full stack.
type TestApp struct {
	DB     *sql.DB
	Router http.Handler
}

// NewTestApp wires all layers over the given connections.
func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	return &TestApp{
		DB:     database,
		Router: buildRouter(database, redisClient),
	}
}

func buildRouter(database *sql.DB, redisClient *redis.Client) http.Handler {
	userRepo := repository.NewUserRepository(database)
	setRepo := repository.NewQuestionSetRepository(database)
	answerRepo := repository.NewAnswerRepository(database)

	authService := service.NewAuthService(userRepo)
	var cache service.ICacheClient
	if redisClient != nil {
		cache = redisClient
	}
	setService := service.NewQuestionSetService(setRepo, answerRepo, cache)

	authHandler := handler.NewAuthHandler(authService)
	setHandler := handler.NewQuestionSetHandler(setService)

	return router.NewRouter(authHandler, setHandler)
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
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	r := buildRouter(database, redisClient)

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
