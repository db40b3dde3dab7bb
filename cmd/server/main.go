package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dinepoll/server/internal/config"
	"github.com/dinepoll/server/internal/database"
	"github.com/dinepoll/server/internal/handlers"
	"github.com/dinepoll/server/internal/middleware"
	"github.com/dinepoll/server/internal/repositories"
	"github.com/dinepoll/server/internal/router"
	"github.com/dinepoll/server/internal/security"
	"github.com/dinepoll/server/internal/services"
	"github.com/dinepoll/server/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	logger.Init()
	defer logger.Sync()

	logger.Info("Starting dinepoll server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go database.Keepalive(ctx, db)

	accountRepo := repositories.NewAccountRepository(db)
	friendRepo := repositories.NewFriendRepository(db)
	restaurantRepo := repositories.NewRestaurantRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	pollRepo := repositories.NewPollRepository(db)

	hashParams := security.DefaultArgon2Params()
	hashParams.Memory = cfg.Argon2Memory
	hashParams.Time = cfg.Argon2Time

	authService := services.NewAuthService(accountRepo, friendRepo, restaurantRepo, cfg.JWTSecret, hashParams)
	friendService := services.NewFriendService(accountRepo, friendRepo)
	restaurantService := services.NewRestaurantService(restaurantRepo, cfg.SwipePageSize)
	favoriteService := services.NewFavoriteService(favoriteRepo)
	pollService := services.NewPollService(pollRepo, accountRepo, cfg.PollOwnershipLimit)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, time.Minute)
	defer limiter.Stop()

	engine := router.New(cfg, router.Handlers{
		Auth:       handlers.NewAuthHandler(authService, cfg.JWTSecret),
		Friend:     handlers.NewFriendHandler(friendService),
		Restaurant: handlers.NewRestaurantHandler(restaurantService, favoriteService),
		Poll:       handlers.NewPollHandler(pollService),
	}, limiter)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: engine,
	}

	go func() {
		logger.Info("Server listening", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}

	logger.Info("Server stopped")
}
