package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moneyapp/internal/config"
	"github.com/moneyapp/internal/handler"
	"github.com/moneyapp/internal/middleware"
	"github.com/moneyapp/internal/monitoring"
	"github.com/moneyapp/internal/repository"
	"github.com/moneyapp/internal/service"
	"github.com/moneyapp/pkg/crypto"
)

// Build info (injected at build time via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := middleware.InitLogger(cfg.Log.Dir); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize storage
	store, closeStore, err := repository.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	middleware.LogInfo("storage ready | driver=%s", cfg.Database.Driver)

	// Initialize services
	hasher := crypto.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := service.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpireMinutes)*time.Minute)
	authService := service.NewAuthService(store, hasher, tokens, cfg.Auth.AllowAdminSignup)
	transactionService := service.NewTransactionService(store)
	userService := service.NewUserService(store, hasher)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:         authService,
		Transactions: transactionService,
		Users:        userService,
		Metrics:      monitoring.NewMetrics(),
		Version:      fmt.Sprintf("%s (%s, %s)", Version, Commit, BuildTime),
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		middleware.LogInfo("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	middleware.LogInfo("Shutting down server...")

	// Graceful shutdown with 10 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := closeStore(); err != nil {
		middleware.LogError("Error closing database: %v", err)
	}

	middleware.LogInfo("Server exited properly")
}
