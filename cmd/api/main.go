package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/api/middleware"
	"github.com/feral-file/claim-ledger/internal/api/server"
	"github.com/feral-file/claim-ledger/internal/config"
	"github.com/feral-file/claim-ledger/internal/leaderboard"
	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/ratelimit"
	"github.com/feral-file/claim-ledger/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	os.Exit(run())
}

// run returns the process exit code after deferred cleanup has run
func run() int {
	flag.Parse()
	exitCode := 0

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "api-server",
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Claim Ledger API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()

	// Create leaderboard projection and keep its fallback cache warm
	projection, err := leaderboard.NewProjection(dataStore, clockAdapter, leaderboard.Config{
		Timezone:     cfg.Leaderboard.Timezone,
		DefaultLimit: cfg.Leaderboard.DefaultLimit,
		MaxLimit:     cfg.Leaderboard.MaxLimit,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create leaderboard projection", zap.Error(err))
	}

	refresher := leaderboard.NewRefresher(projection, cfg.Leaderboard.RefreshSchedule)
	if err := refresher.Start(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to start leaderboard refresher", zap.Error(err), zap.String("schedule", cfg.Leaderboard.RefreshSchedule))
	}
	defer refresher.Stop()

	// Create rate limiter
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		redisClient := adapter.NewRedisClient(cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword, cfg.RateLimit.RedisDB)
		limiter, err = ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerSecond:       cfg.RateLimit.RequestsPerSecond,
			Burst:                   cfg.RateLimit.Burst,
			KeyPrefix:               cfg.RateLimit.RedisKeyPrefix,
			EnableLocalFallback:     cfg.RateLimit.EnableLocalFallback,
			LocalFallbackMultiplier: cfg.RateLimit.LocalFallbackMultiplier,
		}, redisClient, clockAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create rate limiter", zap.Error(err), zap.String("redis_addr", cfg.RateLimit.RedisAddr))
		}
		defer func() { _ = limiter.Close() }()
	} else {
		logger.WarnCtx(ctx, "Rate limiting disabled")
	}

	// Create server config
	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			JWTIssuer:    cfg.Auth.JWTIssuer,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, dataStore, projection, limiter, clockAdapter)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		exitCode = 1
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
	return exitCode
}
