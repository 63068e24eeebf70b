package main

import (
	"context"
	"errors"
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
	"github.com/feral-file/claim-ledger/internal/block"
	"github.com/feral-file/claim-ledger/internal/config"
	"github.com/feral-file/claim-ledger/internal/emitter"
	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/providers/ethereum"
	"github.com/feral-file/claim-ledger/internal/providers/jetstream"
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
	cfg, err := config.LoadEthereumEmitterConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "ethereum-event-emitter",
		Tags: map[string]string{
			"service": "ethereum-event-emitter",
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Ethereum Event Emitter")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime,
		cfg.Database.ConnMaxIdleTime,
	); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	cursorStore := store.NewCursorStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	natsJS := adapter.NewNatsJetStream()

	// Initialize ethereum client
	ethDialer := adapter.NewEthClientDialer()
	adapterEthClient, err := ethDialer.Dial(ctx, cfg.Ethereum.WebSocketURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum WebSocket", zap.Error(err))
	}

	blockProvider := block.NewProvider(
		ethereum.NewBlockFetcher(adapterEthClient, clockAdapter),
		block.Config{
			HeadTTL:     cfg.Ethereum.BlockHeadTTL,
			StaleWindow: cfg.Ethereum.BlockHeadStaleWindow,
		},
		clockAdapter,
	)

	ethereumClient, err := ethereum.NewClient(ethereum.ClientConfig{
		ChainID:         cfg.Ethereum.ChainID,
		TokenAddress:    cfg.Ethereum.TokenAddress,
		TreasuryAddress: cfg.Ethereum.TreasuryAddress,
		LogStep:         cfg.Ethereum.LogStep,
	}, adapterEthClient, blockProvider)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create Ethereum client", zap.Error(err))
	}

	if err := ethereumClient.VerifyChain(ctx); err != nil {
		logger.FatalCtx(ctx, "Ethereum node does not serve the configured chain", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to Ethereum WebSocket")

	// Initialize NATS publisher
	natsPublisher, err := jetstream.NewPublisher(
		jetstream.Config{
			URL:                    cfg.NATS.URL,
			StreamName:             cfg.NATS.StreamName,
			MaxReconnects:          cfg.NATS.MaxReconnects,
			ReconnectWait:          cfg.NATS.ReconnectWait,
			ConnectionName:         cfg.NATS.ConnectionName,
			PublishRetryMaxElapsed: cfg.NATS.PublishRetryMaxElapsed,
		},
		cfg.Ethereum.ChainID,
		natsJS,
		jsonAdapter,
	)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	logger.InfoCtx(ctx, "Connected to NATS JetStream")

	ethSubscriber := ethereum.NewSubscriber(ethereum.Config{
		WebSocketURL: cfg.Ethereum.WebSocketURL,
		ChainID:      cfg.Ethereum.ChainID,
	}, ethereumClient)

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	eventEmitter := emitter.NewEmitter(
		ethSubscriber,
		natsPublisher,
		cursorStore,
		emitter.Config{
			ChainID:         cfg.Ethereum.ChainID,
			StartBlock:      cfg.Ethereum.StartBlock,
			CursorSaveFreq:  cfg.Ethereum.CursorSaveFreq,
			CursorSaveDelay: cfg.Ethereum.CursorSaveDelay,
		},
		clockAdapter,
	)
	defer eventEmitter.Close()

	// Channel for emitter errors
	errCh := make(chan error, 1)

	go func() {
		if err := eventEmitter.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "emitter"))
		exitCode = 1
		cancel()
	}

	// Give in-flight publishes a moment to settle
	time.Sleep(time.Second)

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Ethereum Event Emitter stopped")
	return exitCode
}
