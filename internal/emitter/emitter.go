package emitter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/messaging"
	"github.com/feral-file/claim-ledger/internal/metrics"
	"github.com/feral-file/claim-ledger/internal/store"
)

// Config holds the configuration for the event emitter
type Config struct {
	ChainID         domain.Chain
	StartBlock      uint64
	CursorSaveFreq  uint64        // Save cursor every N blocks
	CursorSaveDelay time.Duration // Or save cursor every N seconds
}

// Emitter defines the interface for the event emitter
//
//go:generate mockgen -source=emitter.go -destination=../mocks/emitter.go -package=mocks -mock_names=Emitter=MockEmitter
type Emitter interface {
	// Run follows chain events and publishes them until ctx is done or the subscription fails
	Run(ctx context.Context) error
	// Close closes the emitter and cleans up resources
	Close()
}

type emitter struct {
	subscriber messaging.Subscriber
	publisher  messaging.Publisher
	cursors    store.CursorStore
	config     Config
	clock      adapter.Clock
}

// NewEmitter creates a new event emitter
func NewEmitter(
	sub messaging.Subscriber,
	pub messaging.Publisher,
	cursors store.CursorStore,
	cfg Config,
	clock adapter.Clock,
) Emitter {
	return &emitter{
		subscriber: sub,
		publisher:  pub,
		cursors:    cursors,
		config:     cfg,
		clock:      clock,
	}
}

// Run starts the event emitter.
// The stored cursor is the last block whose events were all published, so a restart
// resumes at the block after it. Events republished after a crash are dropped by
// the broker's message-id dedup and by the ledger's event-id gate.
func (e *emitter) Run(ctx context.Context) error {
	chain := string(e.config.ChainID)

	startBlock, err := e.startBlock(ctx)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)

	go func() {
		logger.InfoCtx(ctx, "Starting event subscription", zap.String("chain", chain), zap.Uint64("from", startBlock))

		lastSavedBlock := uint64(0)
		if startBlock > 0 {
			lastSavedBlock = startBlock - 1
		}
		lastSaveTime := e.clock.Now()

		handler := func(event *domain.RawEvent) error {
			if err := e.publisher.PublishEvent(ctx, event); err != nil {
				return fmt.Errorf("failed to publish event %s: %w", event.TransactionHash, err)
			}
			metrics.CurrentBlockNumber.WithLabelValues(chain).Set(float64(event.BlockNumber))

			// every block before this event's block is fully published
			if event.BlockNumber == 0 {
				return nil
			}
			completed := event.BlockNumber - 1
			if completed <= lastSavedBlock {
				return nil
			}

			shouldSave := completed-lastSavedBlock >= e.config.CursorSaveFreq ||
				e.clock.Since(lastSaveTime) >= e.config.CursorSaveDelay
			if !shouldSave {
				return nil
			}

			if err := e.cursors.SetBlockCursor(ctx, chain, completed); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("message", "Failed to save block cursor"), zap.Uint64("block", completed))
				return nil
			}
			lastSavedBlock = completed
			lastSaveTime = e.clock.Now()

			return nil
		}

		if err := e.subscriber.SubscribeEvents(ctx, startBlock, handler); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *emitter) startBlock(ctx context.Context) (uint64, error) {
	chain := string(e.config.ChainID)

	if e.config.StartBlock != 0 {
		logger.InfoCtx(ctx, "Starting from configured block", zap.String("chain", chain), zap.Uint64("block", e.config.StartBlock))
		return e.config.StartBlock, nil
	}

	lastBlock, err := e.cursors.GetBlockCursor(ctx, chain)
	if err != nil {
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}
	if lastBlock > 0 {
		logger.InfoCtx(ctx, "Resuming after last published block", zap.String("chain", chain), zap.Uint64("block", lastBlock))
		return lastBlock + 1, nil
	}

	latestBlock, err := e.subscriber.GetLatestBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block number: %w", err)
	}
	logger.InfoCtx(ctx, "Starting from latest block", zap.String("chain", chain), zap.Uint64("block", latestBlock))

	return latestBlock, nil
}

// Close closes the emitter and cleans up resources
func (e *emitter) Close() {
	e.subscriber.Close()
	e.publisher.Close()
}
