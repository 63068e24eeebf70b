package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/ledger"
	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/metrics"
	"github.com/feral-file/claim-ledger/internal/normalizer"
	jsprovider "github.com/feral-file/claim-ledger/internal/providers/jetstream"
	"github.com/feral-file/claim-ledger/internal/store"
	"github.com/feral-file/claim-ledger/internal/store/schema"
)

const (
	DEFAULT_WORKER_POOL_SIZE  = 8
	DEFAULT_WORKER_QUEUE_SIZE = 256
)

// Config holds the configuration for the ledger bridge
type Config struct {
	URL             string
	StreamName      string
	ConsumerName    string
	MaxReconnects   int
	ReconnectWait   time.Duration
	ConnectionName  string
	AckWaitTimeout  time.Duration
	MaxDeliver      int
	WorkerPoolSize  int
	WorkerQueueSize int
}

// Bridge defines the interface for the ledger bridge
type Bridge interface {
	// Run consumes raw events until ctx is done
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	normalizer normalizer.Normalizer
	aggregator ledger.Aggregator
	quarantine store.QuarantineStore
	json       adapter.JSON
	jcs        adapter.JCS
	clock      adapter.Clock
	config     Config
}

// NewBridge creates a new ledger bridge
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	norm normalizer.Normalizer,
	aggregator ledger.Aggregator,
	quarantine store.QuarantineStore,
	jsonAdapter adapter.JSON,
	jcsAdapter adapter.JCS,
	clock adapter.Clock,
) (Bridge, error) {
	nc, js, err := natsJS.Connect(cfg.URL, jsprovider.ConnectionOptions(jsprovider.Config{
		URL:            cfg.URL,
		StreamName:     cfg.StreamName,
		MaxReconnects:  cfg.MaxReconnects,
		ReconnectWait:  cfg.ReconnectWait,
		ConnectionName: cfg.ConnectionName,
	})...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = DEFAULT_WORKER_POOL_SIZE
	}
	if cfg.WorkerQueueSize <= 0 {
		cfg.WorkerQueueSize = DEFAULT_WORKER_QUEUE_SIZE
	}

	return &bridge{
		nc:         nc,
		js:         js,
		normalizer: norm,
		aggregator: aggregator,
		quarantine: quarantine,
		json:       jsonAdapter,
		jcs:        jcsAdapter,
		clock:      clock,
		config:     cfg,
	}, nil
}

// Run starts consuming raw events and applies them on a worker pool
func (b *bridge) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting ledger bridge", zap.String("stream", b.config.StreamName), zap.String("consumer", b.config.ConsumerName))

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: jsprovider.SUBJECT_PREFIX + ".>",
	})
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.InfoCtx(ctx, "Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	pool := pond.NewPool(
		b.config.WorkerPoolSize,
		pond.WithQueueSize(b.config.WorkerQueueSize),
		pond.WithContext(ctx),
	)
	defer func() {
		pool.StopAndWait()
		logger.InfoCtx(ctx, "Ledger worker pool shutdown complete",
			zap.Uint64("total_submitted", pool.SubmittedTasks()),
			zap.Uint64("total_completed", pool.CompletedTasks()))
	}()

	sub, err := consumer.Consume(func(msg adapter.Message) {
		pool.Submit(func() {
			b.handleMessage(ctx, msg)
		})
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.InfoCtx(ctx, "Started consuming messages", zap.Int("workers", b.config.WorkerPoolSize))

	<-ctx.Done()
	logger.InfoCtx(ctx, "Shutting down ledger bridge")
	return ctx.Err()
}

// handleMessage normalizes and applies one raw event and settles the message:
// ack on any successful outcome, nak on persistence failure so it is redelivered,
// term on events that can never be applied
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	start := b.clock.Now()

	var deliveries uint64
	if md, err := msg.Metadata(); err == nil && md != nil {
		deliveries = md.NumDelivered
	}

	var raw domain.RawEvent
	if err := b.json.Unmarshal(msg.Data(), &raw); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("%w: %w", domain.ErrMalformedEvent, err), zap.String("message", "Failed to unmarshal event"))
		metrics.EventsProcessedTotal.WithLabelValues("unknown", "malformed").Inc()
		b.term(ctx, msg)
		return
	}

	eventName := string(raw.Event)
	defer func() {
		metrics.EventProcessingSeconds.WithLabelValues(eventName).Observe(b.clock.Since(start).Seconds())
	}()

	event, err := b.normalizer.Normalize(raw)
	if err != nil {
		b.reject(ctx, msg, raw, err)
		return
	}

	outcome, err := b.aggregator.Apply(ctx, event)
	if err != nil {
		if errors.Is(err, domain.ErrPersistenceFailure) {
			logger.ErrorCtx(ctx, err,
				zap.String("message", "Failed to apply event, requesting redelivery"),
				zap.String("event_id", event.Meta().ID.String()),
				zap.Uint64("deliveryCount", deliveries))
			metrics.EventsProcessedTotal.WithLabelValues(eventName, "persistence_failure").Inc()
			b.nak(ctx, msg)
			return
		}
		b.reject(ctx, msg, raw, err)
		return
	}

	logger.InfoCtx(ctx, "Event processed",
		zap.String("event_id", event.Meta().ID.String()),
		zap.String("event", eventName),
		zap.String("outcome", string(outcome)),
		zap.Uint64("deliveryCount", deliveries))
	metrics.EventsProcessedTotal.WithLabelValues(eventName, string(outcome)).Inc()

	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to ACK message"))
	}
}

// reject handles events that will never apply: precision violations are quarantined first
func (b *bridge) reject(ctx context.Context, msg adapter.Message, raw domain.RawEvent, cause error) {
	eventName := string(raw.Event)

	if errors.Is(cause, domain.ErrPrecisionViolation) {
		if err := b.quarantineEvent(ctx, raw, cause); err != nil {
			// keep the message so the violation is not lost
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to quarantine event"))
			metrics.EventsProcessedTotal.WithLabelValues(eventName, "persistence_failure").Inc()
			b.nak(ctx, msg)
			return
		}
		logger.ErrorCtx(ctx, cause, zap.String("message", "Event quarantined"), zap.String("txHash", raw.TransactionHash))
		metrics.EventsProcessedTotal.WithLabelValues(eventName, "quarantined").Inc()
		b.term(ctx, msg)
		return
	}

	logger.ErrorCtx(ctx, cause, zap.String("message", "Dropping malformed event"), zap.String("txHash", raw.TransactionHash))
	metrics.EventsProcessedTotal.WithLabelValues(eventName, "malformed").Inc()
	b.term(ctx, msg)
}

func (b *bridge) quarantineEvent(ctx context.Context, raw domain.RawEvent, cause error) error {
	data, err := b.json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	payload, err := b.jcs.Transform(data)
	if err != nil {
		return fmt.Errorf("failed to canonicalize event: %w", err)
	}

	var eventID *string
	if raw.TransactionHash != "" && raw.LogIndex != nil {
		id := domain.NewEventID(raw.TransactionHash, *raw.LogIndex).String()
		eventID = &id
	}

	return b.quarantine.CreateQuarantinedEvent(ctx, store.CreateQuarantinedEventInput{
		ID:      ulid.MustNewDefault(b.clock.Now()).String(),
		EventID: eventID,
		Reason:  schema.QuarantineReasonPrecision,
		Error:   cause.Error(),
		Payload: payload,
	})
}

func (b *bridge) term(ctx context.Context, msg adapter.Message) {
	if err := msg.Term(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
	}
}

func (b *bridge) nak(ctx context.Context, msg adapter.Message) {
	if err := msg.Nak(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to NAK message"))
	}
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	b.nc.Close()
}
