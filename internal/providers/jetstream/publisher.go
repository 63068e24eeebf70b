package jetstream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/messaging"
	"github.com/feral-file/claim-ledger/internal/metrics"
)

// SUBJECT_PREFIX is the root of every ledger subject: ledger.<contract>.<event>
const SUBJECT_PREFIX = "ledger"

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// PublishRetryMaxElapsed bounds the time spent retrying one publish
	PublishRetryMaxElapsed time.Duration
}

type publisher struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	streamName string
	chain      domain.Chain
	json       adapter.JSON
	maxElapsed time.Duration
}

// ConnectionOptions returns the NATS options shared by publishers and consumers
func ConnectionOptions(cfg Config) []nats.Option {
	return []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}
}

// NewPublisher creates a new NATS JetStream publisher for events of one chain
func NewPublisher(cfg Config, chain domain.Chain, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	nc, js, err := natsJS.Connect(cfg.URL, ConnectionOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	maxElapsed := cfg.PublishRetryMaxElapsed
	if maxElapsed == 0 {
		maxElapsed = time.Minute
	}

	return &publisher{
		nc:         nc,
		js:         js,
		streamName: cfg.StreamName,
		chain:      chain,
		json:       jsonAdapter,
		maxElapsed: maxElapsed,
	}, nil
}

// PublishEvent publishes a raw event with its event id as the JetStream message id,
// so a republish after an emitter restart is dropped by the stream's duplicate window
func (p *publisher) PublishEvent(ctx context.Context, event *domain.RawEvent) error {
	if event.LogIndex == nil {
		return fmt.Errorf("%w: missing log index", domain.ErrMalformedEvent)
	}

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := Subject(event.Contract, event.Event)
	msgID := domain.NewEventID(event.TransactionHash, *event.LogIndex).String()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = p.maxElapsed

	var attempts int
	operation := func() error {
		ack, err := p.js.Publish(ctx, subject, data, jetstream.WithMsgID(msgID), jetstream.WithExpectStream(p.streamName))
		if err != nil {
			return err
		}
		if ack.Duplicate {
			logger.DebugCtx(ctx, "Event already in stream", zap.String("event_id", msgID))
		}
		return nil
	}
	notify := func(err error, next time.Duration) {
		attempts++
		logger.WarnCtx(ctx, "Publish failed, retrying",
			zap.Error(err),
			zap.String("subject", subject),
			zap.Int("attempt", attempts),
			zap.Duration("next_retry_in", next))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(string(p.chain), string(event.Event), "failed").Inc()
		return fmt.Errorf("failed to publish event %s after %d retries: %w", msgID, attempts, err)
	}

	metrics.EventsPublishedTotal.WithLabelValues(string(p.chain), string(event.Event), "published").Inc()
	return nil
}

// Subject returns the subject a contract event is published on, e.g. ledger.treasury.withdraw
func Subject(contract domain.Contract, event domain.EventName) string {
	return fmt.Sprintf("%s.%s.%s", SUBJECT_PREFIX, strings.ToLower(string(contract)), strings.ToLower(string(event)))
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
