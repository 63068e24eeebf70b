package messaging

import (
	"context"

	"github.com/feral-file/claim-ledger/internal/domain"
)

// EventHandler is called for every decoded chain event. Returning an error stops the subscription.
type EventHandler func(event *domain.RawEvent) error

// Subscriber defines the interface for following chain events
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// SubscribeEvents delivers events from fromBlock onwards (0 for latest only) until ctx is done or an error occurs
	SubscribeEvents(ctx context.Context, fromBlock uint64, handler EventHandler) error

	// GetLatestBlock returns the latest block number
	GetLatestBlock(ctx context.Context) (uint64, error)

	// Close closes the connection and cleans up resources
	Close()
}
