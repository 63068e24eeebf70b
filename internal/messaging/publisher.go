package messaging

import (
	"context"

	"github.com/feral-file/claim-ledger/internal/domain"
)

// Publisher defines the interface for publishing raw chain events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a raw event; redelivery of the same event id is deduplicated by the broker
	PublishEvent(ctx context.Context, event *domain.RawEvent) error
	// Close closes the connection
	Close()
}
