package store

import (
	"context"
	"math/big"
	"time"

	"github.com/feral-file/claim-ledger/internal/store/schema"
)

// UserDelta is the change an event makes to one address aggregate.
// A nil amount is treated as zero.
type UserDelta struct {
	Address         string
	BalanceDelta    *big.Int
	ClaimedDelta    *big.Int
	ClaimCountDelta int64
	// ClaimedAt is set for incoming value events; it seeds first_claim_at and overwrites last_claim_at
	ClaimedAt *time.Time
}

// CreateTransferInput represents the data needed to record a Transfer fact
type CreateTransferInput struct {
	EventID     string
	TxHash      string
	LogIndex    uint64
	FromAddress string
	ToAddress   string
	Amount      *big.Int
	BlockNumber uint64
	BlockHash   *string
	Timestamp   time.Time
	Raw         []byte
}

// CreateClaimInput represents the data needed to record a Claim fact
type CreateClaimInput struct {
	EventID     string
	UserAddress string
	Signer      string
	Token       string
	Amount      *big.Int
	TxHash      string
	LogIndex    uint64
	BlockNumber uint64
	BlockHash   *string
	Timestamp   time.Time
	Raw         []byte
}

// CreateDepositInput represents the data needed to record a Deposit fact
type CreateDepositInput struct {
	EventID     string
	Signer      string
	Token       string
	Amount      *big.Int
	TxHash      string
	LogIndex    uint64
	BlockNumber uint64
	BlockHash   *string
	Timestamp   time.Time
	Raw         []byte
}

// UpsertScoreInput represents a game score submission for one period
type UpsertScoreInput struct {
	Identity    string
	PeriodKey   string
	Score       int64
	SubmittedAt time.Time
}

// CreateQuarantinedEventInput represents an event set aside for operators
type CreateQuarantinedEventInput struct {
	ID      string
	EventID *string
	Reason  schema.QuarantineReason
	Error   string
	Payload []byte
}

// ScoreLeaderboardRow is a ranked score joined with the matching user aggregate, if any
type ScoreLeaderboardRow struct {
	Identity    string
	Score       int64
	SubmittedAt time.Time
	FarcasterID *int64
	ClaimCount  *int64
}

// UserStore defines the operations on per-address aggregates
type UserStore interface {
	// GetUser retrieves the aggregate for an address, or nil if none exists
	GetUser(ctx context.Context, address string) (*schema.User, error)
	// ApplyUserDeltas upserts the deltas in ascending address order, incrementing existing rows
	ApplyUserDeltas(ctx context.Context, deltas []UserDelta) error
}

// TransferStore defines the operations on Transfer facts
type TransferStore interface {
	// CreateTransfer inserts the fact and reports false if the event id already exists
	CreateTransfer(ctx context.Context, input CreateTransferInput) (bool, error)
	// GetTransfersByAddress returns transfers sent or received by an address, newest first
	GetTransfersByAddress(ctx context.Context, address string, limit int) ([]schema.Transfer, error)
}

// ClaimStore defines the operations on Claim facts
type ClaimStore interface {
	// CreateClaim inserts the fact and reports false if the event id already exists
	CreateClaim(ctx context.Context, input CreateClaimInput) (bool, error)
	// GetClaimsByUser returns claims received by an address, newest first
	GetClaimsByUser(ctx context.Context, address string, limit int) ([]schema.Claim, error)
}

// DepositStore defines the operations on Deposit facts
type DepositStore interface {
	// CreateDeposit inserts the fact and reports false if the event id already exists
	CreateDeposit(ctx context.Context, input CreateDepositInput) (bool, error)
}

// LedgerStore is the storage port used by the ledger aggregator
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=LedgerStore=MockLedgerStore,Store=MockStore,QuarantineStore=MockQuarantineStore
type LedgerStore interface {
	UserStore
	TransferStore
	ClaimStore
	DepositStore

	// WithinTx runs fn inside a single database transaction.
	// The transaction is rolled back if fn returns an error.
	WithinTx(ctx context.Context, fn func(tx LedgerStore) error) error
}

// LeaderboardStore defines the read queries behind the leaderboard and score writes
type LeaderboardStore interface {
	// GetClaimLeaderboard returns users with at least one claim ordered by
	// total_claimed desc, first_claim_at asc, address asc
	GetClaimLeaderboard(ctx context.Context, limit int, offset int) ([]schema.User, error)
	// GetScoreLeaderboard returns the scores of a period ordered by
	// score desc, submitted_at asc, identity asc
	GetScoreLeaderboard(ctx context.Context, periodKey string, limit int, offset int) ([]ScoreLeaderboardRow, error)
	// UpsertScore stores the score only if none exists or it is strictly greater; reports whether it was stored
	UpsertScore(ctx context.Context, input UpsertScoreInput) (bool, error)
}

// QuarantineStore stores events that must not be applied or dropped
type QuarantineStore interface {
	// CreateQuarantinedEvent records an event for operator review
	CreateQuarantinedEvent(ctx context.Context, input CreateQuarantinedEventInput) error
}

// Store defines the interface for database operations
type Store interface {
	LedgerStore
	LeaderboardStore
	QuarantineStore
	CursorStore

	// Ping checks the database connection
	Ping(ctx context.Context) error
}
