package ledger

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/store"
)

// Outcome is the terminal result of applying one event
type Outcome string

const (
	// OutcomeApplied means the fact was recorded and aggregates were updated
	OutcomeApplied Outcome = "applied"
	// OutcomeDuplicate means the event id was already recorded; nothing changed
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeIgnored means the event carries no ledger effect (Approval)
	OutcomeIgnored Outcome = "ignored"
)

// Aggregator folds normalized events into facts and per-address aggregates
//
//go:generate mockgen -source=aggregator.go -destination=../mocks/aggregator.go -package=mocks -mock_names=Aggregator=MockAggregator
type Aggregator interface {
	// Apply records the event at most once. Storage errors wrap domain.ErrPersistenceFailure
	// and leave no partial effect; the event may be redelivered.
	Apply(ctx context.Context, event domain.Event) (Outcome, error)
}

type aggregator struct {
	store store.LedgerStore
	clock adapter.Clock
	json  adapter.JSON
}

// NewAggregator creates a new ledger aggregator
func NewAggregator(st store.LedgerStore, clock adapter.Clock, json adapter.JSON) Aggregator {
	return &aggregator{
		store: st,
		clock: clock,
		json:  json,
	}
}

func (a *aggregator) Apply(ctx context.Context, event domain.Event) (Outcome, error) {
	switch e := event.(type) {
	case domain.TransferEvent:
		return a.applyTransfer(ctx, e)
	case domain.WithdrawEvent:
		return a.applyWithdraw(ctx, e)
	case domain.DepositEvent:
		return a.applyDeposit(ctx, e)
	case domain.ApprovalEvent:
		logger.DebugCtx(ctx, "Ignoring approval event", zap.String("event_id", e.ID.String()))
		return OutcomeIgnored, nil
	default:
		return "", fmt.Errorf("%w: unsupported event type %T", domain.ErrMalformedEvent, event)
	}
}

func (a *aggregator) applyTransfer(ctx context.Context, e domain.TransferEvent) (Outcome, error) {
	raw, err := a.json.Marshal(e.Raw)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal raw event %s: %v", domain.ErrMalformedEvent, e.ID, err)
	}

	input := store.CreateTransferInput{
		EventID:     e.ID.String(),
		TxHash:      e.TxHash,
		LogIndex:    e.LogIndex,
		FromAddress: e.From,
		ToAddress:   e.To,
		Amount:      e.Value,
		BlockNumber: e.BlockNumber,
		BlockHash:   blockHashPtr(e.BlockHash),
		Timestamp:   e.Timestamp,
		Raw:         raw,
	}

	return a.commit(ctx, e.EventMeta, func(tx store.LedgerStore) (bool, error) {
		return tx.CreateTransfer(ctx, input)
	}, func() []store.UserDelta {
		return TransferDeltas(e, a.clock.Now())
	})
}

func (a *aggregator) applyWithdraw(ctx context.Context, e domain.WithdrawEvent) (Outcome, error) {
	raw, err := a.json.Marshal(e.Raw)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal raw event %s: %v", domain.ErrMalformedEvent, e.ID, err)
	}

	input := store.CreateClaimInput{
		EventID:     e.ID.String(),
		UserAddress: e.Recipient,
		Signer:      e.Signer,
		Token:       e.Token,
		Amount:      e.Amount,
		TxHash:      e.TxHash,
		LogIndex:    e.LogIndex,
		BlockNumber: e.BlockNumber,
		BlockHash:   blockHashPtr(e.BlockHash),
		Timestamp:   e.Timestamp,
		Raw:         raw,
	}

	return a.commit(ctx, e.EventMeta, func(tx store.LedgerStore) (bool, error) {
		return tx.CreateClaim(ctx, input)
	}, func() []store.UserDelta {
		return WithdrawDeltas(e, a.clock.Now())
	})
}

func (a *aggregator) applyDeposit(ctx context.Context, e domain.DepositEvent) (Outcome, error) {
	raw, err := a.json.Marshal(e.Raw)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal raw event %s: %v", domain.ErrMalformedEvent, e.ID, err)
	}

	input := store.CreateDepositInput{
		EventID:     e.ID.String(),
		Signer:      e.Signer,
		Token:       e.Token,
		Amount:      e.Amount,
		TxHash:      e.TxHash,
		LogIndex:    e.LogIndex,
		BlockNumber: e.BlockNumber,
		BlockHash:   blockHashPtr(e.BlockHash),
		Timestamp:   e.Timestamp,
		Raw:         raw,
	}

	return a.commit(ctx, e.EventMeta, func(tx store.LedgerStore) (bool, error) {
		return tx.CreateDeposit(ctx, input)
	}, nil)
}

// commit inserts the fact first and only applies the deltas when the insert won.
// Both happen in one transaction.
func (a *aggregator) commit(
	ctx context.Context,
	meta domain.EventMeta,
	record func(tx store.LedgerStore) (bool, error),
	deltas func() []store.UserDelta,
) (Outcome, error) {
	outcome := OutcomeDuplicate

	err := a.store.WithinTx(ctx, func(tx store.LedgerStore) error {
		inserted, err := record(tx)
		if err != nil {
			return err
		}
		if !inserted {
			return nil
		}

		if deltas != nil {
			if d := deltas(); len(d) > 0 {
				if err := tx.ApplyUserDeltas(ctx, d); err != nil {
					return err
				}
			}
		}

		outcome = OutcomeApplied
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: event %s: %w", domain.ErrPersistenceFailure, meta.ID, err)
	}

	if outcome == OutcomeDuplicate {
		logger.InfoCtx(ctx, "Skipping duplicate event", zap.String("event_id", meta.ID.String()))
	}

	return outcome, nil
}

// TransferDeltas computes the aggregate changes of a Transfer.
// The recipient gains balance, claimed value, one claim and claim timestamps; the sender loses balance.
// Zero-address legs are skipped and a self-transfer collapses into one delta.
func TransferDeltas(e domain.TransferEvent, now time.Time) []store.UserDelta {
	value := e.Value
	if value == nil {
		value = new(big.Int)
	}

	var deltas []store.UserDelta
	if !domain.IsZeroAddress(e.To) {
		deltas = append(deltas, store.UserDelta{
			Address:         e.To,
			BalanceDelta:    new(big.Int).Set(value),
			ClaimedDelta:    new(big.Int).Set(value),
			ClaimCountDelta: 1,
			ClaimedAt:       &now,
		})
	}
	if !domain.IsZeroAddress(e.From) {
		deltas = append(deltas, store.UserDelta{
			Address:      e.From,
			BalanceDelta: new(big.Int).Neg(value),
			ClaimedDelta: new(big.Int),
		})
	}

	return mergeDeltas(deltas)
}

// WithdrawDeltas computes the aggregate changes of a treasury Withdraw.
// Only the recipient is touched, and its balance is left to the matching token Transfer.
func WithdrawDeltas(e domain.WithdrawEvent, now time.Time) []store.UserDelta {
	amount := e.Amount
	if amount == nil {
		amount = new(big.Int)
	}

	return []store.UserDelta{{
		Address:         e.Recipient,
		BalanceDelta:    new(big.Int),
		ClaimedDelta:    new(big.Int).Set(amount),
		ClaimCountDelta: 1,
		ClaimedAt:       &now,
	}}
}

func mergeDeltas(deltas []store.UserDelta) []store.UserDelta {
	if len(deltas) < 2 {
		return deltas
	}

	merged := make([]store.UserDelta, 0, len(deltas))
	index := make(map[string]int, len(deltas))
	for _, d := range deltas {
		i, ok := index[d.Address]
		if !ok {
			index[d.Address] = len(merged)
			merged = append(merged, d)
			continue
		}

		m := &merged[i]
		m.BalanceDelta = new(big.Int).Add(zeroIfNil(m.BalanceDelta), zeroIfNil(d.BalanceDelta))
		m.ClaimedDelta = new(big.Int).Add(zeroIfNil(m.ClaimedDelta), zeroIfNil(d.ClaimedDelta))
		m.ClaimCountDelta += d.ClaimCountDelta
		if d.ClaimedAt != nil {
			m.ClaimedAt = d.ClaimedAt
		}
	}

	return merged
}

func zeroIfNil(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

func blockHashPtr(hash string) *string {
	if hash == "" {
		return nil
	}
	return &hash
}
