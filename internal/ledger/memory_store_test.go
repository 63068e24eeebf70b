package ledger_test

import (
	"context"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/feral-file/claim-ledger/internal/store"
	"github.com/feral-file/claim-ledger/internal/store/schema"
)

// memoryUser is the in-memory form of a user aggregate
type memoryUser struct {
	balance      *big.Int
	claimed      *big.Int
	claimCount   int64
	firstClaimAt *time.Time
	lastClaimAt  *time.Time
}

func (u *memoryUser) clone() *memoryUser {
	c := *u
	c.balance = new(big.Int).Set(u.balance)
	c.claimed = new(big.Int).Set(u.claimed)
	return &c
}

type memoryState struct {
	users     map[string]*memoryUser
	transfers map[string]store.CreateTransferInput
	claims    map[string]store.CreateClaimInput
	deposits  map[string]store.CreateDepositInput
}

func (s memoryState) clone() memoryState {
	c := memoryState{
		users:     make(map[string]*memoryUser, len(s.users)),
		transfers: make(map[string]store.CreateTransferInput, len(s.transfers)),
		claims:    make(map[string]store.CreateClaimInput, len(s.claims)),
		deposits:  make(map[string]store.CreateDepositInput, len(s.deposits)),
	}
	for k, v := range s.users {
		c.users[k] = v.clone()
	}
	for k, v := range s.transfers {
		c.transfers[k] = v
	}
	for k, v := range s.claims {
		c.claims[k] = v
	}
	for k, v := range s.deposits {
		c.deposits[k] = v
	}
	return c
}

// memoryLedger is an in-memory store.LedgerStore. Transactions are serialized by a
// single mutex and roll back by restoring a snapshot.
type memoryLedger struct {
	mu    sync.Mutex
	state memoryState

	// failDeltas makes ApplyUserDeltas fail, after the fact was written
	failDeltas error
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		state: memoryState{
			users:     map[string]*memoryUser{},
			transfers: map[string]store.CreateTransferInput{},
			claims:    map[string]store.CreateClaimInput{},
			deposits:  map[string]store.CreateDepositInput{},
		},
	}
}

func (m *memoryLedger) WithinTx(ctx context.Context, fn func(tx store.LedgerStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	if err := fn(&memoryTx{m: m}); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

func (m *memoryLedger) GetUser(ctx context.Context, address string) (*schema.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{m: m}).GetUser(ctx, address)
}

func (m *memoryLedger) ApplyUserDeltas(ctx context.Context, deltas []store.UserDelta) error {
	return m.WithinTx(ctx, func(tx store.LedgerStore) error {
		return tx.ApplyUserDeltas(ctx, deltas)
	})
}

func (m *memoryLedger) CreateTransfer(ctx context.Context, input store.CreateTransferInput) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{m: m}).CreateTransfer(ctx, input)
}

func (m *memoryLedger) GetTransfersByAddress(ctx context.Context, address string, limit int) ([]schema.Transfer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{m: m}).GetTransfersByAddress(ctx, address, limit)
}

func (m *memoryLedger) CreateClaim(ctx context.Context, input store.CreateClaimInput) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{m: m}).CreateClaim(ctx, input)
}

func (m *memoryLedger) GetClaimsByUser(ctx context.Context, address string, limit int) ([]schema.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{m: m}).GetClaimsByUser(ctx, address, limit)
}

func (m *memoryLedger) CreateDeposit(ctx context.Context, input store.CreateDepositInput) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return (&memoryTx{m: m}).CreateDeposit(ctx, input)
}

// user returns a copy of an aggregate, or nil
func (m *memoryLedger) user(address string) *memoryUser {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.state.users[address]
	if !ok {
		return nil
	}
	return u.clone()
}

// snapshot returns a deep copy of the full state
func (m *memoryLedger) snapshot() memoryState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// memoryTx operates on the state while the ledger mutex is held
type memoryTx struct {
	m *memoryLedger
}

func (t *memoryTx) WithinTx(ctx context.Context, fn func(tx store.LedgerStore) error) error {
	return fn(t)
}

func (t *memoryTx) GetUser(ctx context.Context, address string) (*schema.User, error) {
	u, ok := t.m.state.users[address]
	if !ok {
		return nil, nil
	}
	return &schema.User{
		Address:        address,
		CurrentBalance: u.balance.String(),
		TotalClaimed:   u.claimed.String(),
		ClaimCount:     u.claimCount,
		FirstClaimAt:   u.firstClaimAt,
		LastClaimAt:    u.lastClaimAt,
	}, nil
}

func (t *memoryTx) ApplyUserDeltas(ctx context.Context, deltas []store.UserDelta) error {
	if t.m.failDeltas != nil {
		return t.m.failDeltas
	}

	for _, d := range deltas {
		u, ok := t.m.state.users[d.Address]
		if !ok {
			u = &memoryUser{balance: new(big.Int), claimed: new(big.Int)}
			t.m.state.users[d.Address] = u
		}
		if d.BalanceDelta != nil {
			u.balance.Add(u.balance, d.BalanceDelta)
		}
		if d.ClaimedDelta != nil {
			u.claimed.Add(u.claimed, d.ClaimedDelta)
		}
		u.claimCount += d.ClaimCountDelta
		if d.ClaimedAt != nil {
			at := *d.ClaimedAt
			if u.firstClaimAt == nil {
				u.firstClaimAt = &at
			}
			u.lastClaimAt = &at
		}
	}
	return nil
}

func (t *memoryTx) CreateTransfer(ctx context.Context, input store.CreateTransferInput) (bool, error) {
	if _, ok := t.m.state.transfers[input.EventID]; ok {
		return false, nil
	}
	t.m.state.transfers[input.EventID] = input
	return true, nil
}

func (t *memoryTx) GetTransfersByAddress(ctx context.Context, address string, limit int) ([]schema.Transfer, error) {
	var transfers []schema.Transfer
	for _, in := range t.m.state.transfers {
		if in.FromAddress == address || in.ToAddress == address {
			transfers = append(transfers, schema.Transfer{
				EventID:     in.EventID,
				FromAddress: in.FromAddress,
				ToAddress:   in.ToAddress,
				Amount:      in.Amount.String(),
				Timestamp:   in.Timestamp,
			})
		}
	}
	sort.Slice(transfers, func(i, j int) bool {
		return transfers[i].Timestamp.After(transfers[j].Timestamp)
	})
	if len(transfers) > limit {
		transfers = transfers[:limit]
	}
	return transfers, nil
}

func (t *memoryTx) CreateClaim(ctx context.Context, input store.CreateClaimInput) (bool, error) {
	if _, ok := t.m.state.claims[input.EventID]; ok {
		return false, nil
	}
	t.m.state.claims[input.EventID] = input
	return true, nil
}

func (t *memoryTx) GetClaimsByUser(ctx context.Context, address string, limit int) ([]schema.Claim, error) {
	var claims []schema.Claim
	for _, in := range t.m.state.claims {
		if in.UserAddress == address {
			claims = append(claims, schema.Claim{
				EventID:     in.EventID,
				UserAddress: in.UserAddress,
				Amount:      in.Amount.String(),
				Timestamp:   in.Timestamp,
			})
		}
	}
	sort.Slice(claims, func(i, j int) bool {
		return claims[i].Timestamp.After(claims[j].Timestamp)
	})
	if len(claims) > limit {
		claims = claims[:limit]
	}
	return claims, nil
}

func (t *memoryTx) CreateDeposit(ctx context.Context, input store.CreateDepositInput) (bool, error) {
	if _, ok := t.m.state.deposits[input.EventID]; ok {
		return false, nil
	}
	t.m.state.deposits[input.EventID] = input
	return true, nil
}
