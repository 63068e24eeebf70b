package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/ledger"
	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/mocks"
	"github.com/feral-file/claim-ledger/internal/normalizer"
)

const (
	zero  = domain.ETHEREUM_ZERO_ADDRESS
	addrA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	addrB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	addrC = "0xcccccccccccccccccccccccccccccccccccccccc"
	addrD = "0xdddddddddddddddddddddddddddddddddddddddd"
	token = "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func meta(txHash string, logIndex uint64) domain.EventMeta {
	return domain.EventMeta{
		ID:          domain.NewEventID(txHash, logIndex),
		TxHash:      txHash,
		LogIndex:    logIndex,
		BlockNumber: 100,
		BlockHash:   "0xblock",
		Timestamp:   time.Unix(1700000000, 0).UTC(),
	}
}

func transfer(txHash string, logIndex uint64, from, to string, value int64) domain.TransferEvent {
	return domain.TransferEvent{
		EventMeta: meta(txHash, logIndex),
		From:      from,
		To:        to,
		Value:     big.NewInt(value),
	}
}

func withdraw(txHash string, logIndex uint64, signer, recipient string, amount int64) domain.WithdrawEvent {
	return domain.WithdrawEvent{
		EventMeta: meta(txHash, logIndex),
		Signer:    signer,
		Recipient: recipient,
		Token:     token,
		Amount:    big.NewInt(amount),
	}
}

func setupAggregator() (ledger.Aggregator, *memoryLedger) {
	st := newMemoryLedger()
	return ledger.NewAggregator(st, adapter.NewClock(), adapter.NewJSON()), st
}

func assertUser(t *testing.T, st *memoryLedger, address string, balance, claimed, count int64) {
	t.Helper()
	u := st.user(address)
	require.NotNil(t, u, "user %s should exist", address)
	assert.Equal(t, big.NewInt(balance).String(), u.balance.String(), "balance of %s", address)
	assert.Equal(t, big.NewInt(claimed).String(), u.claimed.String(), "total claimed of %s", address)
	assert.Equal(t, count, u.claimCount, "claim count of %s", address)
	assert.Equal(t, count == 0, u.firstClaimAt == nil, "first claim of %s", address)
}

func TestAggregator_SimpleClaim(t *testing.T) {
	agg, st := setupAggregator()
	ctx := context.Background()

	logIndex := uint64(0)
	event, err := normalizer.New(adapter.NewClock()).Normalize(domain.RawEvent{
		Contract: domain.ContractTreasury,
		Event:    domain.EventWithdraw,
		Params: map[string]string{
			domain.ParamSigner:    "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",
			domain.ParamRecipient: "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB",
			domain.ParamToken:     token,
			domain.ParamAmount:    "100",
		},
		TransactionHash: "0xhash",
		LogIndex:        &logIndex,
		BlockNumber:     1,
		BlockTimestamp:  1700000000,
	})
	require.NoError(t, err)

	outcome, err := agg.Apply(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, ledger.OutcomeApplied, outcome)

	assertUser(t, st, addrB, 0, 100, 1)
	assert.Nil(t, st.user(addrA), "signer must not be credited")

	state := st.snapshot()
	require.Contains(t, state.claims, "0xhash-0")
	claim := state.claims["0xhash-0"]
	assert.Equal(t, addrB, claim.UserAddress)
	assert.Equal(t, addrA, claim.Signer)
	assert.Equal(t, "100", claim.Amount.String())
}

func TestAggregator_MintThenTransfer(t *testing.T) {
	agg, st := setupAggregator()
	ctx := context.Background()

	outcome, err := agg.Apply(ctx, transfer("0xmint", 0, zero, addrA, 50))
	require.NoError(t, err)
	assert.Equal(t, ledger.OutcomeApplied, outcome)

	outcome, err = agg.Apply(ctx, transfer("0xsend", 0, addrA, addrB, 20))
	require.NoError(t, err)
	assert.Equal(t, ledger.OutcomeApplied, outcome)

	assertUser(t, st, addrA, 30, 50, 1)
	assertUser(t, st, addrB, 20, 20, 1)
	assert.Nil(t, st.user(zero), "zero address must not get an aggregate")
}

func TestAggregator_ReplaySafety(t *testing.T) {
	agg, st := setupAggregator()
	ctx := context.Background()

	mint := transfer("0xmint", 0, zero, addrA, 50)
	_, err := agg.Apply(ctx, mint)
	require.NoError(t, err)
	_, err = agg.Apply(ctx, transfer("0xsend", 0, addrA, addrB, 20))
	require.NoError(t, err)

	before := st.snapshot()

	outcome, err := agg.Apply(ctx, mint)
	require.NoError(t, err)
	assert.Equal(t, ledger.OutcomeDuplicate, outcome)
	assert.Equal(t, before, st.snapshot())
}

func TestAggregator_Idempotence(t *testing.T) {
	events := []domain.Event{
		transfer("0x1", 0, zero, addrA, 10),
		transfer("0x2", 1, addrA, addrB, 3),
		transfer("0x3", 2, addrB, zero, 1),
		withdraw("0x4", 0, addrC, addrD, 7),
		domain.DepositEvent{EventMeta: meta("0x5", 0), Signer: addrC, Token: token, Amount: big.NewInt(1000)},
	}

	for _, event := range events {
		t.Run(string(event.Name())+"/"+event.Meta().ID.String(), func(t *testing.T) {
			agg, st := setupAggregator()
			ctx := context.Background()

			outcome, err := agg.Apply(ctx, event)
			require.NoError(t, err)
			assert.Equal(t, ledger.OutcomeApplied, outcome)
			once := st.snapshot()

			outcome, err = agg.Apply(ctx, event)
			require.NoError(t, err)
			assert.Equal(t, ledger.OutcomeDuplicate, outcome)
			assert.Equal(t, once, st.snapshot())
		})
	}
}

func TestAggregator_ApprovalIgnored(t *testing.T) {
	agg, st := setupAggregator()

	outcome, err := agg.Apply(context.Background(), domain.ApprovalEvent{
		EventMeta: meta("0xapprove", 0),
		Owner:     addrA,
		Spender:   addrB,
		Value:     big.NewInt(5),
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.OutcomeIgnored, outcome)

	state := st.snapshot()
	assert.Empty(t, state.users)
	assert.Empty(t, state.transfers)
}

func TestAggregator_DepositDoesNotTouchUsers(t *testing.T) {
	agg, st := setupAggregator()

	outcome, err := agg.Apply(context.Background(), domain.DepositEvent{
		EventMeta: meta("0xdeposit", 4),
		Signer:    addrA,
		Token:     token,
		Amount:    big.NewInt(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, ledger.OutcomeApplied, outcome)

	state := st.snapshot()
	assert.Empty(t, state.users)
	assert.Contains(t, state.deposits, "0xdeposit-4")
}

func TestAggregator_SelfTransfer(t *testing.T) {
	agg, st := setupAggregator()
	ctx := context.Background()

	_, err := agg.Apply(ctx, transfer("0xmint", 0, zero, addrA, 10))
	require.NoError(t, err)
	_, err = agg.Apply(ctx, transfer("0xself", 0, addrA, addrA, 4))
	require.NoError(t, err)

	assertUser(t, st, addrA, 10, 14, 2)
}

func TestAggregator_UnsupportedEvent(t *testing.T) {
	agg, _ := setupAggregator()

	outcome, err := agg.Apply(context.Background(), nil)
	assert.Empty(t, outcome)
	assert.ErrorIs(t, err, domain.ErrMalformedEvent)
}

func TestAggregator_PersistenceFailureIsAtomic(t *testing.T) {
	agg, st := setupAggregator()
	ctx := context.Background()

	st.failDeltas = errors.New("connection reset")
	event := transfer("0xmint", 0, zero, addrA, 50)

	outcome, err := agg.Apply(ctx, event)
	assert.Empty(t, outcome)
	assert.ErrorIs(t, err, domain.ErrPersistenceFailure)
	assert.Contains(t, err.Error(), "connection reset")

	state := st.snapshot()
	assert.Empty(t, state.transfers, "fact must roll back with the aggregate")
	assert.Empty(t, state.users)

	// Redelivery after recovery applies exactly once
	st.failDeltas = nil
	outcome, err = agg.Apply(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, ledger.OutcomeApplied, outcome)
	assertUser(t, st, addrA, 50, 50, 1)
}

func TestAggregator_ClaimTimestamps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := mocks.NewMockClock(ctrl)
	st := newMemoryLedger()
	agg := ledger.NewAggregator(st, clock, adapter.NewJSON())
	ctx := context.Background()

	t1 := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	gomock.InOrder(
		clock.EXPECT().Now().Return(t1),
		clock.EXPECT().Now().Return(t2),
	)

	_, err := agg.Apply(ctx, withdraw("0x1", 0, addrA, addrB, 5))
	require.NoError(t, err)
	_, err = agg.Apply(ctx, withdraw("0x2", 0, addrA, addrB, 5))
	require.NoError(t, err)

	u := st.user(addrB)
	require.NotNil(t, u)
	require.NotNil(t, u.firstClaimAt)
	require.NotNil(t, u.lastClaimAt)
	assert.True(t, u.firstClaimAt.Equal(t1))
	assert.True(t, u.lastClaimAt.Equal(t2))
	assert.Equal(t, int64(2), u.claimCount)
}

func TestAggregator_Conservation(t *testing.T) {
	agg, st := setupAggregator()
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	addresses := []string{addrA, addrB, addrC, addrD}

	for i, addr := range addresses {
		_, err := agg.Apply(ctx, transfer(fmt.Sprintf("0xmint%d", i), 0, zero, addr, 1000))
		require.NoError(t, err)
	}

	sum := func() *big.Int {
		total := new(big.Int)
		for _, u := range st.snapshot().users {
			total.Add(total, u.balance)
		}
		return total
	}
	before := sum()
	assert.Equal(t, "4000", before.String())

	for i := 0; i < 200; i++ {
		from := addresses[rng.Intn(len(addresses))]
		to := addresses[rng.Intn(len(addresses))]
		_, err := agg.Apply(ctx, transfer(fmt.Sprintf("0xtx%d", i), uint64(i%5), from, to, rng.Int63n(500)))
		require.NoError(t, err)
	}

	assert.Equal(t, before.String(), sum().String())
}

func TestAggregator_Monotonicity(t *testing.T) {
	agg, st := setupAggregator()
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))
	addresses := []string{zero, addrA, addrB, addrC}

	type watermark struct {
		claimed *big.Int
		count   int64
	}
	marks := map[string]watermark{}

	for i := 0; i < 300; i++ {
		var event domain.Event
		if rng.Intn(4) == 0 {
			event = withdraw(fmt.Sprintf("0xw%d", i), 0, addrD, addresses[1+rng.Intn(3)], rng.Int63n(100))
		} else {
			event = transfer(fmt.Sprintf("0xt%d", i), 0, addresses[rng.Intn(4)], addresses[rng.Intn(4)], rng.Int63n(100))
		}
		// Redeliver some events to mix duplicates into the history
		if rng.Intn(5) == 0 {
			_, err := agg.Apply(ctx, event)
			require.NoError(t, err)
		}
		_, err := agg.Apply(ctx, event)
		require.NoError(t, err)

		for addr, u := range st.snapshot().users {
			prev, ok := marks[addr]
			if ok {
				assert.GreaterOrEqual(t, u.claimed.Cmp(prev.claimed), 0, "total claimed decreased for %s", addr)
				assert.GreaterOrEqual(t, u.claimCount, prev.count, "claim count decreased for %s", addr)
			}
			assert.GreaterOrEqual(t, u.claimed.Sign(), 0)
			marks[addr] = watermark{claimed: new(big.Int).Set(u.claimed), count: u.claimCount}
		}
	}
}

func TestAggregator_ConcurrentDuplicateDelivery(t *testing.T) {
	agg, st := setupAggregator()
	ctx := context.Background()
	event := withdraw("0xrace", 0, addrA, addrB, 100)

	var wg sync.WaitGroup
	outcomes := make(chan ledger.Outcome, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := agg.Apply(ctx, event)
			assert.NoError(t, err)
			outcomes <- outcome
		}()
	}
	wg.Wait()
	close(outcomes)

	counts := map[ledger.Outcome]int{}
	for o := range outcomes {
		counts[o]++
	}
	assert.Equal(t, 1, counts[ledger.OutcomeApplied])
	assert.Equal(t, 19, counts[ledger.OutcomeDuplicate])
	assertUser(t, st, addrB, 0, 100, 1)
}

func TestAggregator_ConcurrentEventsSameAddress(t *testing.T) {
	agg, st := setupAggregator()
	ctx := context.Background()

	_, err := agg.Apply(ctx, transfer("0xmint", 0, zero, addrA, 1000))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var event domain.Event
			if i%2 == 0 {
				event = transfer(fmt.Sprintf("0xout%d", i), 0, addrA, addrB, 10)
			} else {
				event = transfer(fmt.Sprintf("0xin%d", i), 0, addrC, addrA, 1)
			}
			_, err := agg.Apply(ctx, event)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// 25 outgoing legs of 10 and 25 incoming legs of 1
	assertUser(t, st, addrA, 1000-250+25, 1000+25, 26)
	assertUser(t, st, addrB, 250, 250, 25)
	assertUser(t, st, addrC, -25, 0, 0)
}

func TestTransferDeltas(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("mint only credits recipient", func(t *testing.T) {
		deltas := ledger.TransferDeltas(transfer("0x1", 0, zero, addrA, 5), now)
		require.Len(t, deltas, 1)
		assert.Equal(t, addrA, deltas[0].Address)
		assert.Equal(t, "5", deltas[0].BalanceDelta.String())
		assert.Equal(t, "5", deltas[0].ClaimedDelta.String())
		assert.Equal(t, int64(1), deltas[0].ClaimCountDelta)
		require.NotNil(t, deltas[0].ClaimedAt)
		assert.True(t, deltas[0].ClaimedAt.Equal(now))
	})

	t.Run("burn only debits sender", func(t *testing.T) {
		deltas := ledger.TransferDeltas(transfer("0x1", 0, addrA, zero, 5), now)
		require.Len(t, deltas, 1)
		assert.Equal(t, addrA, deltas[0].Address)
		assert.Equal(t, "-5", deltas[0].BalanceDelta.String())
		assert.Equal(t, "0", deltas[0].ClaimedDelta.String())
		assert.Equal(t, int64(0), deltas[0].ClaimCountDelta)
		assert.Nil(t, deltas[0].ClaimedAt)
	})

	t.Run("transfer touches both legs", func(t *testing.T) {
		deltas := ledger.TransferDeltas(transfer("0x1", 0, addrA, addrB, 5), now)
		require.Len(t, deltas, 2)
		assert.Equal(t, addrB, deltas[0].Address)
		assert.Equal(t, addrA, deltas[1].Address)
	})

	t.Run("self transfer merges into one delta", func(t *testing.T) {
		deltas := ledger.TransferDeltas(transfer("0x1", 0, addrA, addrA, 5), now)
		require.Len(t, deltas, 1)
		assert.Equal(t, "0", deltas[0].BalanceDelta.String())
		assert.Equal(t, "5", deltas[0].ClaimedDelta.String())
		assert.Equal(t, int64(1), deltas[0].ClaimCountDelta)
	})

	t.Run("zero to zero has no effect", func(t *testing.T) {
		assert.Empty(t, ledger.TransferDeltas(transfer("0x1", 0, zero, zero, 5), now))
	})
}

func TestWithdrawDeltas(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	deltas := ledger.WithdrawDeltas(withdraw("0x1", 0, addrA, addrB, 9), now)
	require.Len(t, deltas, 1)
	assert.Equal(t, addrB, deltas[0].Address)
	assert.Equal(t, "0", deltas[0].BalanceDelta.String())
	assert.Equal(t, "9", deltas[0].ClaimedDelta.String())
	assert.Equal(t, int64(1), deltas[0].ClaimCountDelta)
}
