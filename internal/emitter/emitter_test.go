package emitter_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/emitter"
	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/messaging"
	"github.com/feral-file/claim-ledger/internal/mocks"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

type testEmitterMocks struct {
	ctrl       *gomock.Controller
	subscriber *mocks.MockSubscriber
	publisher  *mocks.MockPublisher
	cursors    *mocks.MockCursorStore
	clock      *mocks.MockClock
}

func setupTestEmitter(t *testing.T) *testEmitterMocks {
	ctrl := gomock.NewController(t)

	return &testEmitterMocks{
		ctrl:       ctrl,
		subscriber: mocks.NewMockSubscriber(ctrl),
		publisher:  mocks.NewMockPublisher(ctrl),
		cursors:    mocks.NewMockCursorStore(ctrl),
		clock:      mocks.NewMockClock(ctrl),
	}
}

func (tm *testEmitterMocks) newEmitter(startBlock uint64) emitter.Emitter {
	return emitter.NewEmitter(
		tm.subscriber,
		tm.publisher,
		tm.cursors,
		emitter.Config{
			ChainID:         domain.ChainBaseMainnet,
			StartBlock:      startBlock,
			CursorSaveFreq:  10,
			CursorSaveDelay: 5 * time.Second,
		},
		tm.clock,
	)
}

func withdrawAt(block uint64, logIndex uint64) *domain.RawEvent {
	return &domain.RawEvent{
		Contract: domain.ContractTreasury,
		Event:    domain.EventWithdraw,
		Params: map[string]string{
			domain.ParamSigner:    "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			domain.ParamRecipient: "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
			domain.ParamToken:     "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee",
			domain.ParamAmount:    "100",
		},
		TransactionHash: "0xhash",
		LogIndex:        &logIndex,
		BlockNumber:     block,
		BlockTimestamp:  1700000000,
	}
}

func TestEmitter_Run_WithStartBlock(t *testing.T) {
	tm := setupTestEmitter(t)
	defer tm.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Now()
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	first := withdrawAt(1001, 0)
	later := withdrawAt(1020, 3)

	tm.publisher.EXPECT().PublishEvent(gomock.Any(), first).Return(nil)
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), later).Return(nil)

	// 1001 completes only block 1000, which is within the save frequency;
	// 1020 completes 1019, twenty blocks past the start
	tm.cursors.EXPECT().SetBlockCursor(gomock.Any(), string(domain.ChainBaseMainnet), uint64(1019)).Return(nil)

	tm.subscriber.
		EXPECT().
		SubscribeEvents(gomock.Any(), uint64(1000), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
			require.NoError(t, handler(first))
			require.NoError(t, handler(later))
			cancel()
			return nil
		})

	err := tm.newEmitter(1000).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmitter_Run_ResumesAfterCursor(t *testing.T) {
	tm := setupTestEmitter(t)
	defer tm.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tm.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	tm.cursors.EXPECT().GetBlockCursor(gomock.Any(), string(domain.ChainBaseMainnet)).Return(uint64(500), nil)
	tm.subscriber.
		EXPECT().
		SubscribeEvents(gomock.Any(), uint64(501), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
			cancel()
			return nil
		})

	err := tm.newEmitter(0).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmitter_Run_StartsFromLatestWithoutCursor(t *testing.T) {
	tm := setupTestEmitter(t)
	defer tm.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tm.clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	tm.cursors.EXPECT().GetBlockCursor(gomock.Any(), string(domain.ChainBaseMainnet)).Return(uint64(0), nil)
	tm.subscriber.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(1000), nil)
	tm.subscriber.
		EXPECT().
		SubscribeEvents(gomock.Any(), uint64(1000), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
			cancel()
			return nil
		})

	err := tm.newEmitter(0).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmitter_Run_CursorSaveByDelay(t *testing.T) {
	tm := setupTestEmitter(t)
	defer tm.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Now()
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(now).Return(6 * time.Second).AnyTimes()

	event := withdrawAt(1003, 0)
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), event).Return(nil)
	tm.cursors.EXPECT().SetBlockCursor(gomock.Any(), string(domain.ChainBaseMainnet), uint64(1002)).Return(nil)

	tm.subscriber.
		EXPECT().
		SubscribeEvents(gomock.Any(), uint64(1000), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
			require.NoError(t, handler(event))
			cancel()
			return nil
		})

	err := tm.newEmitter(1000).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmitter_Run_SameBlockDoesNotAdvanceCursor(t *testing.T) {
	tm := setupTestEmitter(t)
	defer tm.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Now()
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Hour).AnyTimes()

	// events of the start block complete nothing new
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	tm.subscriber.
		EXPECT().
		SubscribeEvents(gomock.Any(), uint64(1000), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
			require.NoError(t, handler(withdrawAt(1000, 0)))
			require.NoError(t, handler(withdrawAt(1000, 1)))
			cancel()
			return nil
		})

	err := tm.newEmitter(1000).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmitter_Run_PublishErrorStops(t *testing.T) {
	tm := setupTestEmitter(t)
	defer tm.ctrl.Finish()

	tm.clock.EXPECT().Now().Return(time.Now()).AnyTimes()

	publishErr := errors.New("nats unavailable")
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(publishErr)

	tm.subscriber.
		EXPECT().
		SubscribeEvents(gomock.Any(), uint64(1000), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
			return handler(withdrawAt(1001, 0))
		})

	err := tm.newEmitter(1000).Run(context.Background())
	assert.ErrorIs(t, err, publishErr)
}

func TestEmitter_Run_CursorSaveErrorContinues(t *testing.T) {
	tm := setupTestEmitter(t)
	defer tm.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Now()
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	gomock.InOrder(
		tm.cursors.EXPECT().SetBlockCursor(gomock.Any(), string(domain.ChainBaseMainnet), uint64(1019)).Return(errors.New("db down")),
		tm.cursors.EXPECT().SetBlockCursor(gomock.Any(), string(domain.ChainBaseMainnet), uint64(1020)).Return(nil),
	)

	tm.subscriber.
		EXPECT().
		SubscribeEvents(gomock.Any(), uint64(1000), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
			require.NoError(t, handler(withdrawAt(1020, 0)))
			require.NoError(t, handler(withdrawAt(1021, 0)))
			cancel()
			return nil
		})

	err := tm.newEmitter(1000).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmitter_Run_GetBlockCursorError(t *testing.T) {
	tm := setupTestEmitter(t)
	defer tm.ctrl.Finish()

	tm.cursors.EXPECT().GetBlockCursor(gomock.Any(), string(domain.ChainBaseMainnet)).Return(uint64(0), errors.New("db down"))

	err := tm.newEmitter(0).Run(context.Background())
	assert.ErrorContains(t, err, "failed to get block cursor")
}

func TestEmitter_Run_GetLatestBlockError(t *testing.T) {
	tm := setupTestEmitter(t)
	defer tm.ctrl.Finish()

	tm.cursors.EXPECT().GetBlockCursor(gomock.Any(), string(domain.ChainBaseMainnet)).Return(uint64(0), nil)
	tm.subscriber.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(0), errors.New("rpc down"))

	err := tm.newEmitter(0).Run(context.Background())
	assert.ErrorContains(t, err, "failed to get latest block number")
}

func TestEmitter_Close(t *testing.T) {
	tm := setupTestEmitter(t)
	defer tm.ctrl.Finish()

	tm.subscriber.EXPECT().Close()
	tm.publisher.EXPECT().Close()

	tm.newEmitter(0).Close()
}
