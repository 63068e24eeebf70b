package ethereum_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/mocks"
	ethprovider "github.com/feral-file/claim-ledger/internal/providers/ethereum"
)

type fakeSubscription struct {
	errCh        chan error
	unsubscribed bool
}

func newFakeSubscription() *fakeSubscription {
	return &fakeSubscription{errCh: make(chan error, 1)}
}

func (s *fakeSubscription) Unsubscribe()      { s.unsubscribed = true }
func (s *fakeSubscription) Err() <-chan error { return s.errCh }

func rawEventFor(vLog types.Log) *domain.RawEvent {
	index := uint64(vLog.Index)
	return &domain.RawEvent{
		Contract:        domain.ContractToken,
		Event:           domain.EventTransfer,
		TransactionHash: vLog.TxHash.Hex(),
		LogIndex:        &index,
		BlockNumber:     vLog.BlockNumber,
	}
}

func setupSubscriber(t *testing.T) (*mocks.MockEthereumClient, *fakeSubscription, chan chan<- types.Log) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthereumClient(ctrl)
	sub := newFakeSubscription()
	live := make(chan chan<- types.Log, 1)

	client.EXPECT().LogQuery(gomock.Any(), gomock.Any()).DoAndReturn(
		func(from, to *big.Int) ethereum.FilterQuery {
			return ethereum.FilterQuery{FromBlock: from, ToBlock: to}
		}).AnyTimes()
	client.EXPECT().SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
			live <- ch
			return sub, nil
		})

	return client, sub, live
}

func TestSubscribeEvents_BackfillThenLive(t *testing.T) {
	client, sub, live := setupSubscriber(t)

	backfill := []types.Log{
		transferLog(alice, bob, big.NewInt(1), 10, 0),
		transferLog(alice, bob, big.NewInt(2), 12, 1),
	}
	client.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(12), nil)
	client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
			assert.Equal(t, uint64(10), q.FromBlock.Uint64())
			assert.Equal(t, uint64(12), q.ToBlock.Uint64())
			return backfill, nil
		})
	client.EXPECT().ParseEventLog(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, vLog types.Log) (*domain.RawEvent, error) {
			return rawEventFor(vLog), nil
		}).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var blocks []uint64
	handler := func(event *domain.RawEvent) error {
		blocks = append(blocks, event.BlockNumber)
		if event.BlockNumber == 13 {
			cancel()
		}
		return nil
	}

	done := make(chan error, 1)
	s := ethprovider.NewSubscriber(ethprovider.Config{ChainID: domain.ChainBaseMainnet}, client)
	go func() { done <- s.SubscribeEvents(ctx, 10, handler) }()

	ch := <-live
	// already covered by the backfill
	ch <- transferLog(alice, bob, big.NewInt(2), 12, 1)
	// retracted by a reorg
	removed := transferLog(alice, bob, big.NewInt(3), 13, 0)
	removed.Removed = true
	ch <- removed
	ch <- transferLog(alice, bob, big.NewInt(4), 13, 2)

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []uint64{10, 12, 13}, blocks)
	assert.True(t, sub.unsubscribed)
}

func TestSubscribeEvents_HandlerErrorStops(t *testing.T) {
	client, _, live := setupSubscriber(t)

	client.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(5), nil)
	client.EXPECT().ParseEventLog(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, vLog types.Log) (*domain.RawEvent, error) {
			return rawEventFor(vLog), nil
		})

	done := make(chan error, 1)
	s := ethprovider.NewSubscriber(ethprovider.Config{ChainID: domain.ChainBaseMainnet}, client)
	go func() {
		done <- s.SubscribeEvents(context.Background(), 0, func(*domain.RawEvent) error {
			return errors.New("publish failed")
		})
	}()

	ch := <-live
	ch <- transferLog(alice, bob, big.NewInt(1), 6, 0)

	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish failed")
}

func TestSubscribeEvents_SubscriptionError(t *testing.T) {
	client, sub, live := setupSubscriber(t)
	client.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(5), nil)

	done := make(chan error, 1)
	s := ethprovider.NewSubscriber(ethprovider.Config{ChainID: domain.ChainBaseMainnet}, client)
	go func() {
		done <- s.SubscribeEvents(context.Background(), 0, func(*domain.RawEvent) error { return nil })
	}()

	<-live
	sub.errCh <- errors.New("websocket closed")

	assert.ErrorIs(t, <-done, domain.ErrSubscriptionFailed)
}

func TestSubscribeEvents_SubscribeFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthereumClient(ctrl)
	client.EXPECT().LogQuery(gomock.Any(), gomock.Any()).Return(ethereum.FilterQuery{})
	client.EXPECT().SubscribeFilterLogs(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("dial failed"))

	s := ethprovider.NewSubscriber(ethprovider.Config{ChainID: domain.ChainBaseMainnet}, client)
	err := s.SubscribeEvents(context.Background(), 1, func(*domain.RawEvent) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSubscriptionFailed)
}

func TestSubscribeEvents_TransientParseErrorStops(t *testing.T) {
	client, sub, _ := setupSubscriber(t)

	client.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(12), nil)
	client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return([]types.Log{
		transferLog(alice, bob, big.NewInt(1), 10, 0),
		transferLog(alice, bob, big.NewInt(2), 12, 1),
	}, nil)
	rpcErr := errors.New("failed to get block timestamp: i/o timeout")
	client.EXPECT().ParseEventLog(gomock.Any(), gomock.Any()).Return(nil, rpcErr)

	var blocks []uint64
	s := ethprovider.NewSubscriber(ethprovider.Config{ChainID: domain.ChainBaseMainnet}, client)
	err := s.SubscribeEvents(context.Background(), 10, func(event *domain.RawEvent) error {
		blocks = append(blocks, event.BlockNumber)
		return nil
	})

	require.ErrorIs(t, err, rpcErr)
	assert.Empty(t, blocks, "later logs must not be handled past a failed one")
	assert.True(t, sub.unsubscribed)
}

func TestSubscribeEvents_MalformedLogSkipped(t *testing.T) {
	client, _, live := setupSubscriber(t)

	client.EXPECT().GetLatestBlock(gomock.Any()).Return(uint64(12), nil)
	client.EXPECT().FilterLogs(gomock.Any(), gomock.Any()).Return([]types.Log{
		transferLog(alice, bob, big.NewInt(1), 10, 0),
		transferLog(alice, bob, big.NewInt(2), 12, 1),
	}, nil)
	gomock.InOrder(
		client.EXPECT().ParseEventLog(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: unknown event signature", domain.ErrMalformedEvent)),
		client.EXPECT().ParseEventLog(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, vLog types.Log) (*domain.RawEvent, error) {
				return rawEventFor(vLog), nil
			}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var blocks []uint64
	done := make(chan error, 1)
	s := ethprovider.NewSubscriber(ethprovider.Config{ChainID: domain.ChainBaseMainnet}, client)
	go func() {
		done <- s.SubscribeEvents(ctx, 10, func(event *domain.RawEvent) error {
			blocks = append(blocks, event.BlockNumber)
			cancel()
			return nil
		})
	}()

	<-live
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, []uint64{12}, blocks)
}
