package block_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/claim-ledger/internal/block"
	"github.com/feral-file/claim-ledger/internal/logger"
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

type testProviderMocks struct {
	ctrl     *gomock.Controller
	fetcher  *mocks.MockBlockFetcher
	clock    *mocks.MockClock
	provider block.Provider
}

func setupTest(t *testing.T, cfg block.Config) *testProviderMocks {
	ctrl := gomock.NewController(t)

	tm := &testProviderMocks{
		ctrl:    ctrl,
		fetcher: mocks.NewMockBlockFetcher(ctrl),
		clock:   mocks.NewMockClock(ctrl),
	}
	tm.provider = block.NewProvider(tm.fetcher, cfg, tm.clock)

	return tm
}

var defaultConfig = block.Config{
	HeadTTL:     10 * time.Second,
	StaleWindow: 2 * time.Minute,
}

func TestProvider_GetLatestBlock_UsesCacheWithinTTL(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)

	n, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), n)

	tm.clock.EXPECT().Now().Return(now.Add(5 * time.Second))

	n, err = tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), n)
}

func TestProvider_GetLatestBlock_RefreshesAfterTTL(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		tm.clock.EXPECT().Now().Return(now),
		tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil),
		tm.clock.EXPECT().Now().Return(now.Add(11*time.Second)),
		tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1001), nil),
	)

	_, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)

	n, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1001), n)
}

func TestProvider_GetLatestBlock_StaleFallback(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		tm.clock.EXPECT().Now().Return(now),
		tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil),
		tm.clock.EXPECT().Now().Return(now.Add(30*time.Second)),
		tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("rpc down")),
		tm.clock.EXPECT().Now().Return(now.Add(5*time.Minute)),
		tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("rpc down")),
	)

	_, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)

	n, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), n)

	_, err = tm.provider.GetLatestBlock(ctx)
	assert.Error(t, err)
}

func TestProvider_GetBlockTimestamp_Caches(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	ts := time.Unix(1700000000, 0).UTC()

	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(42)).Return(ts, nil).Times(1)

	for range 3 {
		got, err := tm.provider.GetBlockTimestamp(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, ts, got)
	}
}

func TestProvider_GetBlockTimestamp_Error(t *testing.T) {
	tm := setupTest(t, defaultConfig)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(42)).Return(time.Time{}, errors.New("not found"))

	_, err := tm.provider.GetBlockTimestamp(ctx, 42)
	assert.Error(t, err)
}

func TestProvider_GetBlockTimestamp_EvictsLowestBlocks(t *testing.T) {
	tm := setupTest(t, block.Config{MaxTimestamps: 2})
	defer tm.ctrl.Finish()

	ctx := context.Background()
	ts := time.Unix(1700000000, 0).UTC()

	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(1)).Return(ts, nil).Times(2)
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(2)).Return(ts, nil).Times(1)
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(3)).Return(ts, nil).Times(1)

	for _, n := range []uint64{1, 2, 3, 2, 3, 1} {
		_, err := tm.provider.GetBlockTimestamp(ctx, n)
		require.NoError(t, err)
	}
}
