package block

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/logger"
)

// DEFAULT_MAX_TIMESTAMPS bounds the number of cached block timestamps
const DEFAULT_MAX_TIMESTAMPS = 4096

type head struct {
	number    uint64
	fetchedAt time.Time
}

// Provider gives cached access to the chain head and block timestamps.
// Logs of one block share a timestamp, so a burst of claims in one block costs one RPC call.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=Provider=MockBlockProvider,Fetcher=MockBlockFetcher
type Provider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)

	// GetBlockTimestamp returns the timestamp of a block, potentially from cache
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Fetcher reads block information from the chain
type Fetcher interface {
	// FetchLatestBlock fetches the latest block number
	FetchLatestBlock(ctx context.Context) (uint64, error)

	// FetchBlockTimestamp fetches the timestamp of a block
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Config holds configuration for the Provider
type Config struct {
	// HeadTTL is how long the latest block number is served from cache
	HeadTTL time.Duration

	// StaleWindow is how long a cached head may still be served when fetching fails
	StaleWindow time.Duration

	// MaxTimestamps bounds the timestamp cache; the lowest blocks are evicted first
	MaxTimestamps int
}

type provider struct {
	fetcher Fetcher
	config  Config
	clock   adapter.Clock

	mu         sync.RWMutex
	head       *head
	timestamps map[uint64]time.Time
}

// NewProvider creates a new caching Provider
func NewProvider(fetcher Fetcher, config Config, clock adapter.Clock) Provider {
	if config.MaxTimestamps <= 0 {
		config.MaxTimestamps = DEFAULT_MAX_TIMESTAMPS
	}
	return &provider{
		fetcher:    fetcher,
		config:     config,
		clock:      clock,
		timestamps: make(map[uint64]time.Time),
	}
}

func (p *provider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()
	if cached != nil && now.Sub(cached.fetchedAt) < p.config.HeadTTL {
		return cached.number, nil
	}

	number, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.fetchedAt) < p.config.StaleWindow {
			logger.WarnCtx(ctx, "Using stale block number", zap.Error(err), zap.Uint64("block_number", cached.number))
			return cached.number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.head = &head{number: number, fetchedAt: now}
	p.mu.Unlock()

	return number, nil
}

func (p *provider) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	p.mu.RLock()
	ts, ok := p.timestamps[blockNumber]
	p.mu.RUnlock()
	if ok {
		return ts, nil
	}

	logger.DebugCtx(ctx, "Fetching block timestamp", zap.Uint64("block_number", blockNumber))
	ts, err := p.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch timestamp for block %d: %w", blockNumber, err)
	}

	p.mu.Lock()
	p.timestamps[blockNumber] = ts
	p.evict()
	p.mu.Unlock()

	return ts, nil
}

// evict drops the lowest block numbers until the cache fits. Callers hold mu.
func (p *provider) evict() {
	excess := len(p.timestamps) - p.config.MaxTimestamps
	if excess <= 0 {
		return
	}

	numbers := make([]uint64, 0, len(p.timestamps))
	for n := range p.timestamps {
		numbers = append(numbers, n)
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	for _, n := range numbers[:excess] {
		delete(p.timestamps, n)
	}
}
