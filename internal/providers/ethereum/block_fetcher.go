package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/block"
)

// ethereumBlockFetcher implements block.Fetcher for EVM chains
type ethereumBlockFetcher struct {
	client adapter.EthClient
	clock  adapter.Clock
}

func NewBlockFetcher(client adapter.EthClient, clock adapter.Clock) block.Fetcher {
	return &ethereumBlockFetcher{client: client, clock: clock}
}

// FetchLatestBlock fetches the latest block number
func (f *ethereumBlockFetcher) FetchLatestBlock(ctx context.Context) (uint64, error) {
	header, err := f.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest header: %w", err)
	}
	return header.Number.Uint64(), nil
}

// FetchBlockTimestamp fetches the header timestamp of a block
func (f *ethereumBlockFetcher) FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	header, err := f.client.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get header %d: %w", blockNumber, err)
	}
	return f.clock.Unix(int64(header.Time), 0).UTC(), nil //nolint:gosec,G115 // header.Time is a unix timestamp well within int64
}
