package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/messaging"
	"github.com/feral-file/claim-ledger/internal/metrics"
)

// Config holds the configuration for Ethereum subscription
type Config struct {
	WebSocketURL string       // WebSocket URL (e.g., wss://base-mainnet.g.alchemy.com/v2/KEY)
	ChainID      domain.Chain // e.g., "eip155:8453" for Base mainnet
}

type ethSubscriber struct {
	client  EthereumClient
	chainID domain.Chain
}

// NewSubscriber creates a new Ethereum event subscriber
func NewSubscriber(cfg Config, ethereumClient EthereumClient) messaging.Subscriber {
	return &ethSubscriber{
		client:  ethereumClient,
		chainID: cfg.ChainID,
	}
}

// SubscribeEvents follows token and treasury logs starting at fromBlock.
// The live subscription is opened first, then [fromBlock, head] is backfilled,
// and live logs at or below the backfilled head are dropped.
func (s *ethSubscriber) SubscribeEvents(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
	logs := make(chan types.Log, 256)
	sub, err := s.client.SubscribeFilterLogs(ctx, s.client.LogQuery(nil, nil), logs)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSubscriptionFailed, err)
	}
	defer func() {
		logger.InfoCtx(ctx, "Unsubscribing from ethereum event logs")
		sub.Unsubscribe()
	}()

	head, err := s.client.GetLatestBlock(ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest block: %w", err)
	}

	backfilled := uint64(0)
	if fromBlock > 0 && fromBlock <= head {
		logger.InfoCtx(ctx, "Backfilling event logs",
			zap.String("chain", string(s.chainID)),
			zap.Uint64("from", fromBlock),
			zap.Uint64("to", head))

		history, err := s.client.FilterLogs(ctx, s.client.LogQuery(new(big.Int).SetUint64(fromBlock), new(big.Int).SetUint64(head)))
		if err != nil {
			return fmt.Errorf("failed to backfill logs: %w", err)
		}
		for _, vLog := range history {
			if err := s.handleLog(ctx, vLog, handler); err != nil {
				return err
			}
		}
		backfilled = head
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("%w: %w", domain.ErrSubscriptionFailed, err)
		case vLog := <-logs:
			if vLog.BlockNumber <= backfilled && !vLog.Removed {
				continue
			}
			if err := s.handleLog(ctx, vLog, handler); err != nil {
				return err
			}
		}
	}
}

func (s *ethSubscriber) handleLog(ctx context.Context, vLog types.Log, handler messaging.EventHandler) error {
	if vLog.Removed {
		// retracted by a reorg; already-applied effects are not compensated
		metrics.ReorgLogsSkippedTotal.WithLabelValues(string(s.chainID)).Inc()
		logger.WarnCtx(ctx, "Skipping removed log",
			zap.String("txHash", vLog.TxHash.Hex()),
			zap.Uint("logIndex", vLog.Index),
			zap.Uint64("block", vLog.BlockNumber))
		return nil
	}

	event, err := s.client.ParseEventLog(ctx, vLog)
	if err != nil {
		// a log that can never decode is skipped; anything else stops the
		// subscription so the cursor stays behind this block
		if errors.Is(err, domain.ErrMalformedEvent) {
			logger.ErrorCtx(ctx, err, zap.String("message", "Skipping undecodable log"))
			return nil
		}
		return fmt.Errorf("failed to parse log %s-%d: %w", vLog.TxHash.Hex(), vLog.Index, err)
	}
	if event == nil {
		return nil
	}

	if err := handler(event); err != nil {
		return fmt.Errorf("failed to handle event %s-%d: %w", event.TransactionHash, vLog.Index, err)
	}

	return nil
}

// GetLatestBlock returns the latest block number
func (s *ethSubscriber) GetLatestBlock(ctx context.Context) (uint64, error) {
	return s.client.GetLatestBlock(ctx)
}

// Close closes the connection
func (s *ethSubscriber) Close() {
	if s.client == nil {
		return
	}

	s.client.Close()
	logger.Info("Ethereum WebSocket connection closed")
}
