package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/block"
	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/logger"
)

// DEFAULT_LOG_STEP is the initial block range of one eth_getLogs call during backfill
const DEFAULT_LOG_STEP = uint64(10_000)

// ErrChainMismatch is returned when the node serves a different chain than configured
var ErrChainMismatch = errors.New("chain id mismatch")

// ClientConfig holds the contracts followed on one chain
type ClientConfig struct {
	ChainID         domain.Chain
	TokenAddress    string
	TreasuryAddress string
	// LogStep is the initial block range of a backfill query; halved when the node refuses
	LogStep uint64
}

// EthereumClient reads and decodes the game contract logs
//
//go:generate mockgen -source=client.go -destination=../../mocks/ethereum_client.go -package=mocks -mock_names=EthereumClient=MockEthereumClient
type EthereumClient interface {
	// VerifyChain checks that the node serves the configured chain
	VerifyChain(ctx context.Context) error

	// LogQuery builds the filter for token and treasury logs in [fromBlock, toBlock]; nil bounds are open
	LogQuery(fromBlock, toBlock *big.Int) ethereum.FilterQuery

	// ParseEventLog decodes a log into a raw event. It returns nil for logs of other contracts or events.
	ParseEventLog(ctx context.Context, vLog types.Log) (*domain.RawEvent, error)

	// SubscribeFilterLogs subscribes to filter logs
	SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)

	// FilterLogs retrieves historical logs, splitting the range to stay under provider limits
	FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)

	// GetLatestBlock returns the latest block number
	GetLatestBlock(ctx context.Context) (uint64, error)

	// Close closes the connection
	Close()
}

type ethereumClient struct {
	chainID   domain.Chain
	client    adapter.EthClient
	blocks    block.Provider
	contracts map[common.Address]domain.Contract
	logStep   uint64
}

// NewClient creates a client following the configured token and treasury contracts
func NewClient(cfg ClientConfig, client adapter.EthClient, blocks block.Provider) (EthereumClient, error) {
	if !common.IsHexAddress(cfg.TokenAddress) {
		return nil, fmt.Errorf("invalid token address: %q", cfg.TokenAddress)
	}
	if !common.IsHexAddress(cfg.TreasuryAddress) {
		return nil, fmt.Errorf("invalid treasury address: %q", cfg.TreasuryAddress)
	}
	step := cfg.LogStep
	if step == 0 {
		step = DEFAULT_LOG_STEP
	}

	return &ethereumClient{
		chainID: cfg.ChainID,
		client:  client,
		blocks:  blocks,
		contracts: map[common.Address]domain.Contract{
			common.HexToAddress(cfg.TokenAddress):    domain.ContractToken,
			common.HexToAddress(cfg.TreasuryAddress): domain.ContractTreasury,
		},
		logStep: step,
	}, nil
}

func (c *ethereumClient) VerifyChain(ctx context.Context) error {
	id, err := c.client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain id: %w", err)
	}
	if got := domain.Chain(fmt.Sprintf("eip155:%s", id.String())); got != c.chainID {
		return fmt.Errorf("%w: node serves %s, configured %s", ErrChainMismatch, got, c.chainID)
	}
	return nil
}

func (c *ethereumClient) LogQuery(fromBlock, toBlock *big.Int) ethereum.FilterQuery {
	addresses := make([]common.Address, 0, len(c.contracts))
	for addr := range c.contracts {
		addresses = append(addresses, addr)
	}
	// map order is random; keep the filter stable
	if len(addresses) == 2 && addresses[0].Cmp(addresses[1]) > 0 {
		addresses[0], addresses[1] = addresses[1], addresses[0]
	}

	topics := make([]common.Hash, 0, len(parsedLedgerABI.Events))
	for _, name := range []domain.EventName{domain.EventTransfer, domain.EventApproval, domain.EventDeposit, domain.EventWithdraw} {
		topics = append(topics, parsedLedgerABI.Events[string(name)].ID)
	}

	return ethereum.FilterQuery{
		FromBlock: fromBlock,
		ToBlock:   toBlock,
		Addresses: addresses,
		Topics:    [][]common.Hash{topics},
	}
}

func (c *ethereumClient) ParseEventLog(ctx context.Context, vLog types.Log) (*domain.RawEvent, error) {
	contract, ok := c.contracts[vLog.Address]
	if !ok {
		logger.DebugCtx(ctx, "Skipping log from unknown contract", zap.String("contract", vLog.Address.Hex()))
		return nil, nil
	}
	if len(vLog.Topics) == 0 {
		return nil, fmt.Errorf("%w: log %s-%d has no topics", domain.ErrMalformedEvent, vLog.TxHash.Hex(), vLog.Index)
	}

	event, err := parsedLedgerABI.EventByID(vLog.Topics[0])
	if err != nil {
		return nil, fmt.Errorf("%w: unknown event signature %s", domain.ErrMalformedEvent, vLog.Topics[0].Hex())
	}
	if !emits(contract, domain.EventName(event.Name)) {
		logger.DebugCtx(ctx, "Skipping event not emitted by contract",
			zap.String("contract", string(contract)),
			zap.String("event", event.Name))
		return nil, nil
	}

	params, err := decodeParams(event, vLog)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s log %s-%d: %w", domain.ErrMalformedEvent, event.Name, vLog.TxHash.Hex(), vLog.Index, err)
	}

	timestamp, err := c.blocks.GetBlockTimestamp(ctx, vLog.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get block timestamp: %w", err)
	}

	logIndex := uint64(vLog.Index)
	return &domain.RawEvent{
		Contract:        contract,
		Event:           domain.EventName(event.Name),
		Params:          params,
		TransactionHash: vLog.TxHash.Hex(),
		LogIndex:        &logIndex,
		BlockNumber:     vLog.BlockNumber,
		BlockTimestamp:  timestamp.Unix(),
		BlockHash:       vLog.BlockHash.Hex(),
	}, nil
}

func emits(contract domain.Contract, event domain.EventName) bool {
	switch contract {
	case domain.ContractToken:
		return event == domain.EventTransfer || event == domain.EventApproval
	case domain.ContractTreasury:
		return event == domain.EventDeposit || event == domain.EventWithdraw
	default:
		return false
	}
}

// decodeParams unpacks indexed arguments from topics and the rest from data,
// rendering addresses as lower-case hex and integers in base 10
func decodeParams(event *abi.Event, vLog types.Log) (map[string]string, error) {
	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(vLog.Topics)-1 != len(indexed) {
		return nil, fmt.Errorf("expected %d topics, got %d", len(indexed)+1, len(vLog.Topics))
	}

	values := make(map[string]interface{}, len(event.Inputs))
	if err := abi.ParseTopicsIntoMap(values, indexed, vLog.Topics[1:]); err != nil {
		return nil, err
	}
	if err := event.Inputs.UnpackIntoMap(values, vLog.Data); err != nil {
		return nil, err
	}

	params := make(map[string]string, len(values))
	for name, value := range values {
		switch v := value.(type) {
		case common.Address:
			params[name] = strings.ToLower(v.Hex())
		case *big.Int:
			params[name] = v.String()
		default:
			return nil, fmt.Errorf("unsupported value type %T for %s", value, name)
		}
	}

	return params, nil
}

func (c *ethereumClient) SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return c.client.SubscribeFilterLogs(ctx, query, ch)
}

func (c *ethereumClient) FilterLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	if query.BlockHash != nil {
		return c.client.FilterLogs(ctx, query)
	}

	fromBlock := uint64(0)
	if query.FromBlock != nil {
		fromBlock = query.FromBlock.Uint64()
	}

	var toBlock uint64
	if query.ToBlock != nil {
		toBlock = query.ToBlock.Uint64()
	} else {
		latest, err := c.GetLatestBlock(ctx)
		if err != nil {
			return nil, err
		}
		toBlock = latest
	}

	return c.getLogsWithRetry(ctx, query, fromBlock, toBlock)
}

// getLogsWithRetry walks [fromBlock, toBlock] in chunks, halving the chunk size
// whenever the provider rejects a range as too large
func (c *ethereumClient) getLogsWithRetry(ctx context.Context, query ethereum.FilterQuery, fromBlock, toBlock uint64) ([]types.Log, error) {
	step := c.logStep

	var allLogs []types.Log
	current := fromBlock
	for current <= toBlock {
		end := min(current+step-1, toBlock)

		chunk := query
		chunk.FromBlock = new(big.Int).SetUint64(current)
		chunk.ToBlock = new(big.Int).SetUint64(end)

		logs, err := c.client.FilterLogs(ctx, chunk)
		if err == nil {
			allLogs = append(allLogs, logs...)
			current = end + 1
			continue
		}

		if !isTooManyResultsError(err) || step == 1 {
			return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", current, end, err)
		}

		step /= 2
		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("newStepSize", step),
			zap.Uint64("fromBlock", current),
			zap.Uint64("toBlock", end))
	}

	return allLogs, nil
}

// isTooManyResultsError checks if the provider refused the range as too large
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum") ||
		strings.Contains(errStr, "block range")
}

func (c *ethereumClient) GetLatestBlock(ctx context.Context) (uint64, error) {
	return c.blocks.GetLatestBlock(ctx)
}

func (c *ethereumClient) Close() {
	c.client.Close()
}
