package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainBaseMainnet     Chain = "eip155:8453"
	ChainBaseSepolia     Chain = "eip155:84532"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainBaseMainnet ||
		chain == ChainBaseSepolia
}

// Contract names the game contract that emitted a log
type Contract string

const (
	ContractToken    Contract = "Token"
	ContractTreasury Contract = "Treasury"
)

// EventName names a contract event
type EventName string

const (
	EventTransfer EventName = "Transfer"
	EventApproval EventName = "Approval"
	EventDeposit  EventName = "Deposit"
	EventWithdraw EventName = "Withdraw"
)

// Event parameter names as they appear in RawEvent.Params
const (
	ParamFrom      = "from"
	ParamTo        = "to"
	ParamValue     = "value"
	ParamOwner     = "owner"
	ParamSpender   = "spender"
	ParamSigner    = "signer"
	ParamRecipient = "recipient"
	ParamToken     = "token"
	ParamAmount    = "amount"
)

// RawEvent is a decoded chain log as published by the event emitter.
// Amounts are carried as decimal strings and addresses as they came off the chain.
type RawEvent struct {
	Contract        Contract          `json:"contract"`
	Event           EventName         `json:"event"`
	Params          map[string]string `json:"params"`
	TransactionHash string            `json:"transactionHash"`
	LogIndex        *uint64           `json:"logIndex"`
	BlockNumber     uint64            `json:"blockNumber"`
	BlockTimestamp  int64             `json:"blockTimestamp"`
	BlockHash       string            `json:"blockHash,omitempty"`
}

// EventID is the deterministic identifier of a single log entry: lower(txHash) + "-" + logIndex
type EventID string

// NewEventID builds the event identifier for a log entry
func NewEventID(txHash string, logIndex uint64) EventID {
	return EventID(fmt.Sprintf("%s-%d", strings.ToLower(txHash), logIndex))
}

// String returns the string representation of the EventID
func (id EventID) String() string {
	return string(id)
}

// EventMeta carries the provenance shared by every normalized event
type EventMeta struct {
	ID          EventID
	TxHash      string
	LogIndex    uint64
	BlockNumber uint64
	BlockHash   string
	Timestamp   time.Time
	Raw         RawEvent
}

// Meta returns the event provenance
func (m EventMeta) Meta() EventMeta {
	return m
}

// Event is the tagged union of normalized ledger events.
// The set of implementations is closed: TransferEvent, ApprovalEvent, DepositEvent, WithdrawEvent.
type Event interface {
	Meta() EventMeta
	Name() EventName
	isEvent()
}

// TransferEvent is a token Transfer(from, to, value)
type TransferEvent struct {
	EventMeta
	From  string
	To    string
	Value *big.Int
}

// ApprovalEvent is a token Approval(owner, spender, value); it has no ledger effect
type ApprovalEvent struct {
	EventMeta
	Owner   string
	Spender string
	Value   *big.Int
}

// DepositEvent is a treasury Deposit(signer, token, amount)
type DepositEvent struct {
	EventMeta
	Signer string
	Token  string
	Amount *big.Int
}

// WithdrawEvent is a treasury Withdraw(signer, recipient, token, amount), the canonical claim
type WithdrawEvent struct {
	EventMeta
	Signer    string
	Recipient string
	Token     string
	Amount    *big.Int
}

func (TransferEvent) Name() EventName { return EventTransfer }
func (ApprovalEvent) Name() EventName { return EventApproval }
func (DepositEvent) Name() EventName  { return EventDeposit }
func (WithdrawEvent) Name() EventName { return EventWithdraw }

func (TransferEvent) isEvent() {}
func (ApprovalEvent) isEvent() {}
func (DepositEvent) isEvent()  {}
func (WithdrawEvent) isEvent() {}

// IsZeroAddress reports whether a canonical address is the mint/burn sentinel
func IsZeroAddress(address string) bool {
	return address == "" || address == ETHEREUM_ZERO_ADDRESS
}

// NormalizeAddress lower-cases an address for canonical comparison
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// NormalizeAddresses normalizes a list of addresses in place
func NormalizeAddresses(addresses []string) []string {
	for i, address := range addresses {
		addresses[i] = NormalizeAddress(address)
	}
	return addresses
}
