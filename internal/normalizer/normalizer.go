package normalizer

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/domain"
)

// Normalizer turns raw chain log records into canonical ledger events
//
//go:generate mockgen -source=normalizer.go -destination=../mocks/normalizer.go -package=mocks -mock_names=Normalizer=MockNormalizer
type Normalizer interface {
	// Normalize validates a raw event and returns the matching domain.Event variant.
	// Errors wrap domain.ErrMalformedEvent or domain.ErrPrecisionViolation.
	Normalize(raw domain.RawEvent) (domain.Event, error)
}

type normalizer struct {
	clock adapter.Clock
}

// New creates a new event normalizer
func New(clock adapter.Clock) Normalizer {
	return &normalizer{clock: clock}
}

// decimalPattern matches anything that looks like a number, including forms we refuse
var decimalPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]*)?([eE][+-]?[0-9]+)?$`)

// allowedEvents maps each contract to the events it can emit
var allowedEvents = map[domain.Contract][]domain.EventName{
	domain.ContractToken:    {domain.EventTransfer, domain.EventApproval},
	domain.ContractTreasury: {domain.EventDeposit, domain.EventWithdraw},
}

func (n *normalizer) Normalize(raw domain.RawEvent) (domain.Event, error) {
	txHash := strings.TrimSpace(raw.TransactionHash)
	if txHash == "" {
		return nil, fmt.Errorf("%w: missing transaction hash", domain.ErrMalformedEvent)
	}
	if raw.LogIndex == nil {
		return nil, fmt.Errorf("%w: missing log index for tx %s", domain.ErrMalformedEvent, txHash)
	}
	if raw.BlockTimestamp < 0 {
		return nil, fmt.Errorf("%w: negative block timestamp %d", domain.ErrMalformedEvent, raw.BlockTimestamp)
	}

	events, ok := allowedEvents[raw.Contract]
	if !ok {
		return nil, fmt.Errorf("%w: unknown contract %q", domain.ErrMalformedEvent, raw.Contract)
	}
	if !containsEvent(events, raw.Event) {
		return nil, fmt.Errorf("%w: event %q is not emitted by contract %q", domain.ErrMalformedEvent, raw.Event, raw.Contract)
	}

	txHash = strings.ToLower(txHash)
	meta := domain.EventMeta{
		ID:          domain.NewEventID(txHash, *raw.LogIndex),
		TxHash:      txHash,
		LogIndex:    *raw.LogIndex,
		BlockNumber: raw.BlockNumber,
		BlockHash:   strings.ToLower(raw.BlockHash),
		Timestamp:   n.clock.Unix(raw.BlockTimestamp, 0).UTC(),
		Raw:         raw,
	}

	p := params{values: raw.Params}
	var event domain.Event
	switch raw.Event {
	case domain.EventTransfer:
		event = domain.TransferEvent{
			EventMeta: meta,
			From:      p.address(domain.ParamFrom),
			To:        p.address(domain.ParamTo),
			Value:     p.amount(domain.ParamValue),
		}
	case domain.EventApproval:
		event = domain.ApprovalEvent{
			EventMeta: meta,
			Owner:     p.address(domain.ParamOwner),
			Spender:   p.address(domain.ParamSpender),
			Value:     p.amount(domain.ParamValue),
		}
	case domain.EventDeposit:
		event = domain.DepositEvent{
			EventMeta: meta,
			Signer:    p.address(domain.ParamSigner),
			Token:     p.address(domain.ParamToken),
			Amount:    p.amount(domain.ParamAmount),
		}
	case domain.EventWithdraw:
		event = domain.WithdrawEvent{
			EventMeta: meta,
			Signer:    p.address(domain.ParamSigner),
			Recipient: p.address(domain.ParamRecipient),
			Token:     p.address(domain.ParamToken),
			Amount:    p.amount(domain.ParamAmount),
		}
	}

	if p.err != nil {
		return nil, fmt.Errorf("event %s: %w", meta.ID, p.err)
	}

	return event, nil
}

// ParseAmount parses a base-10 or 0x-prefixed hex integer into a uint256-bounded big.Int.
// Fractional, exponent-form, negative and oversized values wrap domain.ErrPrecisionViolation;
// anything that is not a number wraps domain.ErrMalformedEvent.
func ParseAmount(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty amount", domain.ErrMalformedEvent)
	}

	var value *big.Int
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, ok := new(big.Int).SetString(s[2:], 16)
		if !ok || strings.HasPrefix(s[2:], "-") || strings.HasPrefix(s[2:], "+") {
			return nil, fmt.Errorf("%w: invalid hex amount %q", domain.ErrMalformedEvent, s)
		}
		value = v
	} else {
		if !decimalPattern.MatchString(s) {
			return nil, fmt.Errorf("%w: invalid amount %q", domain.ErrMalformedEvent, s)
		}
		if strings.HasPrefix(s, "-") {
			return nil, fmt.Errorf("%w: negative amount %q", domain.ErrPrecisionViolation, s)
		}
		if strings.ContainsAny(s, ".eE") {
			return nil, fmt.Errorf("%w: non-integer amount %q", domain.ErrPrecisionViolation, s)
		}
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%w: invalid amount %q", domain.ErrMalformedEvent, s)
		}
		value = v
	}

	if value.BitLen() > domain.MaxAmountBits {
		return nil, fmt.Errorf("%w: amount %s exceeds uint256", domain.ErrPrecisionViolation, s)
	}

	return value, nil
}

// params reads event parameters and keeps the first error encountered
type params struct {
	values map[string]string
	err    error
}

func (p *params) address(name string) string {
	if p.err != nil {
		return ""
	}
	v, ok := p.values[name]
	if !ok || strings.TrimSpace(v) == "" {
		p.err = fmt.Errorf("%w: missing %s address", domain.ErrMalformedEvent, name)
		return ""
	}
	v = strings.TrimSpace(v)
	if !common.IsHexAddress(v) {
		p.err = fmt.Errorf("%w: invalid %s address %q", domain.ErrMalformedEvent, name, v)
		return ""
	}
	return domain.NormalizeAddress(common.HexToAddress(v).Hex())
}

func (p *params) amount(name string) *big.Int {
	if p.err != nil {
		return nil
	}
	v, ok := p.values[name]
	if !ok {
		p.err = fmt.Errorf("%w: missing %s", domain.ErrMalformedEvent, name)
		return nil
	}
	value, err := ParseAmount(v)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", name, err)
		return nil
	}
	return value
}

func containsEvent(events []domain.EventName, name domain.EventName) bool {
	for _, e := range events {
		if e == name {
			return true
		}
	}
	return false
}
