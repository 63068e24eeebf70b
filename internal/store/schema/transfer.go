package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Transfer represents the transfers table - one immutable row per token Transfer log
type Transfer struct {
	// EventID is txHash-logIndex and the commit gate for idempotent application
	EventID string `gorm:"column:event_id;primaryKey;type:text"`
	// TxHash is the transaction hash that emitted the log
	TxHash string `gorm:"column:tx_hash;not null;type:text"`
	// LogIndex is the position of the log within the block
	LogIndex uint64 `gorm:"column:log_index;not null;type:bigint"`
	// FromAddress is the sender (zero address for mints)
	FromAddress string `gorm:"column:from_address;not null;type:text"`
	// ToAddress is the recipient (zero address for burns)
	ToAddress string `gorm:"column:to_address;not null;type:text"`
	// Amount is the transferred value (stored as string to support up to 78 digits)
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
	// BlockNumber is the block number where this event was recorded
	BlockNumber uint64 `gorm:"column:block_number;not null;type:bigint"`
	// BlockHash is the hash of the block containing this event
	BlockHash *string `gorm:"column:block_hash;type:text"`
	// Timestamp is the blockchain timestamp when this event occurred
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// Raw contains the raw event as JSON for auditing
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this record was indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the Transfer model
func (Transfer) TableName() string {
	return "transfers"
}
