package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Deposit represents the deposits table - treasury funding, recorded for observability only
type Deposit struct {
	EventID     string         `gorm:"column:event_id;primaryKey;type:text"`
	Signer      string         `gorm:"column:signer;not null;type:text"`
	Token       string         `gorm:"column:token;not null;type:text"`
	Amount      string         `gorm:"column:amount;not null;type:numeric(78,0)"`
	TxHash      string         `gorm:"column:tx_hash;not null;type:text"`
	LogIndex    uint64         `gorm:"column:log_index;not null;type:bigint"`
	BlockNumber uint64         `gorm:"column:block_number;not null;type:bigint"`
	BlockHash   *string        `gorm:"column:block_hash;type:text"`
	Timestamp   time.Time      `gorm:"column:timestamp;not null;type:timestamptz"`
	Raw         datatypes.JSON `gorm:"column:raw;type:jsonb"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the Deposit model
func (Deposit) TableName() string {
	return "deposits"
}
