package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Claim represents the claims table - one immutable row per treasury Withdraw log
type Claim struct {
	// EventID is txHash-logIndex and the commit gate for idempotent application
	EventID string `gorm:"column:event_id;primaryKey;type:text"`
	// UserAddress is the withdrawal recipient, not its signer
	UserAddress string `gorm:"column:user_address;not null;type:text"`
	// Signer is the account that initiated the withdrawal
	Signer string `gorm:"column:signer;not null;type:text"`
	// Token is the ERC-20 contract address that was withdrawn
	Token string `gorm:"column:token;not null;type:text"`
	// Amount is the claimed value (stored as string to support up to 78 digits)
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
	// Nonce is not present in the Withdraw log and is always NULL
	Nonce *string `gorm:"column:nonce;type:text"`

	TxHash      string         `gorm:"column:tx_hash;not null;type:text"`
	LogIndex    uint64         `gorm:"column:log_index;not null;type:bigint"`
	BlockNumber uint64         `gorm:"column:block_number;not null;type:bigint"`
	BlockHash   *string        `gorm:"column:block_hash;type:text"`
	Timestamp   time.Time      `gorm:"column:timestamp;not null;type:timestamptz"`
	Raw         datatypes.JSON `gorm:"column:raw;type:jsonb"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the Claim model
func (Claim) TableName() string {
	return "claims"
}
