package schema

import "time"

// User represents the users table - the per-address aggregate folded from ledger events
type User struct {
	// Address is the lower-cased hex address and primary key
	Address string `gorm:"column:address;primaryKey;type:text"`
	// FarcasterID links the address to a Farcaster account; populated out-of-band
	FarcasterID *int64 `gorm:"column:farcaster_id;type:bigint"`
	// CurrentBalance is the signed net of incoming minus outgoing transfers (stored as string to support up to 78 digits)
	CurrentBalance string `gorm:"column:current_balance;not null;type:numeric(78,0)"`
	// TotalClaimed is the cumulative incoming value, never decremented
	TotalClaimed string `gorm:"column:total_claimed;not null;type:numeric(78,0)"`
	// ClaimCount is the number of incoming value events attributed to this address
	ClaimCount int64 `gorm:"column:claim_count;not null;type:bigint"`
	// FirstClaimAt is set once, on the first incoming value event
	FirstClaimAt *time.Time `gorm:"column:first_claim_at;type:timestamptz"`
	// LastClaimAt is updated on every incoming value event
	LastClaimAt *time.Time `gorm:"column:last_claim_at;type:timestamptz"`
	// CreatedAt is the timestamp when the aggregate was first created
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`
	// UpdatedAt is the timestamp when the aggregate was last mutated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
