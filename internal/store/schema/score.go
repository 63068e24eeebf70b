package schema

import "time"

// Score represents the scores table - the best submitted game score per identity and period
type Score struct {
	// Identity is a lower-cased address or a "fid:<n>" Farcaster identity
	Identity string `gorm:"column:identity;primaryKey;type:text"`
	// PeriodKey is the YYYY-MM-DD date of the Monday that opens the scoring week
	PeriodKey string `gorm:"column:period_key;primaryKey;type:text"`
	// Score is the best score submitted for the period
	Score int64 `gorm:"column:score;not null;type:bigint"`
	// SubmittedAt is when the stored score was submitted; the earlier submission wins ties
	SubmittedAt time.Time `gorm:"column:submitted_at;not null;type:timestamptz"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;type:timestamptz"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the Score model
func (Score) TableName() string {
	return "scores"
}
