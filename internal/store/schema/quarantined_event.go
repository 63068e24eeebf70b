package schema

import (
	"time"

	"gorm.io/datatypes"
)

// QuarantineReason classifies why an event was set aside
type QuarantineReason string

const (
	// QuarantineReasonPrecision marks an amount that does not fit uint256 integer precision
	QuarantineReasonPrecision QuarantineReason = "precision_violation"
)

// QuarantinedEvent represents the quarantined_events table - events held for operator review
type QuarantinedEvent struct {
	// ID is a ULID so rows sort by quarantine time
	ID string `gorm:"column:id;primaryKey;type:text"`
	// EventID is txHash-logIndex when the raw event carried enough to derive it
	EventID *string `gorm:"column:event_id;type:text"`
	// Reason classifies the failure
	Reason QuarantineReason `gorm:"column:reason;not null;type:text"`
	// Error is the error message that caused quarantine
	Error string `gorm:"column:error;not null;type:text"`
	// Payload is the raw event in canonical (RFC 8785) JSON form
	Payload datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`
	// CreatedAt is the timestamp when the event was quarantined
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the QuarantinedEvent model
func (QuarantinedEvent) TableName() string {
	return "quarantined_events"
}
