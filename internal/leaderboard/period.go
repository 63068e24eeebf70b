package leaderboard

import (
	"fmt"
	"time"

	"github.com/feral-file/claim-ledger/internal/domain"
)

// PeriodKey returns the key of the weekly period containing t: the date of the most
// recent Monday 00:00 in loc, formatted YYYY-MM-DD.
func PeriodKey(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	daysSinceMonday := (int(local.Weekday()) + 6) % 7
	start := time.Date(local.Year(), local.Month(), local.Day()-daysSinceMonday, 0, 0, 0, 0, loc)
	return start.Format(domain.PERIOD_KEY_LAYOUT)
}

// ValidatePeriodKey checks that key is a YYYY-MM-DD date falling on a Monday
func ValidatePeriodKey(key string) error {
	day, err := time.Parse(domain.PERIOD_KEY_LAYOUT, key)
	if err != nil {
		return fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidPeriodKey, key)
	}
	if day.Weekday() != time.Monday {
		return fmt.Errorf("%w: %q is not a Monday", ErrInvalidPeriodKey, key)
	}
	return nil
}

// LoadLocation resolves the reference timezone, defaulting to UTC
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = domain.DEFAULT_LEADERBOARD_TIMEZONE
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}
	return loc, nil
}
