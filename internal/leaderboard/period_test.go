package leaderboard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/claim-ledger/internal/leaderboard"
)

func TestPeriodKey(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name string
		at   time.Time
		loc  *time.Location
		want string
	}{
		{
			name: "monday midnight opens the week",
			at:   time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: "2024-03-04",
		},
		{
			name: "sunday last second belongs to previous week",
			at:   time.Date(2024, 3, 3, 23, 59, 59, 0, time.UTC),
			loc:  time.UTC,
			want: "2024-02-26",
		},
		{
			name: "mid week",
			at:   time.Date(2024, 3, 7, 12, 30, 0, 0, time.UTC),
			loc:  time.UTC,
			want: "2024-03-04",
		},
		{
			name: "week crossing a month boundary",
			at:   time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC),
			loc:  time.UTC,
			want: "2024-04-29",
		},
		{
			name: "reference timezone shifts the boundary",
			// Monday 02:00 UTC is still Sunday evening in New York
			at:   time.Date(2024, 3, 4, 2, 0, 0, 0, time.UTC),
			loc:  newYork,
			want: "2024-02-26",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, leaderboard.PeriodKey(tt.at, tt.loc))
		})
	}
}

func TestValidatePeriodKey(t *testing.T) {
	assert.NoError(t, leaderboard.ValidatePeriodKey("2024-03-04"))

	for _, key := range []string{"2024-03-05", "2024-3-4", "current", "", "2024-02-30"} {
		err := leaderboard.ValidatePeriodKey(key)
		assert.ErrorIs(t, err, leaderboard.ErrInvalidPeriodKey, key)
	}
}

func TestLoadLocation(t *testing.T) {
	loc, err := leaderboard.LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = leaderboard.LoadLocation("Mars/Olympus_Mons")
	assert.Error(t, err)
}
