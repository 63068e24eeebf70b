package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// MaxAmountBits is the width of the on-chain integer type used for amounts (uint256)
	MaxAmountBits = 256

	// Leaderboard constants
	DEFAULT_LEADERBOARD_TIMEZONE = "UTC"
	PERIOD_KEY_LAYOUT            = "2006-01-02"
	MAX_PAGE_LIMIT               = 100
	DEFAULT_PAGE_LIMIT           = 20
)
