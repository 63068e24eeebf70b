package constants

import "github.com/feral-file/claim-ledger/internal/domain"

const (
	MAX_PAGE_LIMIT        = domain.MAX_PAGE_LIMIT
	DEFAULT_HISTORY_LIMIT = domain.DEFAULT_PAGE_LIMIT
	MAX_SCORE             = int64(1) << 53
	CURRENT_PERIOD        = "current"
)
