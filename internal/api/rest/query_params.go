package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/claim-ledger/internal/api/shared/constants"
	apierrors "github.com/feral-file/claim-ledger/internal/api/shared/errors"
)

// LeaderboardQueryParams holds query parameters for GET /leaderboard
type LeaderboardQueryParams struct {
	// Period is a Monday date (YYYY-MM-DD) or "current"; empty means all-time
	Period string `form:"period"`

	// Limit is nil when absent so the projection applies its configured default
	Limit  *int `form:"limit"`
	Offset int  `form:"offset,default=0"`
}

// HistoryQueryParams holds query parameters for the per-user history endpoints
type HistoryQueryParams struct {
	Limit int `form:"limit"`
}

// ParseLeaderboardQuery parses query parameters for GET /leaderboard
func ParseLeaderboardQuery(c *gin.Context) (*LeaderboardQueryParams, error) {
	var params LeaderboardQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit != nil && *params.Limit > constants.MAX_PAGE_LIMIT {
		limit := constants.MAX_PAGE_LIMIT
		params.Limit = &limit
	}

	return &params, nil
}

// PageLimit returns the requested limit, or 0 for the configured default
func (p *LeaderboardQueryParams) PageLimit() int {
	if p.Limit == nil {
		return 0
	}
	return *p.Limit
}

// Validate validates the query parameters
func (p *LeaderboardQueryParams) Validate() error {
	if p.Limit != nil && *p.Limit < 1 {
		return apierrors.NewValidationError("limit must be at least 1")
	}
	if p.Offset < 0 {
		return apierrors.NewValidationError("offset must not be negative")
	}
	return nil
}

// ParseHistoryQuery parses query parameters for GET /users/:address/{transfers,claims}
func ParseHistoryQuery(c *gin.Context) (*HistoryQueryParams, error) {
	params := HistoryQueryParams{Limit: constants.DEFAULT_HISTORY_LIMIT}
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	if params.Limit < 1 {
		return nil, apierrors.NewValidationError("limit must be at least 1")
	}

	// Cap limit
	if params.Limit > constants.MAX_PAGE_LIMIT {
		params.Limit = constants.MAX_PAGE_LIMIT
	}

	return &params, nil
}
