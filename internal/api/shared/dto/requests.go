package dto

import (
	"fmt"
	"strings"

	"github.com/feral-file/claim-ledger/internal/api/shared/constants"
	apierrors "github.com/feral-file/claim-ledger/internal/api/shared/errors"
)

// SubmitScoreRequest represents the request body for submitting a game score
type SubmitScoreRequest struct {
	Identity string `json:"identity"`
	Score    *int64 `json:"score"`
}

// Validate validates the request body
func (r *SubmitScoreRequest) Validate() error {
	// Validate: identity must be provided
	if strings.TrimSpace(r.Identity) == "" {
		return apierrors.NewValidationError("identity is required")
	}

	// Validate: score must be provided and within range
	if r.Score == nil {
		return apierrors.NewValidationError("score is required")
	}
	if *r.Score < 0 {
		return apierrors.NewValidationError("score must not be negative")
	}
	if *r.Score > constants.MAX_SCORE {
		return apierrors.NewValidationError(fmt.Sprintf("score must not exceed %d", constants.MAX_SCORE))
	}

	return nil
}
