package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/claim-ledger/internal/api/shared/constants"
	"github.com/feral-file/claim-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/claim-ledger/internal/api/shared/errors"
	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/leaderboard"
	"github.com/feral-file/claim-ledger/internal/store"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// Ping checks the backing store
	Ping(ctx context.Context) error

	// GetLeaderboard retrieves a page of the all-time board or of a weekly board when period is set
	GetLeaderboard(ctx context.Context, period string, limit int, offset int) (*dto.LeaderboardResponse, error)

	// GetUser retrieves the aggregate of a single address
	GetUser(ctx context.Context, address string) (*dto.UserResponse, error)

	// GetTransferHistory retrieves the most recent transfers touching an address
	GetTransferHistory(ctx context.Context, address string, limit int) (*dto.TransferListResponse, error)

	// GetClaimHistory retrieves the most recent claims received by an address
	GetClaimHistory(ctx context.Context, address string, limit int) (*dto.ClaimListResponse, error)

	// SubmitScore records a game score for the current period
	SubmitScore(ctx context.Context, req dto.SubmitScoreRequest) (*dto.SubmitScoreResponse, error)
}

type executor struct {
	store      store.Store
	projection leaderboard.Projection
}

func NewExecutor(store store.Store, projection leaderboard.Projection) Executor {
	return &executor{store: store, projection: projection}
}

func (e *executor) Ping(ctx context.Context) error {
	if err := e.store.Ping(ctx); err != nil {
		return apierrors.NewServiceUnavailableError("Database is not reachable", err.Error())
	}
	return nil
}

func (e *executor) GetLeaderboard(ctx context.Context, period string, limit int, offset int) (*dto.LeaderboardResponse, error) {
	if period == constants.CURRENT_PERIOD {
		period = e.projection.CurrentPeriodKey()
	}

	lb, err := e.projection.GetLeaderboard(ctx, leaderboard.Query{
		PeriodKey: period,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		switch {
		case errors.Is(err, leaderboard.ErrInvalidPeriodKey):
			return nil, apierrors.NewValidationError(fmt.Sprintf("invalid period: %s", period))
		case errors.Is(err, leaderboard.ErrUnavailable):
			return nil, apierrors.NewServiceUnavailableError("Leaderboard is temporarily unavailable", err.Error())
		default:
			return nil, apierrors.NewInternalError("Failed to get leaderboard", err.Error())
		}
	}

	return dto.MapLeaderboardToDTO(lb), nil
}

func (e *executor) GetUser(ctx context.Context, address string) (*dto.UserResponse, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}

	user, err := e.store.GetUser(ctx, address)
	if err != nil {
		return nil, apierrors.NewDatabaseError("Failed to get user", err.Error())
	}

	if user == nil {
		return nil, nil
	}

	return dto.MapUserToDTO(user), nil
}

func (e *executor) GetTransferHistory(ctx context.Context, address string, limit int) (*dto.TransferListResponse, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}

	transfers, err := e.store.GetTransfersByAddress(ctx, address, limit)
	if err != nil {
		return nil, apierrors.NewDatabaseError("Failed to get transfers", err.Error())
	}

	return dto.MapTransfersToDTO(transfers), nil
}

func (e *executor) GetClaimHistory(ctx context.Context, address string, limit int) (*dto.ClaimListResponse, error) {
	address, err := normalizeAddress(address)
	if err != nil {
		return nil, err
	}

	claims, err := e.store.GetClaimsByUser(ctx, address, limit)
	if err != nil {
		return nil, apierrors.NewDatabaseError("Failed to get claims", err.Error())
	}

	return dto.MapClaimsToDTO(claims), nil
}

func (e *executor) SubmitScore(ctx context.Context, req dto.SubmitScoreRequest) (*dto.SubmitScoreResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := e.projection.SubmitScore(ctx, leaderboard.Submission{
		Identity: req.Identity,
		Score:    *req.Score,
	})
	if err != nil {
		if errors.Is(err, leaderboard.ErrInvalidSubmission) {
			return nil, apierrors.NewValidationError(err.Error())
		}
		return nil, apierrors.NewDatabaseError("Failed to submit score", err.Error())
	}

	return &dto.SubmitScoreResponse{
		Identity:  result.Identity,
		PeriodKey: result.PeriodKey,
		Stored:    result.Stored,
	}, nil
}

func normalizeAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", apierrors.NewValidationError(fmt.Sprintf("invalid address: %s", address))
	}
	return domain.NormalizeAddress(common.HexToAddress(address).Hex()), nil
}
