package store

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// amountString renders an amount for a numeric(78,0) column; nil is zero
func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// Ping checks the database connection
func (s *pgStore) Ping(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// WithinTx runs fn against a store bound to a single transaction
func (s *pgStore) WithinTx(ctx context.Context, fn func(tx LedgerStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}

// GetUser retrieves the aggregate for an address
func (s *pgStore) GetUser(ctx context.Context, address string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// ApplyUserDeltas upserts each delta with an in-place increment.
// Rows are touched in ascending address order so concurrent events lock users in the same order.
func (s *pgStore) ApplyUserDeltas(ctx context.Context, deltas []UserDelta) error {
	sorted := make([]UserDelta, len(deltas))
	copy(sorted, deltas)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Address < sorted[j].Address
	})

	for _, delta := range sorted {
		user := schema.User{
			Address:        delta.Address,
			CurrentBalance: amountString(delta.BalanceDelta),
			TotalClaimed:   amountString(delta.ClaimedDelta),
			ClaimCount:     delta.ClaimCountDelta,
			FirstClaimAt:   delta.ClaimedAt,
			LastClaimAt:    delta.ClaimedAt,
		}

		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "address"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"current_balance": gorm.Expr("users.current_balance + EXCLUDED.current_balance"),
				"total_claimed":   gorm.Expr("users.total_claimed + EXCLUDED.total_claimed"),
				"claim_count":     gorm.Expr("users.claim_count + EXCLUDED.claim_count"),
				"first_claim_at":  gorm.Expr("COALESCE(users.first_claim_at, EXCLUDED.first_claim_at)"),
				"last_claim_at":   gorm.Expr("COALESCE(EXCLUDED.last_claim_at, users.last_claim_at)"),
				"updated_at":      gorm.Expr("EXCLUDED.updated_at"),
			}),
		}).Create(&user).Error
		if err != nil {
			return fmt.Errorf("failed to apply delta for user %s: %w", delta.Address, err)
		}
	}

	return nil
}

// CreateTransfer inserts a Transfer fact unless one with the same event id exists
func (s *pgStore) CreateTransfer(ctx context.Context, input CreateTransferInput) (bool, error) {
	transfer := schema.Transfer{
		EventID:     input.EventID,
		TxHash:      input.TxHash,
		LogIndex:    input.LogIndex,
		FromAddress: input.FromAddress,
		ToAddress:   input.ToAddress,
		Amount:      amountString(input.Amount),
		BlockNumber: input.BlockNumber,
		BlockHash:   input.BlockHash,
		Timestamp:   input.Timestamp,
		Raw:         datatypes.JSON(input.Raw),
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(&transfer)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create transfer: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		logger.DebugCtx(ctx, "Transfer already recorded", zap.String("event_id", input.EventID))
		return false, nil
	}

	return true, nil
}

// GetTransfersByAddress returns transfers where the address is sender or recipient
func (s *pgStore) GetTransfersByAddress(ctx context.Context, address string, limit int) ([]schema.Transfer, error) {
	var transfers []schema.Transfer
	err := s.db.WithContext(ctx).
		Where("from_address = ? OR to_address = ?", address, address).
		Order("timestamp DESC, block_number DESC, log_index DESC").
		Limit(limit).
		Find(&transfers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get transfers: %w", err)
	}

	return transfers, nil
}

// CreateClaim inserts a Claim fact unless one with the same event id exists
func (s *pgStore) CreateClaim(ctx context.Context, input CreateClaimInput) (bool, error) {
	claim := schema.Claim{
		EventID:     input.EventID,
		UserAddress: input.UserAddress,
		Signer:      input.Signer,
		Token:       input.Token,
		Amount:      amountString(input.Amount),
		TxHash:      input.TxHash,
		LogIndex:    input.LogIndex,
		BlockNumber: input.BlockNumber,
		BlockHash:   input.BlockHash,
		Timestamp:   input.Timestamp,
		Raw:         datatypes.JSON(input.Raw),
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(&claim)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create claim: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		logger.DebugCtx(ctx, "Claim already recorded", zap.String("event_id", input.EventID))
		return false, nil
	}

	return true, nil
}

// GetClaimsByUser returns the claims received by an address
func (s *pgStore) GetClaimsByUser(ctx context.Context, address string, limit int) ([]schema.Claim, error) {
	var claims []schema.Claim
	err := s.db.WithContext(ctx).
		Where("user_address = ?", address).
		Order("timestamp DESC, block_number DESC, log_index DESC").
		Limit(limit).
		Find(&claims).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get claims: %w", err)
	}

	return claims, nil
}

// CreateDeposit inserts a Deposit fact unless one with the same event id exists
func (s *pgStore) CreateDeposit(ctx context.Context, input CreateDepositInput) (bool, error) {
	deposit := schema.Deposit{
		EventID:     input.EventID,
		Signer:      input.Signer,
		Token:       input.Token,
		Amount:      amountString(input.Amount),
		TxHash:      input.TxHash,
		LogIndex:    input.LogIndex,
		BlockNumber: input.BlockNumber,
		BlockHash:   input.BlockHash,
		Timestamp:   input.Timestamp,
		Raw:         datatypes.JSON(input.Raw),
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(&deposit)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create deposit: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetClaimLeaderboard returns the all-time claim ranking page
func (s *pgStore) GetClaimLeaderboard(ctx context.Context, limit int, offset int) ([]schema.User, error) {
	var users []schema.User
	err := s.db.WithContext(ctx).
		Where("claim_count > 0").
		Order("total_claimed DESC, first_claim_at ASC, address ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get claim leaderboard: %w", err)
	}

	return users, nil
}

// GetScoreLeaderboard returns the score ranking page for a period
func (s *pgStore) GetScoreLeaderboard(ctx context.Context, periodKey string, limit int, offset int) ([]ScoreLeaderboardRow, error) {
	var rows []ScoreLeaderboardRow
	err := s.db.WithContext(ctx).
		Table("scores AS s").
		Select("s.identity, s.score, s.submitted_at, u.farcaster_id, u.claim_count").
		Joins("LEFT JOIN users u ON u.address = s.identity").
		Where("s.period_key = ?", periodKey).
		Order("s.score DESC, s.submitted_at ASC, s.identity ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get score leaderboard: %w", err)
	}

	return rows, nil
}

// UpsertScore keeps the best score per identity and period.
// An equal or lower resubmission leaves the stored row, and its earlier submitted_at, untouched.
func (s *pgStore) UpsertScore(ctx context.Context, input UpsertScoreInput) (bool, error) {
	score := schema.Score{
		Identity:    input.Identity,
		PeriodKey:   input.PeriodKey,
		Score:       input.Score,
		SubmittedAt: input.SubmittedAt,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "identity"}, {Name: "period_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"score":        gorm.Expr("EXCLUDED.score"),
			"submitted_at": gorm.Expr("EXCLUDED.submitted_at"),
			"updated_at":   gorm.Expr("EXCLUDED.updated_at"),
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			gorm.Expr("scores.score < EXCLUDED.score"),
		}},
	}).Create(&score)
	if result.Error != nil {
		return false, fmt.Errorf("failed to upsert score: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// CreateQuarantinedEvent records an event for operator review
func (s *pgStore) CreateQuarantinedEvent(ctx context.Context, input CreateQuarantinedEventInput) error {
	event := schema.QuarantinedEvent{
		ID:      input.ID,
		EventID: input.EventID,
		Reason:  input.Reason,
		Error:   input.Error,
		Payload: datatypes.JSON(input.Payload),
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to create quarantined event: %w", err)
	}

	return nil
}

// GetBlockCursor retrieves the last processed block number for a chain
func (s *pgStore) GetBlockCursor(ctx context.Context, chain string) (uint64, error) {
	return NewCursorStore(s.db).GetBlockCursor(ctx, chain)
}

// SetBlockCursor stores the last processed block number for a chain
func (s *pgStore) SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error {
	return NewCursorStore(s.db).SetBlockCursor(ctx, chain, blockNumber)
}
