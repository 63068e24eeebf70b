package dto

import (
	"time"

	"github.com/feral-file/claim-ledger/internal/leaderboard"
	"github.com/feral-file/claim-ledger/internal/store/schema"
)

// UserResponse represents a user aggregate
type UserResponse struct {
	Address        string     `json:"address"`
	FarcasterID    *int64     `json:"farcasterId,omitempty"`
	CurrentBalance string     `json:"currentBalance"`
	TotalClaimed   string     `json:"totalClaimed"`
	ClaimCount     int64      `json:"claimCount"`
	FirstClaimAt   *time.Time `json:"firstClaimAt,omitempty"`
	LastClaimAt    *time.Time `json:"lastClaimAt,omitempty"`
}

// TransferResponse represents a recorded token transfer
type TransferResponse struct {
	EventID     string    `json:"eventId"`
	TxHash      string    `json:"txHash"`
	LogIndex    uint64    `json:"logIndex"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Amount      string    `json:"amount"`
	BlockNumber uint64    `json:"blockNumber"`
	Timestamp   time.Time `json:"timestamp"`
}

// TransferListResponse represents a page of transfers
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
}

// ClaimResponse represents a recorded treasury withdrawal
type ClaimResponse struct {
	EventID     string    `json:"eventId"`
	TxHash      string    `json:"txHash"`
	LogIndex    uint64    `json:"logIndex"`
	User        string    `json:"user"`
	Signer      string    `json:"signer"`
	Token       string    `json:"token"`
	Amount      string    `json:"amount"`
	Nonce       *string   `json:"nonce"`
	BlockNumber uint64    `json:"blockNumber"`
	Timestamp   time.Time `json:"timestamp"`
}

// ClaimListResponse represents a page of claims
type ClaimListResponse struct {
	Items []ClaimResponse `json:"items"`
}

// LeaderboardEntryResponse represents one ranked row
type LeaderboardEntryResponse struct {
	Rank           int        `json:"rank"`
	Address        string     `json:"address"`
	FarcasterID    *int64     `json:"farcasterId"`
	Metric         string     `json:"metric"`
	ClaimCount     int64      `json:"claimCount"`
	LastActivityAt *time.Time `json:"lastActivityAt"`
}

// LeaderboardResponse represents a page of the leaderboard
type LeaderboardResponse struct {
	PeriodKey  *string                    `json:"periodKey"`
	Entries    []LeaderboardEntryResponse `json:"entries"`
	Limit      int                        `json:"limit"`
	Offset     int                        `json:"offset"`
	Stale      bool                       `json:"stale"`
	ComputedAt time.Time                  `json:"computedAt"`
}

// SubmitScoreResponse represents the result of a score submission
type SubmitScoreResponse struct {
	Identity  string `json:"identity"`
	PeriodKey string `json:"periodKey"`
	Stored    bool   `json:"stored"`
}

// MapUserToDTO maps a user aggregate to its response
func MapUserToDTO(u *schema.User) *UserResponse {
	return &UserResponse{
		Address:        u.Address,
		FarcasterID:    u.FarcasterID,
		CurrentBalance: u.CurrentBalance,
		TotalClaimed:   u.TotalClaimed,
		ClaimCount:     u.ClaimCount,
		FirstClaimAt:   u.FirstClaimAt,
		LastClaimAt:    u.LastClaimAt,
	}
}

// MapTransfersToDTO maps transfers to their response
func MapTransfersToDTO(transfers []schema.Transfer) *TransferListResponse {
	items := make([]TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		items = append(items, TransferResponse{
			EventID:     t.EventID,
			TxHash:      t.TxHash,
			LogIndex:    t.LogIndex,
			From:        t.FromAddress,
			To:          t.ToAddress,
			Amount:      t.Amount,
			BlockNumber: t.BlockNumber,
			Timestamp:   t.Timestamp,
		})
	}
	return &TransferListResponse{Items: items}
}

// MapClaimsToDTO maps claims to their response
func MapClaimsToDTO(claims []schema.Claim) *ClaimListResponse {
	items := make([]ClaimResponse, 0, len(claims))
	for _, c := range claims {
		items = append(items, ClaimResponse{
			EventID:     c.EventID,
			TxHash:      c.TxHash,
			LogIndex:    c.LogIndex,
			User:        c.UserAddress,
			Signer:      c.Signer,
			Token:       c.Token,
			Amount:      c.Amount,
			Nonce:       c.Nonce,
			BlockNumber: c.BlockNumber,
			Timestamp:   c.Timestamp,
		})
	}
	return &ClaimListResponse{Items: items}
}

// MapLeaderboardToDTO maps a computed leaderboard to its response
func MapLeaderboardToDTO(lb *leaderboard.Leaderboard) *LeaderboardResponse {
	entries := make([]LeaderboardEntryResponse, 0, len(lb.Entries))
	for _, e := range lb.Entries {
		entries = append(entries, LeaderboardEntryResponse{
			Rank:           e.Rank,
			Address:        e.Address,
			FarcasterID:    e.FarcasterID,
			Metric:         e.Metric,
			ClaimCount:     e.ClaimCount,
			LastActivityAt: e.LastActivityAt,
		})
	}

	var periodKey *string
	if lb.PeriodKey != "" {
		key := lb.PeriodKey
		periodKey = &key
	}

	return &LeaderboardResponse{
		PeriodKey:  periodKey,
		Entries:    entries,
		Limit:      lb.Limit,
		Offset:     lb.Offset,
		Stale:      lb.Stale,
		ComputedAt: lb.ComputedAt,
	}
}
