package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/metrics"
	"github.com/feral-file/claim-ledger/internal/store"
)

var (
	// ErrInvalidPeriodKey is returned for a period key that is not a Monday date
	ErrInvalidPeriodKey = errors.New("invalid period key")
	// ErrInvalidSubmission is returned for a score submission with a bad identity or score
	ErrInvalidSubmission = errors.New("invalid score submission")
	// ErrUnavailable is returned when the store failed and no earlier projection exists
	ErrUnavailable = errors.New("leaderboard unavailable")
)

const (
	boardClaims = "claims"
	boardScores = "scores"

	// maxCachedQueries bounds the fallback cache; new queries beyond it are not cached
	maxCachedQueries = 1024
)

var fidPattern = regexp.MustCompile(`^fid:[1-9][0-9]*$`)

// Config holds the leaderboard configuration
type Config struct {
	// Timezone is the IANA zone whose Monday 00:00 opens a scoring week
	Timezone     string
	DefaultLimit int
	MaxLimit     int
}

// Query selects a leaderboard page. An empty PeriodKey selects the all-time claim board.
type Query struct {
	PeriodKey string
	Limit     int
	Offset    int
}

// Entry is one ranked row
type Entry struct {
	Rank           int        `json:"rank"`
	Address        string     `json:"address"`
	FarcasterID    *int64     `json:"farcasterId,omitempty"`
	Metric         string     `json:"metric"`
	ClaimCount     int64      `json:"claimCount"`
	LastActivityAt *time.Time `json:"lastActivityAt,omitempty"`
}

// Leaderboard is a computed page of entries
type Leaderboard struct {
	PeriodKey  string    `json:"periodKey,omitempty"`
	Entries    []Entry   `json:"entries"`
	Limit      int       `json:"limit"`
	Offset     int       `json:"offset"`
	Stale      bool      `json:"stale"`
	ComputedAt time.Time `json:"computedAt"`
}

// Submission is a game score submitted by the game server
type Submission struct {
	Identity    string
	Score       int64
	SubmittedAt time.Time
}

// SubmissionResult reports where a submission landed
type SubmissionResult struct {
	Identity  string `json:"identity"`
	PeriodKey string `json:"periodKey"`
	Stored    bool   `json:"stored"`
}

// Projection ranks users by claimed value or by weekly game score
//
//go:generate mockgen -source=leaderboard.go -destination=../mocks/leaderboard.go -package=mocks -mock_names=Projection=MockProjection
type Projection interface {
	// GetLeaderboard returns a ranked page. On store failure it returns the last
	// successful page for the same query marked Stale.
	GetLeaderboard(ctx context.Context, q Query) (*Leaderboard, error)
	// SubmitScore stores the score for the current period if it beats the stored one
	SubmitScore(ctx context.Context, s Submission) (*SubmissionResult, error)
	// CurrentPeriodKey returns the key of the running week
	CurrentPeriodKey() string
}

type projection struct {
	store  store.LeaderboardStore
	clock  adapter.Clock
	loc    *time.Location
	config Config

	mu    sync.RWMutex
	cache map[Query]*Leaderboard
}

// NewProjection creates a new leaderboard projection
func NewProjection(st store.LeaderboardStore, clock adapter.Clock, cfg Config) (Projection, error) {
	loc, err := LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = domain.MAX_PAGE_LIMIT
	}
	if cfg.DefaultLimit <= 0 || cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = min(domain.DEFAULT_PAGE_LIMIT, cfg.MaxLimit)
	}

	return &projection{
		store:  st,
		clock:  clock,
		loc:    loc,
		config: cfg,
		cache:  make(map[Query]*Leaderboard),
	}, nil
}

func (p *projection) CurrentPeriodKey() string {
	return PeriodKey(p.clock.Now(), p.loc)
}

func (p *projection) GetLeaderboard(ctx context.Context, q Query) (*Leaderboard, error) {
	q, err := p.normalizeQuery(q)
	if err != nil {
		return nil, err
	}

	board := boardClaims
	if q.PeriodKey != "" {
		board = boardScores
	}

	var entries []Entry
	if q.PeriodKey == "" {
		entries, err = p.claimEntries(ctx, q)
	} else {
		entries, err = p.scoreEntries(ctx, q)
	}

	if err != nil {
		cached := p.cached(q)
		if cached == nil {
			metrics.LeaderboardRequestsTotal.WithLabelValues(board, "error").Inc()
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}

		logger.WarnCtx(ctx, "Serving stale leaderboard",
			zap.Error(err),
			zap.String("period_key", q.PeriodKey),
			zap.Time("computed_at", cached.ComputedAt))
		metrics.LeaderboardRequestsTotal.WithLabelValues(board, "stale").Inc()
		cached.Stale = true
		return cached, nil
	}

	result := &Leaderboard{
		PeriodKey:  q.PeriodKey,
		Entries:    entries,
		Limit:      q.Limit,
		Offset:     q.Offset,
		ComputedAt: p.clock.Now(),
	}
	p.remember(q, result)
	metrics.LeaderboardRequestsTotal.WithLabelValues(board, "fresh").Inc()

	return result, nil
}

func (p *projection) SubmitScore(ctx context.Context, s Submission) (*SubmissionResult, error) {
	identity, err := NormalizeIdentity(s.Identity)
	if err != nil {
		return nil, err
	}
	if s.Score < 0 {
		return nil, fmt.Errorf("%w: score must not be negative", ErrInvalidSubmission)
	}

	submittedAt := s.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = p.clock.Now()
	}
	periodKey := PeriodKey(submittedAt, p.loc)

	stored, err := p.store.UpsertScore(ctx, store.UpsertScoreInput{
		Identity:    identity,
		PeriodKey:   periodKey,
		Score:       s.Score,
		SubmittedAt: submittedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store score: %w", err)
	}

	result := "kept"
	if stored {
		result = "stored"
	}
	metrics.ScoreSubmissionsTotal.WithLabelValues(result).Inc()

	return &SubmissionResult{
		Identity:  identity,
		PeriodKey: periodKey,
		Stored:    stored,
	}, nil
}

func (p *projection) normalizeQuery(q Query) (Query, error) {
	if q.Limit <= 0 {
		q.Limit = p.config.DefaultLimit
	}
	if q.Limit > p.config.MaxLimit {
		q.Limit = p.config.MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.PeriodKey != "" {
		if err := ValidatePeriodKey(q.PeriodKey); err != nil {
			return q, err
		}
	}
	return q, nil
}

func (p *projection) claimEntries(ctx context.Context, q Query) ([]Entry, error) {
	users, err := p.store.GetClaimLeaderboard(ctx, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(users))
	for i, u := range users {
		entries = append(entries, Entry{
			Rank:           q.Offset + i + 1,
			Address:        u.Address,
			FarcasterID:    u.FarcasterID,
			Metric:         u.TotalClaimed,
			ClaimCount:     u.ClaimCount,
			LastActivityAt: u.LastClaimAt,
		})
	}

	return entries, nil
}

func (p *projection) scoreEntries(ctx context.Context, q Query) ([]Entry, error) {
	rows, err := p.store.GetScoreLeaderboard(ctx, q.PeriodKey, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for i, r := range rows {
		submittedAt := r.SubmittedAt
		entry := Entry{
			Rank:           q.Offset + i + 1,
			Address:        r.Identity,
			FarcasterID:    r.FarcasterID,
			Metric:         strconv.FormatInt(r.Score, 10),
			LastActivityAt: &submittedAt,
		}
		if r.ClaimCount != nil {
			entry.ClaimCount = *r.ClaimCount
		}
		if entry.FarcasterID == nil && strings.HasPrefix(r.Identity, "fid:") {
			if fid, err := strconv.ParseInt(strings.TrimPrefix(r.Identity, "fid:"), 10, 64); err == nil {
				entry.FarcasterID = &fid
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// cached returns a copy of the last good page for q, or nil
func (p *projection) cached(q Query) *Leaderboard {
	p.mu.RLock()
	defer p.mu.RUnlock()

	lb, ok := p.cache[q]
	if !ok {
		return nil
	}
	c := *lb
	c.Entries = append([]Entry(nil), lb.Entries...)
	return &c
}

func (p *projection) remember(q Query, lb *Leaderboard) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.cache[q]; !ok && len(p.cache) >= maxCachedQueries {
		return
	}
	c := *lb
	c.Entries = append([]Entry(nil), lb.Entries...)
	p.cache[q] = &c
}

// NormalizeIdentity accepts a hex address (lower-cased) or a "fid:<n>" Farcaster identity
func NormalizeIdentity(identity string) (string, error) {
	identity = strings.TrimSpace(identity)
	if common.IsHexAddress(identity) {
		return domain.NormalizeAddress(common.HexToAddress(identity).Hex()), nil
	}
	if fidPattern.MatchString(identity) {
		return identity, nil
	}
	return "", fmt.Errorf("%w: identity %q must be an address or fid:<n>", ErrInvalidSubmission, identity)
}
