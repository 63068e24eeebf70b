package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/claim-ledger/internal/adapter"
	"github.com/feral-file/claim-ledger/internal/logger"
	"github.com/feral-file/claim-ledger/internal/metrics"
)

const (
	DEFAULT_KEY_PREFIX            = "claim-ledger:ratelimit:"
	DEFAULT_HEALTH_CHECK_INTERVAL = 10 * time.Second
	DEFAULT_MAX_LOCAL_KEYS        = 10000
)

var (
	// ErrUnavailable is returned when Redis is down and local fallback is disabled
	ErrUnavailable = errors.New("rate limiter unavailable")
	// ErrClosed is returned after Close
	ErrClosed = errors.New("rate limiter is closed")
)

// Config holds the rate limiter configuration
type Config struct {
	// RequestsPerSecond is the sustained rate allowed per key
	RequestsPerSecond int
	// Burst is the number of requests a key may make at once; defaults to RequestsPerSecond
	Burst     int
	KeyPrefix string

	// EnableLocalFallback serves decisions from in-process limiters while Redis is unreachable
	EnableLocalFallback bool
	// LocalFallbackMultiplier scales the local rate, since each replica limits on its own
	LocalFallbackMultiplier float64
	HealthCheckInterval     time.Duration
	// MaxLocalKeys bounds the local limiter map; it is reset when full
	MaxLocalKeys int
}

// Decision is the outcome of one rate limit check
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter checks per-key request rates
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockLimiter
type Limiter interface {
	// Allow takes one request for key and reports whether it may proceed
	Allow(ctx context.Context, key string) (Decision, error)

	// Close stops the health monitor and closes the Redis connection
	Close() error
}

type limiter struct {
	config         Config
	limit          redis_rate.Limit
	redis          adapter.RedisClient
	distributed    adapter.RedisRateLimiter
	clock          adapter.Clock
	redisAvailable atomic.Bool
	closed         atomic.Bool
	closeOnce      sync.Once
	done           chan struct{}

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

// NewLimiter creates a Redis-backed limiter with an optional in-process fallback
func NewLimiter(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx).Err(); err != nil {
		redisAvailable = false
		if !cfg.EnableLocalFallback {
			return nil, fmt.Errorf("redis unavailable and fallback disabled: %w", err)
		}
		logger.Warn("Redis unavailable, will use local rate limit", zap.Error(err))
	}

	l := &limiter{
		config: cfg,
		limit: redis_rate.Limit{
			Rate:   cfg.RequestsPerSecond,
			Burst:  cfg.Burst,
			Period: time.Second,
		},
		redis:       rc,
		distributed: rc.NewRateLimiter(),
		clock:       clock,
		done:        make(chan struct{}),
		local:       make(map[string]*rate.Limiter),
	}
	l.redisAvailable.Store(redisAvailable)

	go l.monitorRedisHealth()

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("redis_available", redisAvailable),
		zap.Bool("local_fallback", cfg.EnableLocalFallback),
	)

	return l, nil
}

// Allow checks the distributed limit first and falls back to the local limit while Redis is down
func (l *limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.closed.Load() {
		return Decision{}, ErrClosed
	}

	if l.redisAvailable.Load() {
		res, err := l.distributed.Allow(ctx, l.config.KeyPrefix+key, l.limit)
		if err == nil {
			decision := Decision{
				Allowed:    res.Allowed > 0,
				Remaining:  res.Remaining,
				RetryAfter: res.RetryAfter,
			}
			metrics.RateLimitDecisionsTotal.WithLabelValues("redis", result(decision)).Inc()
			return decision, nil
		}

		if ctx.Err() != nil {
			return Decision{}, ctx.Err()
		}

		// Redis error - mark as unavailable until the health monitor sees it again
		l.redisAvailable.Store(false)
		metrics.RateLimitDecisionsTotal.WithLabelValues("redis", "error").Inc()

		if !l.config.EnableLocalFallback {
			return Decision{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}

		logger.WarnCtx(ctx, "Redis rate limiter error, falling back to local", zap.Error(err))
	}

	if !l.config.EnableLocalFallback {
		return Decision{}, ErrUnavailable
	}

	decision := l.allowLocal(key)
	metrics.RateLimitDecisionsTotal.WithLabelValues("local", result(decision)).Inc()
	return decision, nil
}

func (l *limiter) allowLocal(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.local[key]
	if !ok {
		if len(l.local) >= l.config.MaxLocalKeys {
			clear(l.local)
		}
		localRate := max(float64(l.config.RequestsPerSecond)*l.config.LocalFallbackMultiplier, 1.0)
		lim = rate.NewLimiter(rate.Limit(localRate), l.config.Burst)
		l.local[key] = lim
	}

	now := l.clock.Now()
	reservation := lim.ReserveN(now, 1)
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return Decision{Allowed: false, RetryAfter: delay}
	}

	return Decision{Allowed: true, Remaining: int(lim.TokensAt(now))}
}

// monitorRedisHealth periodically pings Redis and restores the distributed path when it answers
func (l *limiter) monitorRedisHealth() {
	for {
		select {
		case <-l.done:
			return
		case <-l.clock.After(l.config.HealthCheckInterval):
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx).Err()
		cancel()

		wasAvailable := l.redisAvailable.Swap(err == nil)
		if !wasAvailable && err == nil {
			logger.Info("Redis connection restored")
		}
	}
}

// Close stops the health monitor and closes the Redis connection
func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)

		if closeErr := l.redis.Close(); closeErr != nil {
			logger.Warn("Error closing Redis connection", zap.Error(closeErr))
			err = closeErr
		}
	})
	return err
}

func result(d Decision) string {
	if d.Allowed {
		return "allowed"
	}
	return "limited"
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *Config) error {
	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}

	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}

	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DEFAULT_KEY_PREFIX
	}

	if cfg.LocalFallbackMultiplier <= 0 {
		cfg.LocalFallbackMultiplier = 1.0
	}

	if cfg.HealthCheckInterval <= 0 {
		cfg.HealthCheckInterval = DEFAULT_HEALTH_CHECK_INTERVAL
	}

	if cfg.MaxLocalKeys <= 0 {
		cfg.MaxLocalKeys = DEFAULT_MAX_LOCAL_KEYS
	}

	return nil
}
