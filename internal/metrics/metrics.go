package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "claim_ledger"

var (
	// EventsProcessedTotal counts bridge messages by terminal outcome
	// (applied/duplicate/ignored/malformed/quarantined/retry)
	EventsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "bridge",
		Name:      "events_processed_total",
		Help:      "Ledger events processed by outcome",
	}, []string{"event", "outcome"})

	// EventProcessingSeconds tracks how long a single event takes to apply
	EventProcessingSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "bridge",
		Name:      "event_processing_seconds",
		Help:      "Time spent normalizing and applying one event",
		Buckets:   prometheus.DefBuckets,
	}, []string{"event"})

	// EventsPublishedTotal counts events published by the emitter
	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "emitter",
		Name:      "events_published_total",
		Help:      "Chain events published to JetStream",
	}, []string{"chain", "event", "status"})

	// CurrentBlockNumber is the last block the emitter saw
	CurrentBlockNumber = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "emitter",
		Name:      "current_block_number",
		Help:      "Current processed block number",
	}, []string{"chain"})

	// ReorgLogsSkippedTotal counts removed logs dropped by the emitter
	ReorgLogsSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "emitter",
		Name:      "reorg_logs_skipped_total",
		Help:      "Logs retracted by a chain reorganization and skipped",
	}, []string{"chain"})

	// LeaderboardRequestsTotal counts projection reads by board and result (fresh/stale/error)
	LeaderboardRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "leaderboard",
		Name:      "requests_total",
		Help:      "Leaderboard projection reads by result",
	}, []string{"board", "result"})

	// ScoreSubmissionsTotal counts score submissions by whether they were stored
	ScoreSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "leaderboard",
		Name:      "score_submissions_total",
		Help:      "Score submissions by result (stored/kept)",
	}, []string{"result"})

	// HTTPRequestDuration records API latency by method, route and status
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// RateLimitDecisionsTotal counts API rate limit checks by backend (redis/local) and result (allowed/limited/error)
	RateLimitDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "rate_limit_decisions_total",
		Help:      "API rate limit decisions by backend and result",
	}, []string{"backend", "result"})
)
