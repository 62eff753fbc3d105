// Package service is the aggregation and query layer over a dataset
// store: entity queries, time-series trends, multi-dimensional filtering,
// pagination, export serialization, and a synthetic resilience layer for
// exercising retry paths.
package service

import (
	"math/rand"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/metrics"
	"github.com/raja-kanniappa/agentlens/internal/store"
)

// Config tunes the resilience layer. The zero value disables simulated
// latency, which is what tests want; NewConfig applies production-like
// defaults for the server path.
type Config struct {
	// LatencyMin/LatencyMax bound the simulated per-request delay.
	// Both zero disables the delay entirely.
	LatencyMin time.Duration
	LatencyMax time.Duration

	// RateLimit caps requests inside RateWindow (default 100 per 60s).
	RateLimit  int
	RateWindow time.Duration
}

// NewConfig returns the default resilience configuration: 50-250ms
// simulated latency and a 100-request/60s sliding window.
func NewConfig() *Config {
	return &Config{
		LatencyMin: 50 * time.Millisecond,
		LatencyMax: 250 * time.Millisecond,
		RateLimit:  100,
		RateWindow: time.Minute,
	}
}

func (c *Config) setDefaults() {
	if c.RateLimit <= 0 {
		c.RateLimit = 100
	}
	if c.RateWindow <= 0 {
		c.RateWindow = time.Minute
	}
}

// Service answers dashboard queries over an injected store.
type Service struct {
	store *store.Store
	cfg   Config

	limiter *slidingWindow
	sim     *simulation
	rng     *lockedRand
}

// New creates a service over the given store. A nil cfg uses the zero
// Config (no simulated latency).
func New(st *store.Store, cfg *Config) *Service {
	if cfg == nil {
		cfg = &Config{}
	}
	c := *cfg
	c.setDefaults()

	return &Service{
		store:   st,
		cfg:     c,
		limiter: newSlidingWindow(c.RateLimit, c.RateWindow),
		sim:     &simulation{},
		rng:     newLockedRand(rand.NewSource(time.Now().UnixNano())),
	}
}

// Store exposes the underlying store for administrative operations
// (dataset regeneration).
func (s *Service) Store() *store.Store {
	return s.store
}

// observe counts one query and returns a done func that records its
// duration. Callers defer the result at operation entry.
func (s *Service) observe(op string) func() {
	metrics.QueriesTotal.WithLabelValues(op).Inc()
	start := time.Now()
	return func() {
		metrics.QueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
