package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/metrics"
)

// slidingWindow is a process-wide sliding-window request counter. It
// self-prunes entries older than the window on each check; there is no
// background teardown to manage.
type slidingWindow struct {
	mu         sync.Mutex
	limit      int
	window     time.Duration
	timestamps []time.Time
}

func newSlidingWindow(limit int, window time.Duration) *slidingWindow {
	return &slidingWindow{
		limit:      limit,
		window:     window,
		timestamps: make([]time.Time, 0, limit),
	}
}

// Allow records the request if it fits in the window.
func (w *slidingWindow) Allow(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := now.Add(-w.window)
	valid := w.timestamps[:0]
	for _, t := range w.timestamps {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	w.timestamps = valid

	if len(w.timestamps) >= w.limit {
		return false
	}
	w.timestamps = append(w.timestamps, now)
	return true
}

// simulation holds the error-injection toggle. Rate is clamped to [0,1].
type simulation struct {
	mu      sync.RWMutex
	enabled bool
	rate    float64
}

// SetErrorSimulation enables or disables failure injection. The rate is
// the probability that any given call fails, clamped to [0,1].
func (s *Service) SetErrorSimulation(enabled bool, rate float64) {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}

	s.sim.mu.Lock()
	defer s.sim.mu.Unlock()
	s.sim.enabled = enabled
	s.sim.rate = rate
}

// ErrorSimulation reports the current injection settings.
func (s *Service) ErrorSimulation() (enabled bool, rate float64) {
	s.sim.mu.RLock()
	defer s.sim.mu.RUnlock()
	return s.sim.enabled, s.sim.rate
}

// lockedRand guards a rand.Rand for use from concurrent requests.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedRand(src rand.Source) *lockedRand {
	return &lockedRand{rng: rand.New(src)}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func (l *lockedRand) Int63n(n int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Int63n(n)
}

// guard fronts every public operation: simulated latency first, then the
// rate-limit window, then optional failure injection. An in-flight call
// always resolves or rejects; there is no cancellation beyond the
// caller's own context during the latency wait.
func (s *Service) guard(ctx context.Context) error {
	if err := s.simulateLatency(ctx); err != nil {
		return err
	}

	if !s.limiter.Allow(time.Now()) {
		metrics.QueryRateLimited.Inc()
		return ErrRateLimited
	}

	enabled, rate := s.ErrorSimulation()
	if enabled && rate > 0 && s.rng.Float64() < rate {
		err := drawSimulatedError(s.rng.Float64())
		metrics.QueryFailuresInjected.Inc()
		return err
	}

	return nil
}

func (s *Service) simulateLatency(ctx context.Context) error {
	if s.cfg.LatencyMax <= 0 {
		return nil
	}

	delay := s.cfg.LatencyMin
	if span := s.cfg.LatencyMax - s.cfg.LatencyMin; span > 0 {
		delay += time.Duration(s.rng.Int63n(int64(span)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
