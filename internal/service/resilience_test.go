package service

import (
	"context"
	"testing"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/generator"
	"github.com/raja-kanniappa/agentlens/internal/models"
	"github.com/raja-kanniappa/agentlens/internal/store"
)

func TestSlidingWindowAllow(t *testing.T) {
	w := newSlidingWindow(3, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		if !w.Allow(now) {
			t.Fatalf("request %d rejected under the limit", i)
		}
	}
	if w.Allow(now) {
		t.Error("request over the limit allowed")
	}

	// Entries age out of the window.
	if !w.Allow(now.Add(2 * time.Minute)) {
		t.Error("request rejected after the window elapsed")
	}
}

func TestRateLimitReturnsTypedError(t *testing.T) {
	st := store.NewWithSeed(42, generator.Options{DepartmentCount: 2, Now: testNow})
	svc := New(st, &Config{RateLimit: 2, RateWindow: time.Minute})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := svc.GetDepartmentSummary(ctx, models.TimeRange{}); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}

	_, err := svc.GetDepartmentSummary(ctx, models.TimeRange{})
	serr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if serr.Code != CodeRateLimited || serr.Status != 429 {
		t.Errorf("got %s/%d, want RATE_LIMITED/429", serr.Code, serr.Status)
	}
}

func TestErrorSimulationFullRate(t *testing.T) {
	svc := newTestService(t)
	svc.SetErrorSimulation(true, 1.0)

	for i := 0; i < 10; i++ {
		_, err := svc.GetDepartmentSummary(context.Background(), models.TimeRange{})
		serr, ok := err.(*Error)
		if !ok {
			t.Fatalf("call %d: error type = %T, want *Error", i, err)
		}
		if serr.Status < 400 {
			t.Errorf("call %d: status = %d, want an error status", i, serr.Status)
		}
	}
}

func TestErrorSimulationDisabled(t *testing.T) {
	svc := newTestService(t)
	svc.SetErrorSimulation(true, 1.0)
	svc.SetErrorSimulation(false, 1.0)

	for i := 0; i < 10; i++ {
		if _, err := svc.GetDepartmentSummary(context.Background(), models.TimeRange{}); err != nil {
			t.Fatalf("call %d failed with simulation off: %v", i, err)
		}
	}
}

func TestSetErrorSimulationClampsRate(t *testing.T) {
	svc := newTestService(t)

	svc.SetErrorSimulation(true, 5.0)
	if _, rate := svc.ErrorSimulation(); rate != 1.0 {
		t.Errorf("rate = %v, want clamped to 1.0", rate)
	}
	svc.SetErrorSimulation(true, -3.0)
	if _, rate := svc.ErrorSimulation(); rate != 0 {
		t.Errorf("rate = %v, want clamped to 0", rate)
	}
}

func TestDrawSimulatedErrorDistribution(t *testing.T) {
	tests := []struct {
		r    float64
		want int
	}{
		{0.0, 400},
		{0.19, 400},
		{0.25, 401},
		{0.35, 403},
		{0.5, 404},
		{0.65, 429},
		{0.99, 500},
	}

	for _, tt := range tests {
		if got := drawSimulatedError(tt.r); got.Status != tt.want {
			t.Errorf("drawSimulatedError(%v) = %d, want %d", tt.r, got.Status, tt.want)
		}
	}
}

func TestSimulatedLatencyRespectsContext(t *testing.T) {
	st := store.NewWithSeed(42, generator.Options{DepartmentCount: 2, Now: testNow})
	svc := New(st, &Config{LatencyMin: time.Second, LatencyMax: 2 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.GetDepartmentSummary(ctx, models.TimeRange{})
	if err != context.DeadlineExceeded {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
}
