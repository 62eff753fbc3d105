package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}
	if cfg.API.Address != ":8080" {
		t.Errorf("api address = %s, want :8080", cfg.API.Address)
	}
}

func TestConfigValidate_RejectsBadDurations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Service.LatencyMin = "not-a-duration"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for invalid service.latency_min")
	}
}

func TestConfigValidate_RejectsInvertedLatencyBand(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Service.LatencyMin = "500ms"
	cfg.Service.LatencyMax = "100ms"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error when latency_min exceeds latency_max")
	}
}

func TestConfigValidate_RejectsOutOfRangeSimulationRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Simulation.Rate = 1.5

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for simulation.rate above 1")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `api:
  address: ":9000"
service:
  latency_min: "10ms"
  latency_max: "20ms"
  rate_limit: 50
simulation:
  enabled: true
  rate: 0.25
dataset:
  seed: 42
  departments: 6
`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.API.Address != ":9000" {
		t.Errorf("api address = %s, want :9000", cfg.API.Address)
	}
	if cfg.Service.RateLimit != 50 {
		t.Errorf("rate limit = %d, want 50", cfg.Service.RateLimit)
	}
	if !cfg.Simulation.Enabled || cfg.Simulation.Rate != 0.25 {
		t.Errorf("simulation = %+v", cfg.Simulation)
	}
	if cfg.Dataset.Seed != 42 || cfg.Dataset.Departments != 6 {
		t.Errorf("dataset = %+v", cfg.Dataset)
	}

	svcCfg := cfg.serviceConfig()
	if svcCfg.LatencyMin != 10*time.Millisecond || svcCfg.LatencyMax != 20*time.Millisecond {
		t.Errorf("latency band = %v-%v", svcCfg.LatencyMin, svcCfg.LatencyMax)
	}
	// Defaults fill unset fields
	if cfg.Metrics.Address != ":9090" {
		t.Errorf("metrics address = %s, want :9090", cfg.Metrics.Address)
	}
}
