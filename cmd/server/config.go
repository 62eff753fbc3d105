// Package main provides the AgentLens server CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/raja-kanniappa/agentlens/internal/service"
)

// Config represents the server configuration.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Service    ServiceConfig    `yaml:"service"`
	Simulation SimulationConfig `yaml:"simulation"`
	Dataset    DatasetConfig    `yaml:"dataset"`
	Verbose    bool             `yaml:"-"` // set via CLI flag
}

// APIConfig contains HTTP API settings.
type APIConfig struct {
	Address        string   `yaml:"address"`           // HTTP listen address (default: :8080)
	CORSOrigins    []string `yaml:"cors_origins"`      // Allowed browser origins
	RateLimitPerIP int      `yaml:"rate_limit_per_ip"` // Requests per minute per IP
}

// MetricsConfig contains the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"` // default: :9090
}

// ServiceConfig contains resilience-layer settings. Durations are
// Go duration strings ("250ms", "1m").
type ServiceConfig struct {
	LatencyMin string `yaml:"latency_min"`
	LatencyMax string `yaml:"latency_max"`
	RateLimit  int    `yaml:"rate_limit"`
	RateWindow string `yaml:"rate_window"`
}

// SimulationConfig contains error-injection settings. These reload live
// when the config file changes.
type SimulationConfig struct {
	Enabled bool    `yaml:"enabled"`
	Rate    float64 `yaml:"rate"`
}

// DatasetConfig controls mock data generation.
type DatasetConfig struct {
	Seed        int64 `yaml:"seed"`        // 0 picks a time-based seed
	Departments int   `yaml:"departments"` // default 8
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.API.Address == "" {
		c.API.Address = ":8080"
	}
	if c.API.RateLimitPerIP == 0 {
		c.API.RateLimitPerIP = 300
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = ":9090"
	}
	if c.Service.LatencyMin == "" {
		c.Service.LatencyMin = "50ms"
	}
	if c.Service.LatencyMax == "" {
		c.Service.LatencyMax = "250ms"
	}
	if c.Service.RateLimit == 0 {
		c.Service.RateLimit = 100
	}
	if c.Service.RateWindow == "" {
		c.Service.RateWindow = "1m"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	min, err := time.ParseDuration(c.Service.LatencyMin)
	if err != nil {
		return fmt.Errorf("service.latency_min: %w", err)
	}
	max, err := time.ParseDuration(c.Service.LatencyMax)
	if err != nil {
		return fmt.Errorf("service.latency_max: %w", err)
	}
	if min > max {
		return fmt.Errorf("service.latency_min %v exceeds latency_max %v", min, max)
	}
	if _, err := time.ParseDuration(c.Service.RateWindow); err != nil {
		return fmt.Errorf("service.rate_window: %w", err)
	}
	if c.Simulation.Rate < 0 || c.Simulation.Rate > 1 {
		return fmt.Errorf("simulation.rate must be within [0,1], got %v", c.Simulation.Rate)
	}
	if c.Dataset.Departments < 0 {
		return fmt.Errorf("dataset.departments must not be negative")
	}
	return nil
}

// ServiceConfig builds the resilience configuration. Validate must have
// passed first.
func (c *Config) serviceConfig() *service.Config {
	min, _ := time.ParseDuration(c.Service.LatencyMin)
	max, _ := time.ParseDuration(c.Service.LatencyMax)
	window, _ := time.ParseDuration(c.Service.RateWindow)

	return &service.Config{
		LatencyMin: min,
		LatencyMax: max,
		RateLimit:  c.Service.RateLimit,
		RateWindow: window,
	}
}
