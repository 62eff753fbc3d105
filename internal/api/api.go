// Package api provides the HTTP REST API server for the dashboard.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/raja-kanniappa/agentlens/internal/service"
)

// Config contains HTTP API server configuration.
type Config struct {
	Address        string
	CORSOrigins    []string // Allowed browser origins; empty allows any
	RateLimitPerIP int      // Requests per minute per client IP
	Verbose        bool
}

// SetDefaults applies default values for missing configuration.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.RateLimitPerIP == 0 {
		c.RateLimitPerIP = 300
	}
}

// Server is the HTTP API server.
type Server struct {
	config  *Config
	service *service.Service
	server  *http.Server
}

// New creates a new API server over the query service.
func New(cfg *Config, svc *service.Service) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if svc == nil {
		return nil, fmt.Errorf("service is required")
	}

	cfg.SetDefaults()

	s := &Server{
		config:  cfg,
		service: svc,
	}

	router := s.setupRouter()

	s.server = &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Run starts the HTTP server and blocks until context is canceled.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		log.Printf("HTTP API listening on %s", s.config.Address)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutting down HTTP API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.config.Address
}
