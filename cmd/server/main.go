package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/raja-kanniappa/agentlens/internal/api"
	"github.com/raja-kanniappa/agentlens/internal/generator"
	"github.com/raja-kanniappa/agentlens/internal/metrics"
	"github.com/raja-kanniappa/agentlens/internal/service"
	"github.com/raja-kanniappa/agentlens/internal/store"
	"github.com/raja-kanniappa/agentlens/pkg/config"
)

var (
	configFile string
	httpAddr   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "agentlens-server",
	Short: "AgentLens Server - AI usage and spend analytics API",
	Long: `AgentLens Server synthesizes a consistent AI-usage dataset and serves
the dashboard's aggregation, trend, and export queries over HTTP.`,
	RunE: runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agentlens-server %s\n", config.Version)
		fmt.Printf("  commit: %s\n", config.Commit)
		fmt.Printf("  built:  %s\n", config.BuildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().StringVarP(&httpAddr, "address", "a", "", "HTTP listen address")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	var cfg *Config

	// Load configuration from file if provided
	if configFile != "" {
		var err error
		cfg, err = LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = DefaultConfig()
	}

	// Override with CLI flags
	if httpAddr != "" {
		cfg.API.Address = httpAddr
	}
	cfg.Verbose = verbose

	// Seed the generator; 0 means a fresh dataset per start
	seed := cfg.Dataset.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	st := store.NewWithSeed(seed, generator.Options{
		DepartmentCount: cfg.Dataset.Departments,
	})
	counts := st.DataSummary()
	log.Printf("dataset generated: %d departments, %d users, %d agents, %d sessions",
		counts.Departments, counts.Users, counts.Agents, counts.Sessions)

	svc := service.New(st, cfg.serviceConfig())
	svc.SetErrorSimulation(cfg.Simulation.Enabled, cfg.Simulation.Rate)

	apiServer, err := api.New(&api.Config{
		Address:        cfg.API.Address,
		CORSOrigins:    cfg.API.CORSOrigins,
		RateLimitPerIP: cfg.API.RateLimitPerIP,
		Verbose:        cfg.Verbose,
	}, svc)
	if err != nil {
		return fmt.Errorf("create API server: %w", err)
	}

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("received signal %v, shutting down...", sig)
		cancel()
	}()

	// Live-reload simulation settings when the config file changes
	if configFile != "" {
		if err := watchSimulationConfig(ctx, configFile, svc); err != nil {
			log.Printf("config watch disabled: %v", err)
		}
	}

	log.Printf("starting agentlens-server %s", config.Version)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apiServer.Run(gctx)
	})
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics.Address)
		g.Go(func() error {
			return metricsServer.Start()
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsServer.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	log.Printf("server stopped")
	return nil
}
