package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/raja-kanniappa/agentlens/internal/client"
)

var (
	fetchBackendURL string
	fetchEnv        string
	fetchStart      string
	fetchEnd        string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch real usage records from the backend",
	Long: `Fetch usage records from the remote backend and summarize them as
per-agent spend snapshots.

The API key is read from the AGENTLENS_API_KEY environment variable.

Examples:
  # Production usage for one week
  lensctl fetch --backend https://usage.corp.example --env Production \
    --start 2026-08-01 --end 2026-08-07

  # Raw per-agent output as JSON
  lensctl fetch --backend https://usage.corp.example -o json`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchBackendURL, "backend", "", "backend base URL (required)")
	fetchCmd.Flags().StringVar(&fetchEnv, "env", "All", "environment (Production, UAT, Evals, All)")
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "start date (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "end date (YYYY-MM-DD)")
	fetchCmd.MarkFlagRequired("backend")
}

func runFetch(cmd *cobra.Command, args []string) error {
	c, err := client.NewClient(client.Config{
		BaseURL: fetchBackendURL,
		APIKey:  os.Getenv("AGENTLENS_API_KEY"),
	})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	q := client.UsageQuery{Environment: client.ParseEnvironment(fetchEnv)}
	if fetchStart != "" {
		if q.StartDate, err = time.Parse("2006-01-02", fetchStart); err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
	}
	if fetchEnd != "" {
		if q.EndDate, err = time.Parse("2006-01-02", fetchEnd); err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}
	}

	records, err := c.FetchAllUsage(context.Background(), q)
	if err != nil {
		return fmt.Errorf("fetch usage: %w", err)
	}

	agents := client.MapAgents(records)

	if GetOutput() == "json" {
		data, err := json.MarshalIndent(agents, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tAGENT\tTYPE\tSPEND\tREQUESTS")
	for _, a := range agents {
		fmt.Fprintf(w, "%d\t%s\t%s\t$%.2f\t%d\n",
			a.PopularityRank, a.Name, a.Type, a.WeeklySpend, a.RequestCount)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d records across %d agents\n", len(records), len(agents))
	return nil
}
