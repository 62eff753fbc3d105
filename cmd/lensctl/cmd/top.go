package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/raja-kanniappa/agentlens/internal/models"
)

var topLimit int

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the agent leaderboard",
	Long: `Rank agents by weekly spend over a generated dataset.

Examples:
  # Top 10 agents
  lensctl top

  # Top 25 agents as JSON
  lensctl top --limit 25 -o json`,
	RunE: runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().IntVar(&topLimit, "limit", 10, "number of agents to show")
}

func runTop(cmd *cobra.Command, args []string) error {
	svc := newService()

	page, err := svc.GetAgentLeaderboard(context.Background(), models.TimeRange{}, topLimit, nil)
	if err != nil {
		return fmt.Errorf("leaderboard: %w", err)
	}

	if GetOutput() == "json" {
		data, err := json.MarshalIndent(page.Items, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tAGENT\tTYPE\tWEEKLY SPEND\tREQUESTS\tAVG COST")
	for _, a := range page.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t$%.2f\t%d\t$%.4f\n",
			a.PopularityRank, a.Name, a.Type, a.WeeklySpend, a.RequestCount, a.AverageCost)
	}
	return w.Flush()
}
