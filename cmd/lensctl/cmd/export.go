package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/raja-kanniappa/agentlens/internal/generator"
	"github.com/raja-kanniappa/agentlens/internal/models"
	"github.com/raja-kanniappa/agentlens/internal/service"
	"github.com/raja-kanniappa/agentlens/internal/store"
)

var (
	exportFormat      string
	exportOut         string
	exportDepartments []string
	exportUsers       []string
	exportAgents      []string
	exportDetails     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run the export pipeline to a file or stdout",
	Long: `Generate a dataset and run the export pipeline over it.

Without entity filters the export is a single summary record; with
--department/--user/--agent filters it emits one record per matching
entity, plus per-session records when --details is set.

Examples:
  # Summary export as CSV to stdout
  lensctl export

  # Per-entity export with session details
  lensctl export --department dept-01 --details --format json --out report.json`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format (csv, json)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
	exportCmd.Flags().StringSliceVar(&exportDepartments, "department", nil, "filter by department id")
	exportCmd.Flags().StringSliceVar(&exportUsers, "user", nil, "filter by user id")
	exportCmd.Flags().StringSliceVar(&exportAgents, "agent", nil, "filter by agent id or name")
	exportCmd.Flags().BoolVar(&exportDetails, "details", false, "include per-session records")
}

func runExport(cmd *cobra.Command, args []string) error {
	svc := newService()

	filters := models.FilterState{
		Departments: exportDepartments,
		Users:       exportUsers,
		Agents:      exportAgents,
	}

	result, err := svc.Export(context.Background(), filters, service.ExportOptions{
		Format:         service.ParseExportFormat(exportFormat),
		IncludeDetails: exportDetails,
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if exportOut == "" {
		_, err = os.Stdout.Write(result.Data)
		return err
	}

	if err := os.WriteFile(exportOut, result.Data, 0644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "%d records written to %s\n", result.RecordCount, exportOut)
	}
	return nil
}

// newService builds a latency-free query service over a fresh dataset,
// honoring the global --seed and --departments flags.
func newService() *service.Service {
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	st := store.NewWithSeed(s, generator.Options{DepartmentCount: depts})
	return service.New(st, &service.Config{RateLimit: 1 << 20})
}
