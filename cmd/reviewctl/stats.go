package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bagdasarian/openreview-store/internal/repository/postgres"
	"github.com/bagdasarian/openreview-store/internal/service"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints review counts per status, average duration and the most common finding types",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		statsService := service.NewStatsService(
			postgres.NewReviewRepository(database),
			postgres.NewFindingRepository(database),
		)

		stats, err := statsService.Summary(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to collect stats: %w", err)
		}

		if outputJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(stats)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "STATUS\tREVIEWS")
		for _, row := range stats.ReviewsByStatus {
			fmt.Fprintf(w, "%s\t%d\n", row.Status, row.Count)
		}
		fmt.Fprintln(w)

		if stats.AverageDurationMs != nil {
			fmt.Fprintf(w, "AVERAGE DURATION\t%.0f ms\n\n", *stats.AverageDurationMs)
		} else {
			fmt.Fprintln(w, "AVERAGE DURATION\tn/a")
			fmt.Fprintln(w)
		}

		fmt.Fprintln(w, "FINDING TYPE\tCOUNT")
		for _, row := range stats.MostCommonFindingTypes {
			fmt.Fprintf(w, "%s\t%d\n", row.Type, row.Count)
		}
		return w.Flush()
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(statsCmd)
}
