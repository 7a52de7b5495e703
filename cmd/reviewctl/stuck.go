package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bagdasarian/openreview-store/internal/domain"
	"github.com/bagdasarian/openreview-store/internal/repository/postgres"
	"github.com/bagdasarian/openreview-store/internal/service"
)

var olderThan time.Duration

var stuckCmd = &cobra.Command{
	Use:   "stuck",
	Short: "Lists reviews that stayed IN_PROGRESS for too long",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		reviewService := service.NewReviewService(
			postgres.NewReviewRepository(database),
			postgres.NewTransactor(database),
			cfg.Review.StuckAfter,
		)

		reviews, err := reviewService.Stuck(cmd.Context(), olderThan)
		if err != nil {
			return fmt.Errorf("failed to list stuck reviews: %w", err)
		}

		return printReviews(reviews)
	},
}

func printReviews(reviews []*domain.Review) error {
	if outputJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(reviews)
	}

	if len(reviews) == 0 {
		fmt.Println("no stuck reviews")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "REVIEW\tPULL REQUEST\tSTARTED\tRUNNING FOR")
	for _, review := range reviews {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			review.ID,
			review.PullRequestID,
			review.StartedAt.Format(time.RFC822),
			time.Since(review.StartedAt).Round(time.Second),
		)
	}
	return w.Flush()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	stuckCmd.Flags().DurationVar(&olderThan, "older-than", 0, "Age after which a running review counts as stuck (defaults to OPENREVIEW_REVIEW_STUCK_AFTER)")
	rootCmd.AddCommand(stuckCmd)
}
