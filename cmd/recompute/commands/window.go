package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	windowAssignmentID uint
	windowStart        string
	windowEnd          string
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Recompute a single assignment over a date window (C9)",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse("2006-01-02", windowStart)
		if err != nil {
			return err
		}
		var end *time.Time
		if windowEnd != "" {
			e, err := time.Parse("2006-01-02", windowEnd)
			if err != nil {
				return err
			}
			end = &e
		}

		result, err := runner.Recompute(context.Background(), windowAssignmentID, start, end)
		if err != nil {
			return err
		}

		log.Info().
			Uint("assignment_id", windowAssignmentID).
			Int("rows_created", result.RowsCreated).
			Int("rows_updated", result.RowsUpdated).
			Int("anchors_found", result.AnchorsFound).
			Int("errors", len(result.Errors)).
			Msg("recompute window complete")
		for _, e := range result.Errors {
			log.Warn().Str("date", e.Date).Str("message", e.Message).Msg("day computation error")
		}
		return nil
	},
}

func init() {
	windowCmd.Flags().UintVar(&windowAssignmentID, "assignment-id", 0, "assignment id to recompute")
	windowCmd.Flags().StringVar(&windowStart, "start-date", "", "YYYY-MM-DD, required")
	windowCmd.Flags().StringVar(&windowEnd, "end-date", "", "YYYY-MM-DD, defaults to today")
	_ = windowCmd.MarkFlagRequired("assignment-id")
	_ = windowCmd.MarkFlagRequired("start-date")
}
