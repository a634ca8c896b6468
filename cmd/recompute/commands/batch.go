package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	batchID            uint
	batchStart         string
	batchEnd           string
	batchAssignmentIDs []uint
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Recompute all (or selected) assignments of a batch over a window (C10)",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse("2006-01-02", batchStart)
		if err != nil {
			return err
		}
		var end *time.Time
		if batchEnd != "" {
			e, err := time.Parse("2006-01-02", batchEnd)
			if err != nil {
				return err
			}
			end = &e
		}

		result, err := runner.RecomputeBatch(context.Background(), batchID, start, end, batchAssignmentIDs)
		if err != nil {
			return err
		}

		log.Info().
			Uint("batch_id", batchID).
			Int("rows_created", result.RowsCreated).
			Int("rows_updated", result.RowsUpdated).
			Int("assignments", len(result.Assignments)).
			Msg("batch recompute complete")
		for _, a := range result.Assignments {
			if a.Err != "" {
				log.Warn().Uint("assignment_id", a.AssignmentID).Str("error", a.Err).Msg("assignment recompute failed")
			}
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().UintVar(&batchID, "batch-id", 0, "batch id to recompute")
	batchCmd.Flags().StringVar(&batchStart, "start-date", "", "YYYY-MM-DD, required")
	batchCmd.Flags().StringVar(&batchEnd, "end-date", "", "YYYY-MM-DD, defaults to today")
	batchCmd.Flags().UintSliceVar(&batchAssignmentIDs, "assignment-ids", nil, "optional: restrict to these assignment ids")
	_ = batchCmd.MarkFlagRequired("batch-id")
	_ = batchCmd.MarkFlagRequired("start-date")
}
