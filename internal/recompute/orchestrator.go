package recompute

import (
	"context"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/dateutil"
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/aquarian247/AquaMind-sub005/internal/recompute/errs"
	"golang.org/x/sync/errgroup"
)

// AssignmentOutcome is one assignment's contribution to a batch recompute.
type AssignmentOutcome struct {
	AssignmentID uint
	Result       Result
	Err          string
}

// BatchResult aggregates C9 outcomes across a batch's selected assignments.
type BatchResult struct {
	RowsCreated  int
	RowsUpdated  int
	AnchorsFound int
	Assignments  []AssignmentOutcome
}

// RecomputeBatch implements C10: selects the assignments to recompute for a
// batch and fans out to C9 concurrently, aggregating counts and continuing
// on per-assignment errors, per spec.md §4.10.
func (r *Recomputer) RecomputeBatch(ctx context.Context, batchID uint, start time.Time, end *time.Time, assignmentIDs []uint) (BatchResult, error) {
	var batch models.Batch
	if err := r.DB.First(&batch, batchID).Error; err != nil {
		return BatchResult{}, &errs.ValidationError{Field: "batch_id", Message: "batch not found"}
	}

	assignments, err := r.selectAssignments(batch, start, end, assignmentIDs)
	if err != nil {
		return BatchResult{}, err
	}

	outcomes := make([]AssignmentOutcome, len(assignments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentAssignments)
	for i, a := range assignments {
		i, a := i, a
		g.Go(func() error {
			res, err := r.Recompute(gctx, a.ID, start, end)
			outcome := AssignmentOutcome{AssignmentID: a.ID, Result: res}
			if err != nil {
				outcome.Err = err.Error()
			}
			outcomes[i] = outcome
			return nil
		})
	}
	// errgroup.Go's error return is unused here: per-assignment errors are
	// recorded on the outcome, not propagated, so one bad assignment never
	// aborts the others (spec.md §4.10 "continue on per-assignment errors").
	_ = g.Wait()

	batchResult := BatchResult{Assignments: outcomes}
	for _, o := range outcomes {
		batchResult.RowsCreated += o.Result.RowsCreated
		batchResult.RowsUpdated += o.Result.RowsUpdated
		batchResult.AnchorsFound += o.Result.AnchorsFound
	}
	return batchResult, nil
}

// maxConcurrentAssignments bounds fan-out so one batch-wide recompute cannot
// exhaust the database connection pool.
const maxConcurrentAssignments = 8

// selectAssignments implements spec.md §4.10's selection rule: explicit ids
// intersected with the batch, or all assignments whose residency window
// overlaps [start, end ?? today].
func (r *Recomputer) selectAssignments(batch models.Batch, start time.Time, end *time.Time, assignmentIDs []uint) ([]models.BatchContainerAssignment, error) {
	if len(assignmentIDs) > 0 {
		var rows []models.BatchContainerAssignment
		if err := r.DB.Where("id IN ? AND batch_id = ?", assignmentIDs, batch.ID).Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	}

	endDate := dateutil.Normalize(time.Now())
	if end != nil {
		endDate = dateutil.Normalize(*end)
	}
	startDate := dateutil.Normalize(start)

	var all []models.BatchContainerAssignment
	if err := r.DB.Where("batch_id = ?", batch.ID).Find(&all).Error; err != nil {
		return nil, err
	}

	var selected []models.BatchContainerAssignment
	for _, a := range all {
		if a.Overlaps(startDate, endDate) {
			selected = append(selected, a)
		}
	}
	return selected, nil
}
