package scheduler

import (
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/dateutil"
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"gorm.io/gorm"
)

// Triggers wires the three event-in contracts of spec.md §4.11 to Queue
// jobs. It holds the DB handle only for the growth-sample trigger's
// last_weighing_date update; actual recomputation always goes through the
// Queue so the caller (an event handler) never blocks on it.
type Triggers struct {
	DB         *gorm.DB
	Queue      *Queue
	WindowDays int
}

// NewTriggers constructs Triggers with the default 30-day auto-recompute
// window.
func NewTriggers(db *gorm.DB, queue *Queue, windowDays int) *Triggers {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &Triggers{DB: db, Queue: queue, WindowDays: windowDays}
}

// FeedingEventCreated enqueues a recompute for the assignment's batch over
// the last WindowDays days ending today. Safe to fire repeatedly: recompute
// is idempotent (spec.md §4.9).
func (t *Triggers) FeedingEventCreated(assignmentID uint) (string, error) {
	var assignment models.BatchContainerAssignment
	if err := t.DB.First(&assignment, assignmentID).Error; err != nil {
		return "", err
	}
	if !assignment.IsActive(time.Now()) {
		return "", nil
	}
	return t.enqueueWindow(assignment.BatchID, KindFeedingEvent), nil
}

// GrowthSampleCreated updates last_weighing_date on all currently-active
// assignments of the sample's batch, then enqueues the same rolling-window
// recompute. The anchor detector re-reads samples directly from storage, so
// no in-memory cache invalidation is required beyond the enqueue (spec.md
// §4.11).
func (t *Triggers) GrowthSampleCreated(batchID uint, sampleDate time.Time) (string, error) {
	var active []models.BatchContainerAssignment
	if err := t.DB.Where("batch_id = ? AND (departure_date IS NULL OR departure_date > ?)", batchID, time.Now()).
		Find(&active).Error; err != nil {
		return "", err
	}
	for _, a := range active {
		if err := t.DB.Model(&models.BatchContainerAssignment{}).
			Where("id = ?", a.ID).
			Update("last_weighing_date", dateutil.Normalize(sampleDate)).Error; err != nil {
			return "", err
		}
	}
	return t.enqueueWindow(batchID, KindGrowthSample), nil
}

// AdminRecompute enqueues an explicit-window recompute, optionally filtered
// to specific assignments, and returns its task id immediately (spec.md
// §4.11, §6 "returns immediately with task identifiers").
func (t *Triggers) AdminRecompute(batchID uint, start time.Time, end *time.Time, assignmentIDs []uint) string {
	return t.Queue.Enqueue(Job{
		BatchID:       batchID,
		AssignmentIDs: assignmentIDs,
		Start:         start,
		End:           end,
		Kind:          KindAdminRecompute,
	})
}

func (t *Triggers) enqueueWindow(batchID uint, kind string) string {
	end := dateutil.Normalize(time.Now())
	start := dateutil.AddDays(end, -t.WindowDays)
	return t.Queue.Enqueue(Job{
		BatchID: batchID,
		Start:   start,
		End:     &end,
		Kind:    kind,
	})
}
