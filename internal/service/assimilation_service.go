// Package service is the facade layer handlers talk to, adapted from the
// teacher's internal/services/record_service.go idiom: a thin struct
// wrapping the domain packages (here recompute + scheduler) so handlers
// never import internal/recompute directly.
package service

import (
	"context"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/recompute"
	"github.com/aquarian247/AquaMind-sub005/internal/scheduler"
	"gorm.io/gorm"
)

// AssimilationService is the single entry point admin handlers and event
// handlers use to trigger C9/C10/C11 work.
type AssimilationService struct {
	DB         *gorm.DB
	Recomputer *recompute.Recomputer
	Triggers   *scheduler.Triggers
}

// NewAssimilationService wires a Recomputer and a Triggers instance bound to
// an already-started scheduler.Queue.
func NewAssimilationService(db *gorm.DB, recomputer *recompute.Recomputer, triggers *scheduler.Triggers) *AssimilationService {
	return &AssimilationService{DB: db, Recomputer: recomputer, Triggers: triggers}
}

// RecomputeWindow runs C9 synchronously for one assignment and returns its
// result rather than a task id.
func (s *AssimilationService) RecomputeWindow(ctx context.Context, assignmentID uint, start time.Time, end *time.Time) (recompute.Result, error) {
	return s.Recomputer.Recompute(ctx, assignmentID, start, end)
}

// RecomputeBatchSync runs C10 synchronously (POST /api/recompute/sync).
func (s *AssimilationService) RecomputeBatchSync(ctx context.Context, batchID uint, start time.Time, end *time.Time, assignmentIDs []uint) (recompute.BatchResult, error) {
	return s.Recomputer.RecomputeBatch(ctx, batchID, start, end, assignmentIDs)
}

// EnqueueAdminRecompute enqueues C9/C10 work through the scheduler and
// returns a task id immediately (admin HTTP path, spec.md §6).
func (s *AssimilationService) EnqueueAdminRecompute(batchID uint, start time.Time, end *time.Time, assignmentIDs []uint) string {
	return s.Triggers.AdminRecompute(batchID, start, end, assignmentIDs)
}

// FeedingEventCreated forwards to the feeding-event trigger (spec.md
// §4.11). Handlers call this after persisting the FeedingEvent row.
func (s *AssimilationService) FeedingEventCreated(assignmentID uint) (string, error) {
	return s.Triggers.FeedingEventCreated(assignmentID)
}

// GrowthSampleCreated forwards to the growth-sample trigger.
func (s *AssimilationService) GrowthSampleCreated(batchID uint, sampleDate time.Time) (string, error) {
	return s.Triggers.GrowthSampleCreated(batchID, sampleDate)
}
