// Package scheduler implements C11: a worker pool of recompute jobs with
// per-key locking (see lockKey), so that jobs sharing a lock key run one
// after another rather than concurrently (spec.md §5 "Shared-resource
// policy"). Jobs are not deduplicated: every enqueued job runs, including
// repeats of a job already queued or in flight. The pool/worker idiom follows
// bbak-mcs-mcp's errgroup-based fan-out; task identifiers are generated the
// way the teacher generates record ids (google/uuid), per
// backend/internal/models/record.go's BeforeCreate hook.
package scheduler

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/recompute"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Job is one enqueued unit of work: a batch recompute over a window,
// optionally restricted to a set of assignments.
type Job struct {
	ID            string
	BatchID       uint
	AssignmentIDs []uint
	Start         time.Time
	End           *time.Time
	Kind          string
}

// Kinds of triggers, per spec.md §4.11.
const (
	KindFeedingEvent  = "feeding_event_created"
	KindGrowthSample  = "growth_sample_created"
	KindAdminRecompute = "admin_recompute"
)

// Queue runs a fixed pool of workers draining a buffered job channel.
// Before running, a worker blocks on the mutex of the job's lock key, so a
// job whose key is already held waits for the holder to finish; it is not
// coalesced or skipped.
type Queue struct {
	recomputer *recompute.Recomputer
	workers    int
	jobs       chan Job
	logger     zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex // lock key -> per-key mutex

	wg sync.WaitGroup
}

// NewQueue constructs a Queue bound to a Recomputer, with `workers`
// goroutines draining the job channel.
func NewQueue(recomputer *recompute.Recomputer, workers int) *Queue {
	if workers <= 0 {
		workers = 1
	}
	return &Queue{
		recomputer: recomputer,
		workers:    workers,
		jobs:       make(chan Job, 256),
		logger:     log.Logger,
		locks:      make(map[string]*sync.Mutex),
	}
}

// Start spawns the worker pool; it returns immediately. Call Stop (or
// cancel ctx) to drain and shut down.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, i)
	}
}

// Stop closes the job channel and waits for in-flight jobs to drain.
func (q *Queue) Stop() {
	close(q.jobs)
	q.wg.Wait()
}

// Enqueue submits a job and returns its generated task id immediately
// (spec.md §6 "Returns a 202-style response with a list of enqueued task
// ids"). Enqueue never blocks past the channel buffer.
func (q *Queue) Enqueue(j Job) string {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	q.jobs <- j
	return j.ID
}

func (q *Queue) worker(ctx context.Context, id int) {
	defer q.wg.Done()
	for job := range q.jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		q.run(ctx, job, id)
	}
}

func (q *Queue) run(ctx context.Context, job Job, workerID int) {
	key := lockKey(job)
	lock := q.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	result, err := q.recomputer.RecomputeBatch(ctx, job.BatchID, job.Start, job.End, job.AssignmentIDs)
	logEvt := q.logger.Info()
	if err != nil {
		logEvt = q.logger.Error().Err(err)
	}
	logEvt.
		Str("task_id", job.ID).
		Str("kind", job.Kind).
		Uint("batch_id", job.BatchID).
		Int("worker", workerID).
		Int("rows_created", result.RowsCreated).
		Int("rows_updated", result.RowsUpdated).
		Msg("recompute job finished")
}

// lockKey derives the serialization key for a job: one key per explicit
// assignment (so jobs on different assignments of the same batch run
// concurrently), or one key for the whole batch when the job targets "all
// overlapping assignments" and can't be split in advance.
func lockKey(job Job) string {
	if len(job.AssignmentIDs) == 1 {
		return assignmentKey(job.AssignmentIDs[0])
	}
	return batchKey(job.BatchID)
}

func assignmentKey(id uint) string { return "assignment:" + strconv.FormatUint(uint64(id), 10) }
func batchKey(id uint) string      { return "batch:" + strconv.FormatUint(uint64(id), 10) }

// keyLock returns the per-key mutex for key, creating it on first use.
// Two tasks on the same assignment therefore serialize by blocking on the
// same *sync.Mutex rather than racing (spec.md §5).
func (q *Queue) keyLock(key string) *sync.Mutex {
	q.mu.Lock()
	defer q.mu.Unlock()
	l, ok := q.locks[key]
	if !ok {
		l = &sync.Mutex{}
		q.locks[key] = l
	}
	return l
}
