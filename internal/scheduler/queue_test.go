package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/aquarian247/AquaMind-sub005/internal/recompute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestLockKey_SingleAssignmentUsesAssignmentKey(t *testing.T) {
	job := Job{BatchID: 7, AssignmentIDs: []uint{42}}
	assert.Equal(t, "assignment:42", lockKey(job))
}

func TestLockKey_NoOrMultipleAssignmentsFallsBackToBatchKey(t *testing.T) {
	assert.Equal(t, "batch:7", lockKey(Job{BatchID: 7}))
	assert.Equal(t, "batch:7", lockKey(Job{BatchID: 7, AssignmentIDs: []uint{1, 2}}))
}

func TestQueue_KeyLockReturnsSameMutexForSameKey(t *testing.T) {
	q := NewQueue(nil, 1)

	a := q.keyLock("assignment:1")
	b := q.keyLock("assignment:1")
	c := q.keyLock("assignment:2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func newSchedulerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Batch{},
		&models.ProjectionRun{},
		&models.LifecycleStage{},
		&models.StageConstraint{},
		&models.ConstraintSet{},
		&models.BatchContainerAssignment{},
		&models.TGCModel{},
		&models.MortalityModel{},
		&models.Reading{},
		&models.MortalityEvent{},
		&models.FeedingEvent{},
		&models.TransferAction{},
		&models.GrowthSample{},
		&models.SamplingEvent{},
		&models.IndividualWeightSample{},
		&models.Treatment{},
		&models.DailyState{},
	))
	return db
}

func TestQueue_DrainsEnqueuedJobsAndProducesDailyStates(t *testing.T) {
	db := newSchedulerTestDB(t)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	stage := models.LifecycleStage{SpeciesID: 1, Name: models.StageFry, Order: 1, ExpectedWeightMinG: 1, ExpectedWeightMaxG: 1000}
	require.NoError(t, db.Create(&stage).Error)
	batch := models.Batch{SpeciesID: 1, StartDate: start, CurrentStageID: stage.ID}
	require.NoError(t, db.Create(&batch).Error)
	avgWeight := 5.0
	assignment := models.BatchContainerAssignment{
		BatchID: batch.ID, ContainerID: 1, LifecycleStageID: stage.ID,
		AssignmentDate: start, PopulationCount: 1000, AvgWeightG: &avgWeight,
	}
	require.NoError(t, db.Create(&assignment).Error)
	require.NoError(t, db.Create(&models.Reading{ContainerID: 1, Parameter: "temperature", Value: 10.0, Timestamp: start.Add(6 * time.Hour)}).Error)

	recomputer := recompute.NewRecomputer(db)
	q := NewQueue(recomputer, 2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	end := start
	id1 := q.Enqueue(Job{BatchID: batch.ID, AssignmentIDs: []uint{assignment.ID}, Start: start, End: &end, Kind: KindAdminRecompute})
	id2 := q.Enqueue(Job{BatchID: batch.ID, AssignmentIDs: []uint{assignment.ID}, Start: start, End: &end, Kind: KindAdminRecompute})

	q.Stop()

	assert.NotEmpty(t, id1)
	assert.NotEmpty(t, id2)
	assert.NotEqual(t, id1, id2)

	var count int64
	require.NoError(t, db.Model(&models.DailyState{}).Where("assignment_id = ?", assignment.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
