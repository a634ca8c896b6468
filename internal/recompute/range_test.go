package recompute

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
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
		&models.TGCStageOverride{},
		&models.TemperatureProfilePoint{},
		&models.MortalityModel{},
		&models.MortalityStageOverride{},
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

func seedAssignment(t *testing.T, db *gorm.DB, start time.Time) (models.Batch, models.BatchContainerAssignment) {
	t.Helper()
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

	for i := 0; i < 10; i++ {
		require.NoError(t, db.Create(&models.Reading{
			ContainerID: 1, Parameter: "temperature", Value: 10.0,
			Timestamp: start.AddDate(0, 0, i).Add(6 * time.Hour),
		}).Error)
	}
	return batch, assignment
}

func TestRecompute_CreatesOneRowPerDayInWindow(t *testing.T) {
	db := newTestDB(t)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, assignment := seedAssignment(t, db, start)

	r := NewRecomputer(db)
	end := start.AddDate(0, 0, 2)

	result, err := r.Recompute(context.Background(), assignment.ID, start, &end)

	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 3, result.RowsCreated)
	assert.Equal(t, 0, result.RowsUpdated)

	var count int64
	require.NoError(t, db.Model(&models.DailyState{}).Where("assignment_id = ?", assignment.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestRecompute_IsIdempotentOnRerun(t *testing.T) {
	db := newTestDB(t)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, assignment := seedAssignment(t, db, start)

	r := NewRecomputer(db)
	end := start.AddDate(0, 0, 2)

	first, err := r.Recompute(context.Background(), assignment.ID, start, &end)
	require.NoError(t, err)
	require.Equal(t, 3, first.RowsCreated)

	second, err := r.Recompute(context.Background(), assignment.ID, start, &end)
	require.NoError(t, err)
	assert.Equal(t, 0, second.RowsCreated)
	assert.Equal(t, 3, second.RowsUpdated)

	var count int64
	require.NoError(t, db.Model(&models.DailyState{}).Where("assignment_id = ?", assignment.ID).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestRecompute_WideningWindowAddsRowsAndUpdatesExisting(t *testing.T) {
	db := newTestDB(t)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, assignment := seedAssignment(t, db, start)

	r := NewRecomputer(db)
	narrowEnd := start.AddDate(0, 0, 2)
	_, err := r.Recompute(context.Background(), assignment.ID, start, &narrowEnd)
	require.NoError(t, err)

	widerEnd := start.AddDate(0, 0, 3)
	result, err := r.Recompute(context.Background(), assignment.ID, start, &widerEnd)

	require.NoError(t, err)
	assert.Equal(t, 1, result.RowsCreated)
	assert.Equal(t, 3, result.RowsUpdated)
}

func TestRecompute_ClampsStartToAssignmentDate(t *testing.T) {
	db := newTestDB(t)
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	_, assignment := seedAssignment(t, db, start)

	r := NewRecomputer(db)
	requestedStart := start.AddDate(0, 0, -5)
	end := start.AddDate(0, 0, 1)

	result, err := r.Recompute(context.Background(), assignment.ID, requestedStart, &end)

	require.NoError(t, err)
	assert.Equal(t, 2, result.RowsCreated)
}

func TestRecompute_UnknownAssignmentReturnsValidationError(t *testing.T) {
	db := newTestDB(t)
	r := NewRecomputer(db)
	end := time.Now()

	_, err := r.Recompute(context.Background(), 999, time.Now(), &end)

	assert.Error(t, err)
}
