package bootstrap

import (
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
		&models.BatchContainerAssignment{},
		&models.TransferAction{},
		&models.DailyState{},
		&models.StageConstraint{},
		&models.TGCModel{},
	))
	return db
}

func TestResolve_UsesAssignmentAvgWeightWhenSet(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db)

	avgWeight := 5.5
	assignment := models.BatchContainerAssignment{
		ID: 1, PopulationCount: 1000, AvgWeightG: &avgWeight,
		AssignmentDate: time.Now(),
	}
	stage := models.LifecycleStage{ID: 1, Name: models.StageFry, ExpectedWeightMinG: 1}

	state, err := r.Resolve(assignment, stage, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 5.5, state.WeightG)
	assert.Equal(t, 1000, state.Population)
}

func TestResolve_TransferDestinationOverridesAssignmentWeight(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db)

	assignOwnWeight := 5.5
	destAssignmentID := uint(2)
	measured := 9.0
	require.NoError(t, db.Create(&models.TransferAction{
		SourceAssignmentID: 1, DestAssignmentID: &destAssignmentID,
		ActualExecutionDate: time.Now(), Status: "completed",
		MeasuredAvgWeightG: &measured, TransferredCount: 500,
	}).Error)

	assignment := models.BatchContainerAssignment{
		ID: destAssignmentID, PopulationCount: 0, AvgWeightG: &assignOwnWeight,
		AssignmentDate: time.Now(),
	}
	stage := models.LifecycleStage{ID: 1, Name: models.StageSmolt}

	state, err := r.Resolve(assignment, stage, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 9.0, state.WeightG)
}

func TestResolve_FallsBackToStageExpectedMin(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db)

	assignment := models.BatchContainerAssignment{ID: 3, PopulationCount: 100, AssignmentDate: time.Now()}
	stage := models.LifecycleStage{ID: 1, Name: models.StageEggAlevin, ExpectedWeightMinG: 0.2}

	state, err := r.Resolve(assignment, stage, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 0.2, state.WeightG)
}

func TestResolve_MissingMasterDataWithNoFallback(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db)

	assignment := models.BatchContainerAssignment{ID: 4, PopulationCount: 100, AssignmentDate: time.Now()}
	stage := models.LifecycleStage{ID: 1, Name: models.StageEggAlevin}

	_, err := r.Resolve(assignment, stage, nil, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing master data")
}
