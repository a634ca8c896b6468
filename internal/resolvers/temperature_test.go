package resolvers

import (
	"testing"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemperatureResolver_MeasuredMeanWins(t *testing.T) {
	db := newTestDB(t)
	r := NewTemperatureResolver(db)
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.Reading{ContainerID: 1, Parameter: "temperature", Value: 8.0, Timestamp: date.Add(2 * time.Hour)}).Error)
	require.NoError(t, db.Create(&models.Reading{ContainerID: 1, Parameter: "temperature", Value: 10.0, Timestamp: date.Add(10 * time.Hour)}).Error)

	result, err := r.Resolve(1, date, nil, 1)

	require.NoError(t, err)
	require.NotNil(t, result.TempC)
	assert.InDelta(t, 9.0, *result.TempC, 1e-9)
	assert.Equal(t, models.SourceTempMeasured, result.Source)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestTemperatureResolver_InterpolatesBetweenNeighbors(t *testing.T) {
	db := newTestDB(t)
	r := NewTemperatureResolver(db)
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.Reading{ContainerID: 2, Parameter: "temperature", Value: 6.0, Timestamp: date.AddDate(0, 0, -2)}).Error)
	require.NoError(t, db.Create(&models.Reading{ContainerID: 2, Parameter: "temperature", Value: 10.0, Timestamp: date.AddDate(0, 0, 2)}).Error)

	result, err := r.Resolve(2, date, nil, 1)

	require.NoError(t, err)
	require.NotNil(t, result.TempC)
	assert.InDelta(t, 8.0, *result.TempC, 1e-9)
	assert.Equal(t, "interpolated", result.Source)
}

func TestTemperatureResolver_FallsBackToProfile(t *testing.T) {
	db := newTestDB(t)
	r := NewTemperatureResolver(db)
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tgc := &models.TGCModel{
		BaseTGC: 2.0,
		TemperatureProfile: []models.TemperatureProfilePoint{
			{DayNumber: 7, TempC: 11.5},
		},
	}

	result, err := r.Resolve(3, date, tgc, 7)

	require.NoError(t, err)
	require.NotNil(t, result.TempC)
	assert.Equal(t, 11.5, *result.TempC)
	assert.Equal(t, models.SourceTempProfile, result.Source)
}

func TestTemperatureResolver_NoDataReturnsNone(t *testing.T) {
	db := newTestDB(t)
	r := NewTemperatureResolver(db)
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	result, err := r.Resolve(4, date, nil, 1)

	require.NoError(t, err)
	assert.Nil(t, result.TempC)
	assert.Equal(t, models.SourceTempNone, result.Source)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestFreshwaterStageTemperature_SubstitutesForFreshwaterStages(t *testing.T) {
	assert.Equal(t, 12.0, FreshwaterStageTemperature(models.StageParr, -3.0, 12.0))
	assert.Equal(t, 14.0, FreshwaterStageTemperature(models.StageAdult, 14.0, 12.0))
}
