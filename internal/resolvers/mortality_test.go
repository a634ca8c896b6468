package resolvers

import (
	"testing"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMortalityResolver_ActualEventsWinOverModel(t *testing.T) {
	db := newTestDB(t)
	r := NewMortalityResolver(db)
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.MortalityEvent{AssignmentID: 1, Date: date, Count: 3}).Error)
	require.NoError(t, db.Create(&models.MortalityEvent{AssignmentID: 1, Date: date, Count: 2}).Error)

	model := &models.MortalityModel{BaseRate: 0.01, RatePeriod: "daily"}
	result, err := r.Resolve(1, date, 1000, 1, model)

	require.NoError(t, err)
	assert.Equal(t, 5, result.Count)
	assert.Equal(t, models.SourceMortalityActual, result.Source)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestMortalityResolver_FallsBackToModelRateWhenNoEvents(t *testing.T) {
	db := newTestDB(t)
	r := NewMortalityResolver(db)
	date := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)

	model := &models.MortalityModel{BaseRate: 0.02, RatePeriod: "daily"}
	result, err := r.Resolve(2, date, 1000, 1, model)

	require.NoError(t, err)
	assert.Equal(t, 20, result.Count)
	assert.Equal(t, models.SourceMortalityModel, result.Source)
	assert.Equal(t, 0.4, result.Confidence)
}

func TestMortalityResolver_WeeklyRateConvertsToDaily(t *testing.T) {
	db := newTestDB(t)
	r := NewMortalityResolver(db)
	date := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	model := &models.MortalityModel{BaseRate: 0.07, RatePeriod: "weekly"}
	result, err := r.Resolve(3, date, 1000, 1, model)

	require.NoError(t, err)
	assert.Equal(t, 10, result.Count)
}

func TestMortalityResolver_StageOverrideReplacesBaseRate(t *testing.T) {
	db := newTestDB(t)
	r := NewMortalityResolver(db)
	date := time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)

	model := &models.MortalityModel{
		BaseRate:   0.01,
		RatePeriod: "daily",
		StageOverrides: []models.MortalityStageOverride{
			{StageID: 5, Rate: 0.05, RatePeriod: "daily"},
		},
	}
	result, err := r.Resolve(4, date, 1000, 5, model)

	require.NoError(t, err)
	assert.Equal(t, 50, result.Count)
}

func TestMortalityResolver_NoModelNoEventsReturnsZeroLowConfidence(t *testing.T) {
	db := newTestDB(t)
	r := NewMortalityResolver(db)
	date := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

	result, err := r.Resolve(5, date, 1000, 1, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Equal(t, models.SourceMortalityModel, result.Source)
	assert.Equal(t, 0.4, result.Confidence)
}
