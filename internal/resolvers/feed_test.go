package resolvers

import (
	"testing"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedResolver_SumsSameDayEvents(t *testing.T) {
	db := newTestDB(t)
	r := NewFeedResolver(db)
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.FeedingEvent{ContainerID: 1, Date: date.Add(time.Hour), AmountKg: 2.5}).Error)
	require.NoError(t, db.Create(&models.FeedingEvent{ContainerID: 1, Date: date.Add(9 * time.Hour), AmountKg: 1.5}).Error)

	result, err := r.Resolve(1, date)

	require.NoError(t, err)
	assert.Equal(t, 4.0, result.Kg)
	assert.Equal(t, models.SourceFeedActual, result.Source)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestFeedResolver_ExcludesOtherDays(t *testing.T) {
	db := newTestDB(t)
	r := NewFeedResolver(db)
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.Create(&models.FeedingEvent{ContainerID: 2, Date: date.AddDate(0, 0, -1), AmountKg: 3.0}).Error)

	result, err := r.Resolve(2, date)

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Kg)
	assert.Equal(t, models.SourceFeedNone, result.Source)
}

func TestFeedResolver_NoEventsReturnsZeroSourceNone(t *testing.T) {
	db := newTestDB(t)
	r := NewFeedResolver(db)
	date := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	result, err := r.Resolve(3, date)

	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Kg)
	assert.Equal(t, models.SourceFeedNone, result.Source)
	assert.Equal(t, 0.0, result.Confidence)
}
