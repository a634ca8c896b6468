package resolvers

import (
	"testing"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlacementResolver_SumsCompletedTransfersIntoAssignment(t *testing.T) {
	db := newTestDB(t)
	r := NewPlacementResolver(db)
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	dest := uint(9)

	require.NoError(t, db.Create(&models.TransferAction{
		SourceAssignmentID: 1, DestAssignmentID: &dest,
		ActualExecutionDate: date.Add(time.Hour), Status: "completed", TransferredCount: 400,
	}).Error)
	require.NoError(t, db.Create(&models.TransferAction{
		SourceAssignmentID: 2, DestAssignmentID: &dest,
		ActualExecutionDate: date.Add(5 * time.Hour), Status: "completed", TransferredCount: 100,
	}).Error)

	count, err := r.Resolve(dest, date)

	require.NoError(t, err)
	assert.Equal(t, 500, count)
}

func TestPlacementResolver_IgnoresPendingTransfers(t *testing.T) {
	db := newTestDB(t)
	r := NewPlacementResolver(db)
	date := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)
	dest := uint(10)

	require.NoError(t, db.Create(&models.TransferAction{
		SourceAssignmentID: 1, DestAssignmentID: &dest,
		ActualExecutionDate: date, Status: "pending", TransferredCount: 999,
	}).Error)

	count, err := r.Resolve(dest, date)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPlacementResolver_IgnoresOtherDates(t *testing.T) {
	db := newTestDB(t)
	r := NewPlacementResolver(db)
	date := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	dest := uint(11)

	require.NoError(t, db.Create(&models.TransferAction{
		SourceAssignmentID: 1, DestAssignmentID: &dest,
		ActualExecutionDate: date.AddDate(0, 0, 1), Status: "completed", TransferredCount: 300,
	}).Error)

	count, err := r.Resolve(dest, date)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
