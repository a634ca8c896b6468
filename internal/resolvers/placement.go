package resolvers

import (
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/dateutil"
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"gorm.io/gorm"
)

// PlacementResolver implements C4: fish-in count for the day from completed
// transfers into this assignment.
type PlacementResolver struct {
	DB *gorm.DB
}

func NewPlacementResolver(db *gorm.DB) *PlacementResolver {
	return &PlacementResolver{DB: db}
}

func (r *PlacementResolver) Resolve(assignmentID uint, date time.Time) (int, error) {
	date = dateutil.Normalize(date)
	var transfers []models.TransferAction
	if err := r.DB.Where("dest_assignment_id = ? AND status = ? AND actual_execution_date >= ? AND actual_execution_date < ?",
		assignmentID, "completed", date, date.AddDate(0, 0, 1)).Find(&transfers).Error; err != nil {
		return 0, err
	}
	total := 0
	for _, t := range transfers {
		total += t.TransferredCount
	}
	return total, nil
}
