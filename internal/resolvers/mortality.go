package resolvers

import (
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/dateutil"
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"gorm.io/gorm"
)

// MortalityResult is the (count, source, confidence) triple from C2.
type MortalityResult struct {
	Count      int
	Source     string
	Confidence float64
}

// MortalityResolver implements C2.
type MortalityResolver struct {
	DB *gorm.DB
}

func NewMortalityResolver(db *gorm.DB) *MortalityResolver {
	return &MortalityResolver{DB: db}
}

// Resolve returns recorded mortality if any MortalityEvent rows exist for
// this assignment/date, else the modeled daily count (spec.md §4.2).
func (r *MortalityResolver) Resolve(assignmentID uint, date time.Time, currentPopulation int, stageID uint, model *models.MortalityModel) (MortalityResult, error) {
	date = dateutil.Normalize(date)
	var events []models.MortalityEvent
	if err := r.DB.Where("assignment_id = ? AND date >= ? AND date < ?",
		assignmentID, date, date.AddDate(0, 0, 1)).Find(&events).Error; err != nil {
		return MortalityResult{}, err
	}
	if len(events) > 0 {
		total := 0
		for _, e := range events {
			total += e.Count
		}
		return MortalityResult{Count: total, Source: models.SourceMortalityActual, Confidence: 1.0}, nil
	}

	if model == nil {
		return MortalityResult{Count: 0, Source: models.SourceMortalityModel, Confidence: 0.4}, nil
	}
	rate := model.DailyRate(stageID)
	count := roundToInt(float64(currentPopulation) * rate)
	return MortalityResult{Count: count, Source: models.SourceMortalityModel, Confidence: 0.4}, nil
}

func roundToInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
