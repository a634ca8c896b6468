package resolvers

import (
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/dateutil"
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"gorm.io/gorm"
)

// FeedResult is the (kg, source, confidence) triple from C3.
type FeedResult struct {
	Kg         float64
	Source     string
	Confidence float64
}

// FeedResolver implements C3: sums feeding events for a container/date.
type FeedResolver struct {
	DB *gorm.DB
}

func NewFeedResolver(db *gorm.DB) *FeedResolver {
	return &FeedResolver{DB: db}
}

func (r *FeedResolver) Resolve(containerID uint, date time.Time) (FeedResult, error) {
	date = dateutil.Normalize(date)
	var events []models.FeedingEvent
	if err := r.DB.Where("container_id = ? AND date >= ? AND date < ?",
		containerID, date, date.AddDate(0, 0, 1)).Find(&events).Error; err != nil {
		return FeedResult{}, err
	}
	sum := 0.0
	for _, e := range events {
		sum += e.AmountKg
	}
	if sum > 0 {
		return FeedResult{Kg: sum, Source: models.SourceFeedActual, Confidence: 1.0}, nil
	}
	return FeedResult{Kg: 0, Source: models.SourceFeedNone, Confidence: 0.0}, nil
}
