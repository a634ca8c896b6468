// Package resolvers implements the four leaf resolvers (C1-C4): small
// read-only lookups over storage that the daily step composes. Each follows
// the teacher's RecordService idiom of a thin struct wrapping *gorm.DB.
package resolvers

import (
	"math"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/dateutil"
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"gorm.io/gorm"
)

// FreshwaterReferenceTempC is the default substitute temperature for
// freshwater stages (spec.md §6 Environment/config).
const FreshwaterReferenceTempC = 12.0

// TemperatureResult is the (temp, source, confidence) triple from C1.
type TemperatureResult struct {
	TempC      *float64
	Source     string
	Confidence float64
}

// TemperatureResolver implements C1: returns (temp, source, confidence) for
// (container, date) under the fallback ladder in spec.md §4.1.
type TemperatureResolver struct {
	DB *gorm.DB
}

func NewTemperatureResolver(db *gorm.DB) *TemperatureResolver {
	return &TemperatureResolver{DB: db}
}

// Resolve implements the first-match-wins ladder of spec.md §4.1.
func (r *TemperatureResolver) Resolve(containerID uint, date time.Time, tgcModel *models.TGCModel, dayNumber int) (TemperatureResult, error) {
	date = dateutil.Normalize(date)

	// 1. Measured: mean of same-day "temperature" readings.
	var measured []models.Reading
	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)
	if err := r.DB.Where("container_id = ? AND parameter = ? AND timestamp >= ? AND timestamp < ?",
		containerID, "temperature", dayStart, dayEnd).Find(&measured).Error; err != nil {
		return TemperatureResult{}, err
	}
	if len(measured) > 0 {
		sum := 0.0
		for _, m := range measured {
			sum += m.Value
		}
		temp := sum / float64(len(measured))
		return TemperatureResult{TempC: &temp, Source: models.SourceTempMeasured, Confidence: 1.0}, nil
	}

	// 2-4. Interpolation / nearest-before / nearest-after within 7 days.
	before, hasBefore, err := r.nearest(containerID, date, -7, true)
	if err != nil {
		return TemperatureResult{}, err
	}
	after, hasAfter, err := r.nearest(containerID, date, 7, false)
	if err != nil {
		return TemperatureResult{}, err
	}

	if hasBefore && hasAfter {
		spanDays := dateutil.DaysBetween(before.Timestamp, after.Timestamp)
		var temp float64
		if spanDays == 0 {
			temp = before.Value
		} else {
			frac := float64(dateutil.DaysBetween(before.Timestamp, date)) / float64(spanDays)
			temp = before.Value + frac*(after.Value-before.Value)
		}
		conf := math.Max(0.4, 0.9-float64(spanDays)/30.0)
		return TemperatureResult{TempC: &temp, Source: "interpolated", Confidence: conf}, nil
	}
	if hasBefore {
		temp := before.Value
		return TemperatureResult{TempC: &temp, Source: models.SourceTempNearestBefore, Confidence: 0.6}, nil
	}
	if hasAfter {
		temp := after.Value
		return TemperatureResult{TempC: &temp, Source: models.SourceTempNearestAfter, Confidence: 0.6}, nil
	}

	// 5. Profile fallback.
	if tgcModel != nil {
		for _, p := range tgcModel.TemperatureProfile {
			if p.DayNumber == dayNumber {
				temp := p.TempC
				return TemperatureResult{TempC: &temp, Source: models.SourceTempProfile, Confidence: 0.5}, nil
			}
		}
	}

	// 6. Otherwise: none.
	return TemperatureResult{TempC: nil, Source: models.SourceTempNone, Confidence: 0.0}, nil
}

// nearest finds the nearest reading within 7 days before (dir<0) or after
// (dir>0) date, for the "temperature" parameter.
func (r *TemperatureResolver) nearest(containerID uint, date time.Time, dir int, before bool) (models.Reading, bool, error) {
	var readings []models.Reading
	var err error
	if before {
		lo := dateutil.AddDays(date, dir)
		err = r.DB.Where("container_id = ? AND parameter = ? AND timestamp >= ? AND timestamp < ?",
			containerID, "temperature", lo, date).
			Order("timestamp DESC").Limit(1).Find(&readings).Error
	} else {
		hi := dateutil.AddDays(date, dir+1)
		err = r.DB.Where("container_id = ? AND parameter = ? AND timestamp >= ? AND timestamp < ?",
			containerID, "temperature", date.AddDate(0, 0, 1), hi).
			Order("timestamp ASC").Limit(1).Find(&readings).Error
	}
	if err != nil {
		return models.Reading{}, false, err
	}
	if len(readings) == 0 {
		return models.Reading{}, false, nil
	}
	return readings[0], true, nil
}

// FreshwaterStageTemperature substitutes the freshwater reference
// temperature for freshwater stages regardless of measured temperature
// (spec.md §4.6).
func FreshwaterStageTemperature(stage string, temp float64, referenceTemp float64) float64 {
	if models.IsFreshwaterStage(stage) {
		return referenceTemp
	}
	return temp
}
