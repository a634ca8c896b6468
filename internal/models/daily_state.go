package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Provenance tags, per spec.md §3/§4.
const (
	SourceWeightMeasured    = "measured"
	SourceWeightTGCComputed = "tgc_computed"
	SourceWeightUnchanged   = "unchanged"

	SourceTempMeasured      = "measured"
	SourceTempInterpolated  = "interpolated"
	SourceTempNearestBefore = "nearest_before"
	SourceTempNearestAfter  = "nearest_after"
	SourceTempProfile       = "profile"
	SourceTempNone          = "none"

	SourceMortalityActual = "actual"
	SourceMortalityModel  = "model"

	SourceFeedActual = "actual"
	SourceFeedNone    = "none"

	SourceFCRObserved = "observed"
	SourceFCRModel    = "model"

	AnchorGrowthSample = "growth_sample"
	AnchorTransfer     = "transfer"
	AnchorVaccination  = "vaccination"
)

// ProvenanceSources is the statically typed equivalent of the open
// {field -> tag} dictionary described in spec.md §3/§9: five optional
// tagged fields, each populated only when that field was computed this day.
// Keys are drawn from {weight, temp, mortality, feed, fcr}.
type ProvenanceSources struct {
	Weight    string `json:"weight,omitempty"`
	Temp      string `json:"temp,omitempty"`
	Mortality string `json:"mortality,omitempty"`
	Feed      string `json:"feed,omitempty"`
	FCR       string `json:"fcr,omitempty"`
}

// Value implements driver.Valuer so gorm can persist this as a JSON text column.
func (p ProvenanceSources) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (p *ProvenanceSources) Scan(value interface{}) error {
	if value == nil {
		*p = ProvenanceSources{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("models: unsupported Scan type for ProvenanceSources")
	}
	if len(b) == 0 {
		*p = ProvenanceSources{}
		return nil
	}
	return json.Unmarshal(b, p)
}

// ConfidenceScores mirrors ProvenanceSources: one [0,1] score per field that
// received a source tag this day.
type ConfidenceScores struct {
	Weight    *float64 `json:"weight,omitempty"`
	Temp      *float64 `json:"temp,omitempty"`
	Mortality *float64 `json:"mortality,omitempty"`
	Feed      *float64 `json:"feed,omitempty"`
	FCR       *float64 `json:"fcr,omitempty"`
}

func (c ConfidenceScores) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *ConfidenceScores) Scan(value interface{}) error {
	if value == nil {
		*c = ConfidenceScores{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("models: unsupported Scan type for ConfidenceScores")
	}
	if len(b) == 0 {
		*c = ConfidenceScores{}
		return nil
	}
	return json.Unmarshal(b, c)
}

func confidence(v float64) *float64 { return &v }

// Confidence is a small constructor helper used by resolvers/daily step code
// building a ConfidenceScores value.
func Confidence(v float64) *float64 { return confidence(v) }

// DailyState is one row per (assignment, date): the fully provenance-tagged
// snapshot of fish state (spec.md §3, "ActualDailyAssignmentState").
type DailyState struct {
	ID               uint              `json:"id" gorm:"primaryKey"`
	AssignmentID     uint              `json:"assignmentId" gorm:"not null;uniqueIndex:idx_assignment_date"`
	Date             time.Time         `json:"date" gorm:"not null;uniqueIndex:idx_assignment_date"`
	DayNumber        int               `json:"dayNumber"`
	AvgWeightG       float64           `json:"avgWeightG"`
	Population       int               `json:"population"`
	BiomassKg        float64           `json:"biomassKg"`
	TempC            *float64          `json:"tempC,omitempty"`
	MortalityCount   int               `json:"mortalityCount"`
	FeedKg           float64           `json:"feedKg"`
	ObservedFCR      *float64          `json:"observedFcr,omitempty"`
	AnchorType       *string           `json:"anchorType,omitempty"`
	LifecycleStageID uint              `json:"-"`
	LifecycleStage   string            `json:"lifecycleStage"`
	Sources          ProvenanceSources `json:"sources" gorm:"type:text"`
	ConfidenceScores ConfidenceScores  `json:"confidenceScores" gorm:"type:text"`
	CreatedAt        time.Time         `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time         `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (DailyState) TableName() string { return "daily_states" }
