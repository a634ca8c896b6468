// Package anchor implements the anchor detector (C5): it scans a window and
// returns, for each date, the winning measured observation that overrides
// the growth model for that day.
package anchor

import (
	"sort"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/dateutil"
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"gorm.io/gorm"
)

// Priority ordering: lower wins (spec.md §3).
const (
	PriorityGrowthSample = 1
	PriorityTransfer     = 2
	PriorityVaccination  = 3
)

// Anchor is a derived (never stored) in-memory record pinning fish weight
// on a date, per spec.md §3.
type Anchor struct {
	Type       string
	Date       time.Time
	WeightG    float64
	Confidence float64
	Priority   int
	SourceRef  uint
}

// Bias factors applied to a transfer-anchor's measured weight based on how
// fish were selected for the transfer (spec.md §4.5, §6 defaults).
type BiasFactors struct {
	Largest  float64
	Smallest float64
}

// DefaultBiasFactors are the spec.md §6 defaults.
var DefaultBiasFactors = BiasFactors{Largest: 0.88, Smallest: 1.12}

func (b BiasFactors) factorFor(method string) float64 {
	switch method {
	case models.SelectionLargest:
		return b.Largest
	case models.SelectionSmallest:
		return b.Smallest
	default:
		return 1.0
	}
}

// Detector scans candidate sources and builds the date -> anchor map.
type Detector struct {
	DB   *gorm.DB
	Bias BiasFactors
}

// NewDetector constructs a Detector with the default bias factors.
func NewDetector(db *gorm.DB) *Detector {
	return &Detector{DB: db, Bias: DefaultBiasFactors}
}

// Detect returns the date -> winning-anchor map for [start, end] for the
// given assignment, per spec.md §4.5. Growth samples and completed outbound
// transfers are scoped to the assignment; a transfer anchor applies to the
// source assignment only (spec.md §9 Open Question, confirmed as current
// behavior).
func (d *Detector) Detect(assignmentID uint, start, end time.Time) (map[string]Anchor, error) {
	candidates, err := d.collect(assignmentID, start, end)
	if err != nil {
		return nil, err
	}
	return fold(candidates), nil
}

func (d *Detector) collect(assignmentID uint, start, end time.Time) ([]Anchor, error) {
	var out []Anchor

	var samples []models.GrowthSample
	if err := d.DB.Where("assignment_id = ? AND date BETWEEN ? AND ?", assignmentID, start, end).
		Find(&samples).Error; err != nil {
		return nil, err
	}
	for _, s := range samples {
		out = append(out, Anchor{
			Type:       models.AnchorGrowthSample,
			Date:       dateutil.Normalize(s.Date),
			WeightG:    s.AvgWeightG,
			Confidence: 1.0,
			Priority:   PriorityGrowthSample,
			SourceRef:  s.ID,
		})
	}

	var transfers []models.TransferAction
	if err := d.DB.Where("source_assignment_id = ? AND status = ? AND actual_execution_date BETWEEN ? AND ? AND measured_avg_weight_g IS NOT NULL",
		assignmentID, "completed", start, end).Find(&transfers).Error; err != nil {
		return nil, err
	}
	for _, t := range transfers {
		if t.MeasuredAvgWeightG == nil {
			continue
		}
		factor := d.Bias.factorFor(t.SelectionMethod)
		out = append(out, Anchor{
			Type:       models.AnchorTransfer,
			Date:       dateutil.Normalize(t.ActualExecutionDate),
			WeightG:    round2(*t.MeasuredAvgWeightG * factor),
			Confidence: 0.95,
			Priority:   PriorityTransfer,
			SourceRef:  t.ID,
		})
	}

	var treatments []models.Treatment
	if err := d.DB.Where("assignment_id = ? AND includes_weighing = ? AND date BETWEEN ? AND ?",
		assignmentID, true, start, end).
		Preload("SamplingEvent.Observations").Find(&treatments).Error; err != nil {
		return nil, err
	}
	for _, t := range treatments {
		if t.SamplingEvent == nil || len(t.SamplingEvent.Observations) == 0 {
			continue
		}
		sum := 0.0
		for _, o := range t.SamplingEvent.Observations {
			sum += o.WeightG
		}
		mean := sum / float64(len(t.SamplingEvent.Observations))
		out = append(out, Anchor{
			Type:       models.AnchorVaccination,
			Date:       dateutil.Normalize(t.Date),
			WeightG:    mean,
			Confidence: 0.90,
			Priority:   PriorityVaccination,
			SourceRef:  t.ID,
		})
	}

	return out, nil
}

// fold keeps, per date, the candidate with the lowest priority number —
// spec.md §9's "fold over candidate lists that keeps the minimum-priority
// entry per date".
func fold(candidates []Anchor) map[string]Anchor {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})
	out := make(map[string]Anchor, len(candidates))
	for _, c := range candidates {
		key := c.Date.Format("2006-01-02")
		existing, ok := out[key]
		if !ok || c.Priority < existing.Priority {
			out[key] = c
		}
	}
	return out
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
