package models

// LifecycleStage is an ordered biological phase for one species (Egg&Alevin,
// Fry, Parr, Smolt, Post-Smolt, Adult, ...). Order is scoped per species: a
// Parr in one species is not assumed equivalent to a Parr in another.
type LifecycleStage struct {
	ID                 uint    `json:"id" gorm:"primaryKey"`
	SpeciesID          uint    `json:"speciesId" gorm:"not null;index"`
	Name               string  `json:"name" gorm:"not null"`
	Order              int     `json:"order" gorm:"not null"`
	ExpectedWeightMinG float64 `json:"expectedWeightMinG"`
	ExpectedWeightMaxG float64 `json:"expectedWeightMaxG"`
}

func (LifecycleStage) TableName() string { return "lifecycle_stages" }

// Freshwater stage names substitute the fixed freshwater reference
// temperature regardless of measured container temperature (spec.md §4.6).
const (
	StageEggAlevin  = "egg_alevin"
	StageFry        = "fry"
	StageParr       = "parr"
	StageSmolt      = "smolt"
	StagePostSmolt  = "post_smolt"
	StageAdult      = "adult"
	StageHarvest    = "harvest"
)

var freshwaterStages = map[string]bool{
	StageEggAlevin: true,
	StageFry:       true,
	StageParr:      true,
	StageSmolt:     true,
}

// IsFreshwaterStage reports whether a stage name uses the freshwater
// reference temperature substitution in the TGC step.
func IsFreshwaterStage(stage string) bool {
	return freshwaterStages[stage]
}

// StageSafetyCapG is the permissive upper-bound safety cap per stage
// (spec.md §4.6). These are larger than natural transition thresholds and do
// not themselves force a transition; callers override them per stage name
// via growth.Caps.
var StageSafetyCapG = map[string]float64{
	StageEggAlevin: 1,
	StageFry:       10,
	StageParr:      100,
	StageSmolt:     250,
	StagePostSmolt: 700,
	StageAdult:     8000,
	StageHarvest:   8000,
}

// StageConstraint is the per-stage row of a ConstraintSet: min/max weight
// bounds, an optional freshwater max weight, and optional temperature
// bounds.
type StageConstraint struct {
	ID                uint    `json:"id" gorm:"primaryKey"`
	ConstraintSetID   uint    `json:"constraintSetId" gorm:"not null;index"`
	StageID           uint    `json:"stageId" gorm:"not null;index"`
	MinWeightG        float64 `json:"minWeightG"`
	MaxWeightG        float64 `json:"maxWeightG"`
	FreshwaterMaxG    *float64 `json:"freshwaterMaxG,omitempty"`
	MinTempC          *float64 `json:"minTempC,omitempty"`
	MaxTempC          *float64 `json:"maxTempC,omitempty"`
}

func (StageConstraint) TableName() string { return "stage_constraints" }

// ConstraintSet groups StageConstraint rows belonging to one ProjectionRun.
type ConstraintSet struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name"`
}

func (ConstraintSet) TableName() string { return "constraint_sets" }
