// Package growth implements the cube-root TGC step and stage-transition
// decision (C6).
package growth

import (
	"math"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
)

// Stage is the minimal lifecycle-stage view the growth model needs: its
// name (for freshwater substitution and the cap table), its order within
// the species, and its constraint-set/expected weight bounds.
type Stage struct {
	ID                 uint
	Name               string
	Order              int
	ExpectedWeightMinG float64
	ExpectedWeightMaxG float64
	// ConstraintMaxWeightG, if non-nil, overrides ExpectedWeightMaxG as the
	// stage-transition threshold (spec.md §4.6: "constraint set's
	// max_weight_g, falling back to the stage's expected_weight_max_g").
	ConstraintMaxWeightG *float64
}

func (s Stage) transitionThreshold() float64 {
	if s.ConstraintMaxWeightG != nil && *s.ConstraintMaxWeightG > 0 {
		return *s.ConstraintMaxWeightG
	}
	return s.ExpectedWeightMaxG
}

// StepResult is the outcome of one day's TGC step: the new weight (capped)
// and the stage that applies to the new day after any transition.
type StepResult struct {
	NewWeightG float64
	NewStage   Stage
	Advanced   bool
}

// Step applies the canonical cube-root TGC update for one day and then the
// stage-transition decision, per spec.md §4.6.
//
//	tgc = stage_override(stage) ?? model.base_tgc
//	dtgc = tgc / 1000
//	effective_temp = freshwater_stage_temperature(stage, temp)
//	new_weight = (current_weight^(1/3) + dtgc * effective_temp * 1)^3
func Step(currentWeightG float64, stage Stage, nextStage *Stage, tempC float64, model models.TGCModel, caps Caps, freshwaterRefTempC float64) StepResult {
	tgc := model.BaseTGC
	for _, o := range model.StageOverrides {
		if o.StageID == stage.ID {
			tgc = o.TGC
			break
		}
	}
	dtgc := tgc / 1000.0

	effectiveTemp := tempC
	if models.IsFreshwaterStage(stage.Name) {
		effectiveTemp = freshwaterRefTempC
	}

	cubeRoot := math.Cbrt(currentWeightG)
	newWeight := math.Pow(cubeRoot+dtgc*effectiveTemp, 3)

	if cap, ok := caps.CapFor(stage.Name); ok && newWeight > cap {
		newWeight = cap
	}

	resultStage, advanced := Transition(newWeight, stage, nextStage)

	return StepResult{NewWeightG: newWeight, NewStage: resultStage, Advanced: advanced}
}

// Transition runs the second half of C6 on its own: given a day's new
// weight (whoever computed it — TGC formula, a measured anchor, or a
// carried-forward unchanged value), decide whether the assignment advances
// to nextStage. Called unconditionally from the daily step (spec.md §4.8
// step 7 is its own step, not gated on which branch produced new_weight),
// and internally by Step for the TGC-computed path.
func Transition(newWeightG float64, stage Stage, nextStage *Stage) (Stage, bool) {
	threshold := stage.transitionThreshold()
	if threshold > 0 && newWeightG >= threshold && nextStage != nil {
		return *nextStage, true
	}
	return stage, false
}
