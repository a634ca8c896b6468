package growth

import "github.com/aquarian247/AquaMind-sub005/internal/models"

// Caps resolves the permissive stage safety cap for one stage, preferring an
// entry in Overrides (keyed by stage name only, not by species; the
// recomputer fills it from recompute.Config.StageCapOverrides, which is not
// loaded from the environment) and falling back to the spec.md §4.6
// defaults.
type Caps struct {
	Overrides map[string]float64 // stage name -> cap grams, overrides the default table
}

// CapFor returns the safety cap in grams for a stage name.
func (c Caps) CapFor(stage string) (float64, bool) {
	if c.Overrides != nil {
		if v, ok := c.Overrides[stage]; ok {
			return v, true
		}
	}
	v, ok := models.StageSafetyCapG[stage]
	return v, ok
}
