package growth

import (
	"testing"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestStep_CubeRootTGCUpdate(t *testing.T) {
	stage := Stage{ID: 1, Name: models.StageParr, ExpectedWeightMaxG: 1000}
	model := models.TGCModel{BaseTGC: 2.5}

	result := Step(10.0, stage, nil, 8.0, model, Caps{}, 12.0)

	assert.Greater(t, result.NewWeightG, 10.0)
	assert.False(t, result.Advanced)
	assert.Equal(t, stage.ID, result.NewStage.ID)
}

func TestStep_FreshwaterStageSubstitutesReferenceTemp(t *testing.T) {
	stage := Stage{ID: 1, Name: models.StageParr, ExpectedWeightMaxG: 1000}
	model := models.TGCModel{BaseTGC: 2.5}

	withCold := Step(10.0, stage, nil, -5.0, model, Caps{}, 12.0)
	withReference := Step(10.0, stage, nil, 12.0, model, Caps{}, 12.0)

	assert.InDelta(t, withReference.NewWeightG, withCold.NewWeightG, 1e-9)
}

func TestStep_SeaStageUsesMeasuredTemp(t *testing.T) {
	stage := Stage{ID: 1, Name: models.StageAdult, ExpectedWeightMaxG: 20000}
	model := models.TGCModel{BaseTGC: 2.5}

	cold := Step(1000.0, stage, nil, 4.0, model, Caps{}, 12.0)
	warm := Step(1000.0, stage, nil, 14.0, model, Caps{}, 12.0)

	assert.Less(t, cold.NewWeightG, warm.NewWeightG)
}

func TestStep_AdvancesAtTransitionThreshold(t *testing.T) {
	stage := Stage{ID: 1, Name: models.StageParr, ExpectedWeightMaxG: 50}
	next := Stage{ID: 2, Name: models.StageSmolt, ExpectedWeightMaxG: 250}
	model := models.TGCModel{BaseTGC: 5.0}

	result := Step(45.0, stage, &next, 10.0, model, Caps{}, 12.0)

	assert.True(t, result.Advanced)
	assert.Equal(t, next.ID, result.NewStage.ID)
}

func TestStep_ConstraintMaxWeightOverridesExpected(t *testing.T) {
	constraintMax := 30.0
	stage := Stage{ID: 1, Name: models.StageParr, ExpectedWeightMaxG: 50, ConstraintMaxWeightG: &constraintMax}
	next := Stage{ID: 2, Name: models.StageSmolt}
	model := models.TGCModel{BaseTGC: 5.0}

	result := Step(29.0, stage, &next, 10.0, model, Caps{}, 12.0)

	assert.True(t, result.Advanced)
}

func TestStep_SafetyCapClampsWeight(t *testing.T) {
	stage := Stage{ID: 1, Name: models.StageFry, ExpectedWeightMaxG: 1000}
	model := models.TGCModel{BaseTGC: 50.0}

	result := Step(9.0, stage, nil, 20.0, model, Caps{}, 12.0)

	safetyCap, ok := Caps{}.CapFor(models.StageFry)
	assert.True(t, ok)
	assert.LessOrEqual(t, result.NewWeightG, safetyCap)
}

func TestStep_StageOverrideReplacesBaseTGC(t *testing.T) {
	stage := Stage{ID: 7, Name: models.StageAdult, ExpectedWeightMaxG: 20000}
	model := models.TGCModel{
		BaseTGC: 1.0,
		StageOverrides: []models.TGCStageOverride{
			{StageID: 7, TGC: 10.0},
		},
	}

	withOverride := Step(1000.0, stage, nil, 10.0, model, Caps{}, 12.0)

	baseModel := models.TGCModel{BaseTGC: 1.0}
	withoutOverride := Step(1000.0, stage, nil, 10.0, baseModel, Caps{}, 12.0)

	assert.Greater(t, withOverride.NewWeightG, withoutOverride.NewWeightG)
}
