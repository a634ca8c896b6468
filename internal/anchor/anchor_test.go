package anchor

import (
	"testing"
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFold_KeepsMinimumPriorityPerDate(t *testing.T) {
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	candidates := []Anchor{
		{Type: models.AnchorVaccination, Date: day, WeightG: 50, Priority: PriorityVaccination},
		{Type: models.AnchorGrowthSample, Date: day, WeightG: 55, Priority: PriorityGrowthSample},
		{Type: models.AnchorTransfer, Date: day, WeightG: 52, Priority: PriorityTransfer},
	}

	out := fold(candidates)

	got, ok := out[day.Format("2006-01-02")]
	assert.True(t, ok)
	assert.Equal(t, models.AnchorGrowthSample, got.Type)
	assert.Equal(t, 55.0, got.WeightG)
}

func TestFold_SeparatesDistinctDates(t *testing.T) {
	day1 := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC)
	candidates := []Anchor{
		{Date: day1, WeightG: 10, Priority: PriorityGrowthSample},
		{Date: day2, WeightG: 20, Priority: PriorityTransfer},
	}

	out := fold(candidates)

	assert.Len(t, out, 2)
	assert.Equal(t, 10.0, out[day1.Format("2006-01-02")].WeightG)
	assert.Equal(t, 20.0, out[day2.Format("2006-01-02")].WeightG)
}

func TestBiasFactors_FactorForSelectionMethod(t *testing.T) {
	b := DefaultBiasFactors

	assert.Equal(t, 0.88, b.factorFor(models.SelectionLargest))
	assert.Equal(t, 1.12, b.factorFor(models.SelectionSmallest))
	assert.Equal(t, 1.0, b.factorFor(models.SelectionAverage))
	assert.Equal(t, 1.0, b.factorFor(""))
}
