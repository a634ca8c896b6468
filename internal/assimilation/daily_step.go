// Package assimilation implements the daily step (C8): the pure function
// that composes the leaf resolvers (C1-C4), the anchor map and the growth
// model (C6) into one day's new state plus its provenance.
package assimilation

import (
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/anchor"
	"github.com/aquarian247/AquaMind-sub005/internal/growth"
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/aquarian247/AquaMind-sub005/internal/resolvers"
)

// DefaultFCRBiomassGainFloorKg is the 1 kg biomass-gain floor that
// suppresses FCR noise at tiny (e.g. alevin-scale) biomasses, per spec.md
// §4.8 step 6 and §9 ("keep it configurable").
const DefaultFCRBiomassGainFloorKg = 1.0

// MaxObservedFCR is the cap applied to an observed FCR value (spec.md §4.8).
const MaxObservedFCR = 10.0

// PreviousState carries yesterday's computed (weight, population, biomass,
// stage) into today's step.
type PreviousState struct {
	WeightG    float64
	Population int
	BiomassKg  float64
	Stage      growth.Stage
}

// Inputs bundles everything the daily step needs for one (assignment, date)
// beyond the previous state: resolved leaf values and growth-model config.
type Inputs struct {
	Date                  time.Time
	DayNumber             int
	ContainerID           uint
	AssignmentID          uint
	Anchor                *anchor.Anchor
	Temperature           resolvers.TemperatureResult
	Mortality             resolvers.MortalityResult
	Feed                  resolvers.FeedResult
	Placements            int
	TGCModel              models.TGCModel
	Caps                  growth.Caps
	NextStage             *growth.Stage
	FreshwaterRefTempC    float64
	FCRBiomassGainFloorKg float64
}

// Result is one day's computed DailyState payload plus the PreviousState to
// carry into the next iteration.
type Result struct {
	DayNumber        int
	AvgWeightG       float64
	Population       int
	BiomassKg        float64
	TempC            *float64
	MortalityCount   int
	FeedKg           float64
	ObservedFCR      *float64
	AnchorType       *string
	Stage            growth.Stage
	Sources          models.ProvenanceSources
	ConfidenceScores models.ConfidenceScores
}

// Step runs one iteration of the day loop, per spec.md §4.8.
func Step(prev PreviousState, in Inputs) Result {
	var sources models.ProvenanceSources
	var confidences models.ConfidenceScores

	// 1. Anchor lookup.
	var measuredWeight *float64
	var anchorType *string
	if in.Anchor != nil {
		w := in.Anchor.WeightG
		measuredWeight = &w
		sources.Weight = models.SourceWeightMeasured
		confidences.Weight = models.Confidence(in.Anchor.Confidence)
		t := in.Anchor.Type
		anchorType = &t
	}

	// 3. New population.
	newPopulation := prev.Population + in.Placements - in.Mortality.Count
	if newPopulation < 0 {
		newPopulation = 0
	}

	// 4. New weight.
	var newWeight float64
	if measuredWeight != nil {
		newWeight = *measuredWeight
	} else if in.Temperature.TempC != nil {
		step := growth.Step(prev.WeightG, prev.Stage, in.NextStage, *in.Temperature.TempC, in.TGCModel, in.Caps, in.FreshwaterRefTempC)
		newWeight = step.NewWeightG
		sources.Weight = models.SourceWeightTGCComputed
		conf := in.Temperature.Confidence
		if conf > 0.8 {
			conf = 0.8
		}
		confidences.Weight = models.Confidence(conf)
	} else {
		newWeight = prev.WeightG
		sources.Weight = models.SourceWeightUnchanged
		confidences.Weight = models.Confidence(0.3)
	}

	// 7. Stage transition via C6, on whichever branch produced new_weight.
	newStage, _ := growth.Transition(newWeight, prev.Stage, in.NextStage)

	if in.Temperature.Source != "" {
		sources.Temp = in.Temperature.Source
		confidences.Temp = models.Confidence(in.Temperature.Confidence)
	}
	sources.Mortality = in.Mortality.Source
	confidences.Mortality = models.Confidence(in.Mortality.Confidence)
	sources.Feed = in.Feed.Source
	confidences.Feed = models.Confidence(in.Feed.Confidence)

	// 5. New biomass.
	newBiomass := round2(float64(newPopulation) * newWeight / 1000.0)

	// 6. Observed FCR.
	gain := newBiomass - prev.BiomassKg
	floor := in.FCRBiomassGainFloorKg
	if floor <= 0 {
		floor = DefaultFCRBiomassGainFloorKg
	}
	var observedFCR *float64
	if in.Feed.Kg > 0 && gain > floor {
		fcr := in.Feed.Kg / gain
		if fcr > MaxObservedFCR {
			fcr = MaxObservedFCR
		}
		observedFCR = &fcr
		sources.FCR = models.SourceFCRObserved
		confidences.FCR = models.Confidence(1.0)
	} else if gain > floor {
		sources.FCR = models.SourceFCRModel
		confidences.FCR = models.Confidence(0.4)
	}

	return Result{
		DayNumber:        in.DayNumber,
		AvgWeightG:       newWeight,
		Population:       newPopulation,
		BiomassKg:        newBiomass,
		TempC:            in.Temperature.TempC,
		MortalityCount:   in.Mortality.Count,
		FeedKg:           in.Feed.Kg,
		ObservedFCR:      observedFCR,
		AnchorType:       anchorType,
		Stage:            newStage,
		Sources:          sources,
		ConfidenceScores: confidences,
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
