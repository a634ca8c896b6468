// Package bootstrap implements C7: supplying day-0 weight/population/
// biomass/stage for an assignment when no earlier DailyState exists.
package bootstrap

import (
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/dateutil"
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/aquarian247/AquaMind-sub005/internal/recompute/errs"
	"gorm.io/gorm"
)

// State is the (weight, population, biomass, stage) tuple C7 produces.
type State struct {
	WeightG    float64
	Population int
	BiomassKg  float64
	StageID    uint
}

const ultimateFallbackWeightG = 1.0

// Resolver implements C7's bootstrap ladder.
type Resolver struct {
	DB *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{DB: db}
}

// Resolve runs the weight priority ladder from spec.md §4.7, then derives
// population/biomass/stage.
func (r *Resolver) Resolve(assignment models.BatchContainerAssignment, stage models.LifecycleStage, constraintSetID *uint, tgcModel *models.TGCModel) (State, error) {
	destTransfer, err := r.destinationTransfer(assignment.ID)
	if err != nil {
		return State{}, err
	}

	ladder := []func() (*float64, error){
		func() (*float64, error) { return r.weightFromTransfer(destTransfer) },
		func() (*float64, error) { return assignment.AvgWeightG, nil },
		func() (*float64, error) { return r.constraintMinWeight(constraintSetID, stage.ID) },
		func() (*float64, error) { return modelInitialWeight(tgcModel), nil },
		func() (*float64, error) { return stageExpectedMin(stage), nil },
	}

	// Rule 1 overrides rule 2 only when this assignment is a transfer
	// destination (spec.md §4.7: "transfers override the assignment's own
	// avg_weight_g"); otherwise rule 2 applies before rule 3+.
	if destTransfer == nil {
		ladder = []func() (*float64, error){
			func() (*float64, error) { return assignment.AvgWeightG, nil },
			func() (*float64, error) { return r.constraintMinWeight(constraintSetID, stage.ID) },
			func() (*float64, error) { return modelInitialWeight(tgcModel), nil },
			func() (*float64, error) { return stageExpectedMin(stage), nil },
		}
	}

	weight := ultimateFallbackWeightG
	found := false
	for _, step := range ladder {
		v, err := step()
		if err != nil {
			return State{}, err
		}
		if v != nil {
			weight = *v
			found = true
			break
		}
	}
	if !found {
		if tgcModel == nil && constraintSetID == nil {
			return State{}, &errs.MissingMasterDataError{Assignment: assignment.ID, Reason: "no TGC model and no constraint set reachable for bootstrap weight ladder"}
		}
		weight = ultimateFallbackWeightG
	}

	population := assignment.PopulationCount
	if destTransfer != nil && dateutil.SameDay(destTransfer.ActualExecutionDate, assignment.AssignmentDate) {
		population = 0
	}

	biomass := round2(float64(population) * weight / 1000.0)

	return State{WeightG: weight, Population: population, BiomassKg: biomass, StageID: stage.ID}, nil
}

func (r *Resolver) destinationTransfer(assignmentID uint) (*models.TransferAction, error) {
	var t models.TransferAction
	err := r.DB.Where("dest_assignment_id = ? AND status = ?", assignmentID, "completed").
		Order("actual_execution_date ASC").Limit(1).Find(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, nil
	}
	return &t, nil
}

// weightFromTransfer implements rule 1's (a)/(b)/(c) sub-ladder: measured
// weight of the transfer, else most recent DailyState of the source
// assignment, else the source assignment's current avg_weight_g.
func (r *Resolver) weightFromTransfer(t *models.TransferAction) (*float64, error) {
	if t == nil {
		return nil, nil
	}
	if t.MeasuredAvgWeightG != nil {
		return t.MeasuredAvgWeightG, nil
	}

	var latest models.DailyState
	err := r.DB.Where("assignment_id = ?", t.SourceAssignmentID).
		Order("date DESC").Limit(1).Find(&latest).Error
	if err != nil {
		return nil, err
	}
	if latest.ID != 0 {
		w := latest.AvgWeightG
		return &w, nil
	}

	var src models.BatchContainerAssignment
	if err := r.DB.First(&src, t.SourceAssignmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return src.AvgWeightG, nil
}

func (r *Resolver) constraintMinWeight(constraintSetID *uint, stageID uint) (*float64, error) {
	if constraintSetID == nil {
		return nil, nil
	}
	var sc models.StageConstraint
	err := r.DB.Where("constraint_set_id = ? AND stage_id = ?", *constraintSetID, stageID).First(&sc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if sc.MinWeightG <= 0 {
		return nil, nil
	}
	return &sc.MinWeightG, nil
}

func modelInitialWeight(model *models.TGCModel) *float64 {
	if model == nil {
		return nil
	}
	return model.InitialWeightG
}

func stageExpectedMin(stage models.LifecycleStage) *float64 {
	if stage.ExpectedWeightMinG <= 0 {
		return nil
	}
	v := stage.ExpectedWeightMinG
	return &v
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
