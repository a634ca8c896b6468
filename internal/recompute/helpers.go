package recompute

import (
	"time"

	"github.com/aquarian247/AquaMind-sub005/internal/anchor"
	"github.com/aquarian247/AquaMind-sub005/internal/assimilation"
	"github.com/aquarian247/AquaMind-sub005/internal/bootstrap"
	"github.com/aquarian247/AquaMind-sub005/internal/dateutil"
	"github.com/aquarian247/AquaMind-sub005/internal/growth"
	"github.com/aquarian247/AquaMind-sub005/internal/masterdata"
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"github.com/aquarian247/AquaMind-sub005/internal/resolvers"
	"gorm.io/gorm"
)

// stepState is the (weight, population, biomass, stage) tuple carried
// between iterations of the day loop.
type stepState struct {
	WeightG    float64
	Population int
	BiomassKg  float64
	Stage      growth.Stage
}

// initialState determines the day-before-window state: the most recent
// DailyState strictly before startDate, if any, else bootstrap (C7).
func (r *Recomputer) initialState(assignment models.BatchContainerAssignment, startDate time.Time, stageRepo *growth.StageRepo, bootstrapResolver *bootstrap.Resolver, constraintSetID *uint, tgcModel *models.TGCModel) (stepState, error) {
	var prior models.DailyState
	err := r.DB.Where("assignment_id = ? AND date < ?", assignment.ID, startDate).
		Order("date DESC").Limit(1).Find(&prior).Error
	if err != nil {
		return stepState{}, err
	}
	if prior.ID != 0 {
		stage, err := stageRepo.Get(prior.LifecycleStageID)
		if err != nil {
			return stepState{}, err
		}
		maxG, err := stageRepo.ConstraintMaxWeight(constraintSetID, stage.ID)
		if err != nil {
			return stepState{}, err
		}
		return stepState{
			WeightG:    prior.AvgWeightG,
			Population: prior.Population,
			BiomassKg:  prior.BiomassKg,
			Stage:      growth.ToStage(stage, maxG),
		}, nil
	}

	stage, err := stageRepo.Get(assignment.LifecycleStageID)
	if err != nil {
		return stepState{}, err
	}
	boot, err := bootstrapResolver.Resolve(assignment, stage, constraintSetID, tgcModel)
	if err != nil {
		return stepState{}, err
	}
	maxG, err := stageRepo.ConstraintMaxWeight(constraintSetID, stage.ID)
	if err != nil {
		return stepState{}, err
	}
	return stepState{
		WeightG:    boot.WeightG,
		Population: boot.Population,
		BiomassKg:  boot.BiomassKg,
		Stage:      growth.ToStage(stage, maxG),
	}, nil
}

// computeDay runs C8 for one day, resolving C1-C4 first.
func (r *Recomputer) computeDay(
	tx *gorm.DB,
	assignment models.BatchContainerAssignment,
	date time.Time,
	batch models.Batch,
	prev stepState,
	anchorMap map[string]anchor.Anchor,
	cache *masterdata.Cache,
	stageRepo *growth.StageRepo,
	tempResolver *resolvers.TemperatureResolver,
	mortResolver *resolvers.MortalityResolver,
	feedResolver *resolvers.FeedResolver,
	placeResolver *resolvers.PlacementResolver,
	tgcModel *models.TGCModel,
	mortModel *models.MortalityModel,
	constraintSetID *uint,
	caps growth.Caps,
) (assimilation.Result, error) {
	dayNumber := dateutil.DayNumber(batch.StartDate, date)

	var tgc models.TGCModel
	if tgcModel != nil {
		tgc = *tgcModel
	}

	temp, err := tempResolver.Resolve(assignment.ContainerID, date, tgcModel, dayNumber)
	if err != nil {
		return assimilation.Result{}, err
	}
	mort, err := mortResolver.Resolve(assignment.ID, date, prev.Population, prev.Stage.ID, mortModel)
	if err != nil {
		return assimilation.Result{}, err
	}
	feed, err := feedResolver.Resolve(assignment.ContainerID, date)
	if err != nil {
		return assimilation.Result{}, err
	}
	placements, err := placeResolver.Resolve(assignment.ID, date)
	if err != nil {
		return assimilation.Result{}, err
	}

	var anc *anchor.Anchor
	if a, ok := anchorMap[date.Format("2006-01-02")]; ok {
		anc = &a
	}

	var nextStage *growth.Stage
	currentLifecycleStage, err := stageRepo.Get(prev.Stage.ID)
	if err == nil {
		if ns, nerr := stageRepo.Next(currentLifecycleStage); nerr == nil && ns != nil {
			maxG, _ := stageRepo.ConstraintMaxWeight(constraintSetID, ns.ID)
			s := growth.ToStage(*ns, maxG)
			nextStage = &s
		}
	}

	in := assimilation.Inputs{
		Date:                  date,
		DayNumber:             dayNumber,
		ContainerID:           assignment.ContainerID,
		AssignmentID:          assignment.ID,
		Anchor:                anc,
		Temperature:           temp,
		Mortality:             mort,
		Feed:                  feed,
		Placements:            placements,
		TGCModel:              tgc,
		Caps:                  caps,
		NextStage:             nextStage,
		FreshwaterRefTempC:    r.Cfg.FreshwaterRefTempC,
		FCRBiomassGainFloorKg: r.Cfg.FCRBiomassGainFloorKg,
	}

	prevForStep := assimilation.PreviousState{
		WeightG:    prev.WeightG,
		Population: prev.Population,
		BiomassKg:  prev.BiomassKg,
		Stage:      prev.Stage,
	}

	return assimilation.Step(prevForStep, in), nil
}

// upsert writes one DailyState row keyed by (assignment, date), reports
// whether a new row was created.
func (r *Recomputer) upsert(tx *gorm.DB, assignmentID uint, date time.Time, res assimilation.Result) (bool, error) {
	var existing models.DailyState
	err := tx.Where("assignment_id = ? AND date = ?", assignmentID, date).Find(&existing).Error
	if err != nil {
		return false, err
	}

	row := models.DailyState{
		AssignmentID:     assignmentID,
		Date:             date,
		DayNumber:        res.DayNumber,
		AvgWeightG:       round2(res.AvgWeightG),
		Population:       res.Population,
		BiomassKg:        res.BiomassKg,
		TempC:            roundPtr2(res.TempC),
		MortalityCount:   res.MortalityCount,
		FeedKg:           round2(res.FeedKg),
		ObservedFCR:      roundPtr3(res.ObservedFCR),
		AnchorType:       res.AnchorType,
		LifecycleStageID: res.Stage.ID,
		LifecycleStage:   res.Stage.Name,
		Sources:          res.Sources,
		ConfidenceScores: res.ConfidenceScores,
	}

	if existing.ID == 0 {
		if err := tx.Create(&row).Error; err != nil {
			return false, err
		}
		return true, nil
	}

	row.ID = existing.ID
	row.CreatedAt = existing.CreatedAt
	if err := tx.Save(&row).Error; err != nil {
		return false, err
	}
	return false, nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func roundPtr2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round2(*v)
	return &r
}

func roundPtr3(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := float64(int64(*v*1000+0.5)) / 1000
	return &r
}
