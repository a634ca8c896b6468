package growth

import (
	"github.com/aquarian247/AquaMind-sub005/internal/models"
	"gorm.io/gorm"
)

// StageRepo resolves lifecycle stages and the next stage by order within a
// species (spec.md §4.6, SPEC_FULL.md supplemented feature: ordering is
// scoped per species).
type StageRepo struct {
	DB *gorm.DB
}

func NewStageRepo(db *gorm.DB) *StageRepo {
	return &StageRepo{DB: db}
}

// ToStage converts a models.LifecycleStage plus an optional constraint-set
// max weight into the growth.Stage view.
func ToStage(s models.LifecycleStage, constraintMaxG *float64) Stage {
	return Stage{
		ID:                   s.ID,
		Name:                 s.Name,
		Order:                s.Order,
		ExpectedWeightMinG:   s.ExpectedWeightMinG,
		ExpectedWeightMaxG:   s.ExpectedWeightMaxG,
		ConstraintMaxWeightG: constraintMaxG,
	}
}

// Next returns the next stage by order for the same species, if any.
func (r *StageRepo) Next(current models.LifecycleStage) (*models.LifecycleStage, error) {
	var next models.LifecycleStage
	err := r.DB.Where("species_id = ? AND \"order\" > ?", current.SpeciesID, current.Order).
		Order("\"order\" ASC").Limit(1).Find(&next).Error
	if err != nil {
		return nil, err
	}
	if next.ID == 0 {
		return nil, nil
	}
	return &next, nil
}

// Get loads a lifecycle stage by id.
func (r *StageRepo) Get(id uint) (models.LifecycleStage, error) {
	var s models.LifecycleStage
	err := r.DB.First(&s, id).Error
	return s, err
}

// ConstraintMaxWeight looks up the stage's max_weight_g within a constraint
// set, if one is pinned.
func (r *StageRepo) ConstraintMaxWeight(constraintSetID *uint, stageID uint) (*float64, error) {
	if constraintSetID == nil {
		return nil, nil
	}
	var sc models.StageConstraint
	err := r.DB.Where("constraint_set_id = ? AND stage_id = ?", *constraintSetID, stageID).
		First(&sc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if sc.MaxWeightG <= 0 {
		return nil, nil
	}
	return &sc.MaxWeightG, nil
}

// ConstraintMinWeight looks up the stage's min_weight_g within a constraint
// set. Bootstrap's weight ladder does the same lookup through its own
// helper, not through this method.
func (r *StageRepo) ConstraintMinWeight(constraintSetID *uint, stageID uint) (*float64, error) {
	if constraintSetID == nil {
		return nil, nil
	}
	var sc models.StageConstraint
	err := r.DB.Where("constraint_set_id = ? AND stage_id = ?", *constraintSetID, stageID).
		First(&sc).Error
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
