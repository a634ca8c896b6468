package models

import "time"

// Batch is a cohort of fish with a start date, species, a current lifecycle
// stage, and optionally a pinned ProjectionRun supplying the TGC/mortality/
// constraints used by the core.
type Batch struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	SpeciesID       uint      `json:"speciesId" gorm:"not null"`
	StartDate       time.Time `json:"startDate" gorm:"not null"`
	CurrentStageID  uint      `json:"currentStageId"`
	ProjectionRunID *uint     `json:"projectionRunId,omitempty"`
}

func (Batch) TableName() string { return "batches" }

// ProjectionRun is a read-only collaborator: a previously computed forward
// scenario whose TGC model, mortality model and constraint set the core
// consumes for initial weight hints, growth parameters and stage caps. The
// core never writes to a ProjectionRun (Non-goal: no forward projection).
type ProjectionRun struct {
	ID              uint  `json:"id" gorm:"primaryKey"`
	TGCModelID      *uint `json:"tgcModelId,omitempty"`
	MortalityModelID *uint `json:"mortalityModelId,omitempty"`
	ConstraintSetID *uint  `json:"constraintSetId,omitempty"`
}

func (ProjectionRun) TableName() string { return "projection_runs" }
