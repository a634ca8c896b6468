package models

import "time"

// BatchContainerAssignment is the (batch, container, lifecycle_stage)
// residency, with assignment_date (inclusive) and an optional
// departure_date (exclusive — the day ownership transfers to the next
// assignment).
type BatchContainerAssignment struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	BatchID          uint       `json:"batchId" gorm:"not null;index"`
	ContainerID      uint       `json:"containerId" gorm:"not null;index"`
	LifecycleStageID uint       `json:"lifecycleStageId" gorm:"not null"`
	AssignmentDate   time.Time  `json:"assignmentDate" gorm:"not null"`
	DepartureDate    *time.Time `json:"departureDate,omitempty"`
	PopulationCount  int        `json:"populationCount"`
	AvgWeightG       *float64   `json:"avgWeightG,omitempty"`
	// LastWeighingDate mirrors the most recent GrowthSample.Date recorded
	// against this assignment, maintained by the growth-sample-created
	// trigger (spec.md §4.11). Purely informational: the anchor detector
	// re-reads GrowthSample rows directly and never consults this field.
	LastWeighingDate *time.Time `json:"lastWeighingDate,omitempty"`
}

func (BatchContainerAssignment) TableName() string { return "batch_container_assignments" }

// IsActive reports whether the assignment has not yet departed as of "now".
func (a BatchContainerAssignment) IsActive(now time.Time) bool {
	if a.DepartureDate == nil {
		return true
	}
	return now.Before(*a.DepartureDate)
}

// Overlaps reports whether [AssignmentDate, DepartureDate) intersects
// [start, end].
func (a BatchContainerAssignment) Overlaps(start, end time.Time) bool {
	if end.Before(a.AssignmentDate) {
		return false
	}
	if a.DepartureDate != nil && !a.DepartureDate.After(start) {
		return false
	}
	return true
}
