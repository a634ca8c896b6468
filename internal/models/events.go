package models

import "time"

// GrowthSample is a measured weighing of an assignment on a date —
// priority-1 anchor source.
type GrowthSample struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	AssignmentID uint      `json:"assignmentId" gorm:"not null;index"`
	Date         time.Time `json:"date" gorm:"not null;index"`
	AvgWeightG   float64   `json:"avgWeightG"`
	SampleSize   int       `json:"sampleSize"`
}

func (GrowthSample) TableName() string { return "growth_samples" }

// Selection-bias methods used to pick fish for a transfer, and the
// multiplicative adjustment applied to the measured weight because of the
// systematic skew they introduce (spec.md §4.5, §6 defaults).
const (
	SelectionLargest  = "LARGEST"
	SelectionSmallest = "SMALLEST"
	SelectionAverage  = "AVERAGE"
)

// TransferAction moves fish from a source assignment to a destination
// assignment. A completed transfer with a measured weight is a priority-2
// anchor for the *source* assignment (spec.md §9 Open Question: source
// only, confirmed as current behavior).
type TransferAction struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	SourceAssignmentID    uint      `json:"sourceAssignmentId" gorm:"not null;index"`
	DestAssignmentID      *uint     `json:"destAssignmentId,omitempty" gorm:"index"`
	ActualExecutionDate   time.Time `json:"actualExecutionDate" gorm:"not null;index"`
	Status                string    `json:"status" gorm:"not null"` // e.g. "completed", "pending"
	SelectionMethod       string    `json:"selectionMethod"`
	MeasuredAvgWeightG    *float64  `json:"measuredAvgWeightG,omitempty"`
	TransferredCount      int       `json:"transferredCount"`
}

func (TransferAction) TableName() string { return "transfer_actions" }

const transferStatusCompleted = "completed"

// IsCompleted reports whether the transfer has executed.
func (t TransferAction) IsCompleted() bool {
	return t.Status == transferStatusCompleted
}

// MortalityEvent is a recorded mortality count for an assignment on a date
// — source=actual for C2 when present.
type MortalityEvent struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	AssignmentID uint      `json:"assignmentId" gorm:"not null;index"`
	Date         time.Time `json:"date" gorm:"not null;index"`
	Count        int       `json:"count"`
}

func (MortalityEvent) TableName() string { return "mortality_events" }

// FeedingEvent is a recorded feeding at a container on a date.
type FeedingEvent struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ContainerID uint      `json:"containerId" gorm:"not null;index"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	AmountKg    float64   `json:"amountKg"`
}

func (FeedingEvent) TableName() string { return "feeding_events" }

// SamplingEvent carries individual weight observations gathered during a
// Treatment's weighing.
type SamplingEvent struct {
	ID           uint                      `json:"id" gorm:"primaryKey"`
	Observations []IndividualWeightSample  `json:"observations,omitempty" gorm:"foreignKey:SamplingEventID"`
}

func (SamplingEvent) TableName() string { return "sampling_events" }

// IndividualWeightSample is one observed fish weight within a SamplingEvent.
type IndividualWeightSample struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	SamplingEventID uint    `json:"samplingEventId" gorm:"not null;index"`
	WeightG         float64 `json:"weightG"`
}

func (IndividualWeightSample) TableName() string { return "individual_weight_samples" }

// Treatment records a vaccination/other treatment on an assignment; when
// IncludesWeighing is true and its sampling event has individual weight
// observations, it is a priority-3 anchor (vaccination).
type Treatment struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	AssignmentID     uint       `json:"assignmentId" gorm:"not null;index"`
	Date             time.Time  `json:"date" gorm:"not null;index"`
	IncludesWeighing bool       `json:"includesWeighing"`
	SamplingEventID  *uint      `json:"samplingEventId,omitempty"`
	SamplingEvent    *SamplingEvent `json:"samplingEvent,omitempty" gorm:"foreignKey:SamplingEventID"`
}

func (Treatment) TableName() string { return "treatments" }
