package models

import "time"

// Container is a physical holding unit located under a Hall (freshwater) or
// an Area (sea). IsFreshwater is informational/reporting-only: the TGC step
// in package growth decides freshwater substitution from the lifecycle
// stage, per spec.md §4.6 (see SPEC_FULL.md's Open Question decision).
type Container struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name"`
	HallID       *uint  `json:"hallId,omitempty"`
	AreaID       *uint  `json:"areaId,omitempty"`
	IsFreshwater bool   `json:"isFreshwater"`
}

func (Container) TableName() string { return "containers" }

// Reading is a raw environmental measurement (e.g. temperature) taken at a
// container at a point in time. Several readings can land on the same
// calendar date.
type Reading struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ContainerID uint      `json:"containerId" gorm:"not null;index"`
	Parameter   string    `json:"parameter" gorm:"not null;index"` // e.g. "temperature"
	Value       float64   `json:"value"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null;index"`
}

func (Reading) TableName() string { return "readings" }
