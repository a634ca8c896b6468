package models

// TGCModel has a base TGC value, temperature and weight exponents (present
// for round-trip compatibility with imported models but unused by the
// canonical cube-root path in package growth), optional per-stage
// overrides, and a TemperatureProfile used as the last-resort temperature
// source.
type TGCModel struct {
	ID                  uint                  `json:"id" gorm:"primaryKey"`
	Name                string                `json:"name"`
	BaseTGC             float64               `json:"baseTgc"`
	TempExponent        float64               `json:"tempExponent"`
	WeightExponent      float64               `json:"weightExponent"`
	InitialWeightG      *float64              `json:"initialWeightG,omitempty"`
	StageOverrides      []TGCStageOverride    `json:"stageOverrides,omitempty" gorm:"foreignKey:TGCModelID"`
	TemperatureProfile  []TemperatureProfilePoint `json:"temperatureProfile,omitempty" gorm:"foreignKey:TGCModelID"`
}

func (TGCModel) TableName() string { return "tgc_models" }

// TGCStageOverride overrides the base TGC for one lifecycle stage.
type TGCStageOverride struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	TGCModelID uint    `json:"tgcModelId" gorm:"not null;index"`
	StageID    uint    `json:"stageId" gorm:"not null;index"`
	TGC        float64 `json:"tgc"`
}

func (TGCStageOverride) TableName() string { return "tgc_stage_overrides" }

// TemperatureProfilePoint is one (day_number -> °C) sample of a TGC model's
// fallback temperature profile.
type TemperatureProfilePoint struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	TGCModelID uint    `json:"tgcModelId" gorm:"not null;index"`
	DayNumber  int     `json:"dayNumber" gorm:"not null;index"`
	TempC      float64 `json:"tempC"`
}

func (TemperatureProfilePoint) TableName() string { return "tgc_temperature_profile_points" }

// MortalityModel holds a base daily (or weekly) rate with optional
// per-stage overrides.
type MortalityModel struct {
	ID             uint                     `json:"id" gorm:"primaryKey"`
	Name           string                   `json:"name"`
	BaseRate       float64                  `json:"baseRate"`
	RatePeriod     string                   `json:"ratePeriod" gorm:"default:daily"` // "daily" | "weekly"
	StageOverrides []MortalityStageOverride `json:"stageOverrides,omitempty" gorm:"foreignKey:MortalityModelID"`
}

func (MortalityModel) TableName() string { return "mortality_models" }

// DailyRate converts the model's base rate (or a stage override) to a daily
// fraction, handling the weekly-stored case.
func (m MortalityModel) DailyRate(stageID uint) float64 {
	rate := m.BaseRate
	period := m.RatePeriod
	for _, o := range m.StageOverrides {
		if o.StageID == stageID {
			rate = o.Rate
			if o.RatePeriod != "" {
				period = o.RatePeriod
			}
			break
		}
	}
	if period == "weekly" {
		return rate / 7.0
	}
	return rate
}

// MortalityStageOverride overrides the base mortality rate for one stage.
type MortalityStageOverride struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	MortalityModelID uint    `json:"mortalityModelId" gorm:"not null;index"`
	StageID          uint    `json:"stageId" gorm:"not null;index"`
	Rate             float64 `json:"rate"`
	RatePeriod       string  `json:"ratePeriod,omitempty"`
}

func (MortalityStageOverride) TableName() string { return "mortality_stage_overrides" }
