package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemperatureUnit string

const (
	Fahrenheit TemperatureUnit = "F"
	Celsius    TemperatureUnit = "C"
)

type CervicalMucus string

const (
	MucusNone     CervicalMucus = ""
	MucusDry      CervicalMucus = "dry"
	MucusSticky   CervicalMucus = "sticky"
	MucusCreamy   CervicalMucus = "creamy"
	MucusWatery   CervicalMucus = "watery"
	MucusEggWhite CervicalMucus = "egg_white"
)

type OPKResult string

const (
	OPKNotTested OPKResult = ""
	OPKNegative  OPKResult = "negative"
	OPKPositive  OPKResult = "positive"
	OPKPeak      OPKResult = "peak"
)

type FertilityPhase string

const (
	FertilityLow      FertilityPhase = "low"
	FertilityModerate FertilityPhase = "moderate"
	FertilityHigh     FertilityPhase = "high"
	FertilityPeak     FertilityPhase = "peak"
)

type SexualActivity struct {
	Occurred  bool `gorm:"not null;default:false" json:"occurred"`
	Protected bool `gorm:"not null;default:false" json:"protected"`
}

// FertilityData is one day's observation. Re-logging a day overwrites the row.
type FertilityData struct {
	ID             string          `gorm:"primaryKey;type:text" json:"id"`
	UserID         uint            `gorm:"not null;uniqueIndex:uidx_fertility_user_date" json:"user_id"`
	Date           time.Time       `gorm:"type:date;not null;uniqueIndex:uidx_fertility_user_date" json:"date"`
	BBT            *float64        `json:"bbt,omitempty"`
	BBTUnit        TemperatureUnit `gorm:"not null" json:"bbt_unit,omitempty"`
	CervicalMucus  CervicalMucus   `gorm:"not null" json:"cervical_mucus,omitempty"`
	OPKResult      OPKResult       `gorm:"column:opk_result;not null" json:"opk_result,omitempty"`
	SexualActivity SexualActivity  `gorm:"embedded;embeddedPrefix:sex_" json:"sexual_activity"`
	FertilityScore int             `gorm:"not null;default:0" json:"fertility_score"`
	FertilityPhase FertilityPhase  `gorm:"not null;default:low" json:"fertility_phase"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (entry *FertilityData) BeforeCreate(*gorm.DB) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return nil
}

func (FertilityData) TableName() string {
	return "fertility_observations"
}
