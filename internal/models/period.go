package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FlowIntensity string

const (
	FlowSpotting  FlowIntensity = "spotting"
	FlowLight     FlowIntensity = "light"
	FlowMedium    FlowIntensity = "medium"
	FlowHeavy     FlowIntensity = "heavy"
	FlowVeryHeavy FlowIntensity = "very_heavy"
)

var flowIntensityRanks = map[FlowIntensity]int{
	FlowSpotting:  1,
	FlowLight:     2,
	FlowMedium:    3,
	FlowHeavy:     4,
	FlowVeryHeavy: 5,
}

// Rank orders intensities from spotting (1) to very_heavy (5). Unknown values rank 0.
func (flow FlowIntensity) Rank() int {
	return flowIntensityRanks[flow]
}

func (flow FlowIntensity) Valid() bool {
	return flow.Rank() > 0
}

// PeriodEntry is one bleeding episode. A nil EndDate marks the episode as ongoing.
type PeriodEntry struct {
	ID            string          `gorm:"primaryKey;type:text" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	StartDate     time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate       *time.Time      `gorm:"type:date" json:"end_date,omitempty"`
	FlowIntensity []FlowIntensity `gorm:"serializer:json" json:"flow_intensity"`
	Symptoms      []Symptom       `gorm:"serializer:json" json:"symptoms"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (entry *PeriodEntry) BeforeCreate(*gorm.DB) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return nil
}

func (entry PeriodEntry) IsActive() bool {
	return entry.EndDate == nil
}

func (PeriodEntry) TableName() string {
	return "period_entries"
}
