package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
	LutealPhaseDays     = 14
)

type OvulationStatus string

const (
	OvulationUnknown   OvulationStatus = "none"
	OvulationInferred  OvulationStatus = "inferred"
	OvulationConfirmed OvulationStatus = "confirmed"
)

// OvulationEstimate is either absent, inferred from the cycle-length formula, or
// confirmed by an observation. A confirmed estimate never moves again.
type OvulationEstimate struct {
	Status OvulationStatus `gorm:"not null;default:none" json:"status"`
	Date   *time.Time      `gorm:"type:date" json:"date,omitempty"`
}

func InferredOvulation(day time.Time) OvulationEstimate {
	return OvulationEstimate{Status: OvulationInferred, Date: &day}
}

func ConfirmedOvulation(day time.Time) OvulationEstimate {
	return OvulationEstimate{Status: OvulationConfirmed, Date: &day}
}

func (estimate OvulationEstimate) IsConfirmed() bool {
	return estimate.Status == OvulationConfirmed
}

func (estimate OvulationEstimate) Known() bool {
	return estimate.Date != nil && (estimate.Status == OvulationInferred || estimate.Status == OvulationConfirmed)
}

// Infer replaces an absent or inferred date. It reports false when the estimate is
// already confirmed.
func (estimate OvulationEstimate) Infer(day time.Time) (OvulationEstimate, bool) {
	if estimate.IsConfirmed() {
		return estimate, false
	}
	return InferredOvulation(day), true
}

// Confirm applies the first confirmation only.
func (estimate OvulationEstimate) Confirm(day time.Time) (OvulationEstimate, bool) {
	if estimate.IsConfirmed() {
		return estimate, false
	}
	return ConfirmedOvulation(day), true
}

type CycleData struct {
	ID                 string            `gorm:"primaryKey;type:text" json:"id"`
	UserID             uint              `gorm:"not null;uniqueIndex:uidx_cycles_user_number" json:"user_id"`
	CycleNumber        int               `gorm:"not null;uniqueIndex:uidx_cycles_user_number" json:"cycle_number"`
	StartDate          time.Time         `gorm:"type:date;not null" json:"start_date"`
	EndDate            *time.Time        `gorm:"type:date" json:"end_date,omitempty"`
	CycleLength        *int              `json:"cycle_length,omitempty"`
	PeriodLength       *int              `json:"period_length,omitempty"`
	Ovulation          OvulationEstimate `gorm:"embedded;embeddedPrefix:ovulation_" json:"ovulation"`
	FertileWindowStart *time.Time        `gorm:"type:date" json:"fertile_window_start,omitempty"`
	FertileWindowEnd   *time.Time        `gorm:"type:date" json:"fertile_window_end,omitempty"`
	IsRegular          bool              `gorm:"not null" json:"is_regular"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func (cycle *CycleData) BeforeCreate(*gorm.DB) error {
	if cycle.ID == "" {
		cycle.ID = uuid.NewString()
	}
	if cycle.Ovulation.Status == "" {
		cycle.Ovulation.Status = OvulationUnknown
	}
	return nil
}

func (cycle CycleData) IsOpen() bool {
	return cycle.EndDate == nil
}

func (cycle CycleData) IsCompleted() bool {
	return cycle.CycleLength != nil && *cycle.CycleLength > 0
}

func (CycleData) TableName() string {
	return "cycles"
}
