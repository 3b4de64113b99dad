package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
)

type CyclePhase string

const (
	PhaseMenstrual  CyclePhase = "menstrual"
	PhaseFollicular CyclePhase = "follicular"
	PhaseFertile    CyclePhase = "fertile"
	PhaseOvulation  CyclePhase = "ovulation"
	PhaseLuteal     CyclePhase = "luteal"
	PhaseUnknown    CyclePhase = "unknown"
)

type CycleOutlook struct {
	Today           time.Time               `json:"today"`
	CycleNumber     int                     `json:"cycle_number,omitempty"`
	CycleDay        int                     `json:"cycle_day,omitempty"`
	Phase           CyclePhase              `json:"phase"`
	PeriodActive    bool                    `json:"period_active"`
	Ovulation       *time.Time              `json:"ovulation,omitempty"`
	OvulationStatus models.OvulationStatus  `json:"ovulation_status"`
	FertileStart    *time.Time              `json:"fertile_start,omitempty"`
	FertileEnd      *time.Time              `json:"fertile_end,omitempty"`
	NextPeriodStart *time.Time              `json:"next_period_start,omitempty"`
	DaysUntilPeriod *int                    `json:"days_until_period,omitempty"`
	Prediction      *models.CyclePrediction `json:"prediction"`
	Reminders       []Reminder              `json:"reminders"`
}

// Outlook describes where today falls in the user's current cycle. today comes
// from the caller; nothing here reads the clock.
func (service *PredictionService) Outlook(userID uint, today time.Time, leadDays int) (CycleOutlook, error) {
	day := CalendarDay(today)
	outlook := CycleOutlook{
		Today:           day,
		Phase:           PhaseUnknown,
		OvulationStatus: models.OvulationUnknown,
		Reminders:       []Reminder{},
	}

	current, found, err := service.cycles.FindLatest(userID)
	if err != nil {
		return CycleOutlook{}, fmt.Errorf("load latest cycle: %w", err)
	}
	if !found {
		return outlook, nil
	}

	active := false
	if service.periods != nil {
		_, active, err = service.periods.FindActive(userID)
		if err != nil {
			return CycleOutlook{}, fmt.Errorf("load active period: %w", err)
		}
	}

	prediction, err := service.PredictNextCycle(userID)
	if err != nil {
		return CycleOutlook{}, err
	}

	outlook = BuildCycleOutlook(current, active, prediction, day)
	outlook.Reminders = BuildReminders(outlook, leadDays)
	return outlook, nil
}

func BuildCycleOutlook(current models.CycleData, periodActive bool, prediction *models.CyclePrediction, today time.Time) CycleOutlook {
	day := CalendarDay(today)
	outlook := CycleOutlook{
		Today:           day,
		CycleNumber:     current.CycleNumber,
		Phase:           PhaseUnknown,
		PeriodActive:    periodActive,
		OvulationStatus: current.Ovulation.Status,
		Prediction:      prediction,
		Reminders:       []Reminder{},
	}
	if outlook.OvulationStatus == "" {
		outlook.OvulationStatus = models.OvulationUnknown
	}
	if current.StartDate.IsZero() || DaysBetween(current.StartDate, day) < 0 {
		return outlook
	}
	outlook.CycleDay = DaysBetween(current.StartDate, day) + 1

	if prediction != nil {
		outlook.NextPeriodStart = timePtr(prediction.NextPeriodStart)
		outlook.DaysUntilPeriod = intPtr(DaysBetween(day, prediction.NextPeriodStart))
	}

	switch {
	case current.Ovulation.Known():
		outlook.Ovulation = timePtr(CalendarDay(*current.Ovulation.Date))
		outlook.FertileStart = current.FertileWindowStart
		outlook.FertileEnd = current.FertileWindowEnd
		if outlook.FertileStart == nil || outlook.FertileEnd == nil {
			outlook.FertileStart = timePtr(addDays(*outlook.Ovulation, -FertileDaysBefore))
			outlook.FertileEnd = timePtr(addDays(*outlook.Ovulation, FertileDaysAfter))
		}
	case prediction != nil && current.IsOpen():
		outlook.Ovulation = timePtr(prediction.NextOvulation)
		outlook.FertileStart = timePtr(prediction.NextFertileStart)
		outlook.FertileEnd = timePtr(prediction.NextFertileEnd)
	}

	outlook.Phase = detectCyclePhase(current, periodActive, prediction, outlook, day)
	return outlook
}

func detectCyclePhase(current models.CycleData, periodActive bool, prediction *models.CyclePrediction, outlook CycleOutlook, today time.Time) CyclePhase {
	if periodActive {
		return PhaseMenstrual
	}

	periodLength := models.DefaultPeriodLength
	switch {
	case current.PeriodLength != nil:
		periodLength = *current.PeriodLength
	case prediction != nil:
		periodLength = prediction.AveragePeriodLength
	}
	periodEnd := addDays(current.StartDate, periodLength-1)
	if current.PeriodLength == nil && betweenCalendarDaysInclusive(today, current.StartDate, periodEnd) {
		return PhaseMenstrual
	}

	if outlook.Ovulation == nil {
		return PhaseUnknown
	}
	ovulation := *outlook.Ovulation
	switch {
	case sameCalendarDay(today, ovulation):
		return PhaseOvulation
	case outlook.FertileStart != nil && outlook.FertileEnd != nil && betweenCalendarDaysInclusive(today, *outlook.FertileStart, *outlook.FertileEnd):
		return PhaseFertile
	case DaysBetween(today, ovulation) > 0:
		return PhaseFollicular
	default:
		return PhaseLuteal
	}
}
