package services

import (
	"fmt"
	"time"
)

type ReminderKind string

const (
	ReminderPeriodDue     ReminderKind = "period_due"
	ReminderPeriodLate    ReminderKind = "period_late"
	ReminderFertileWindow ReminderKind = "fertile_window"
	ReminderOvulationDay  ReminderKind = "ovulation_day"
)

const DefaultReminderLeadDays = 2

// Reminder is an in-app notice derived from an outlook. Delivery is up to the caller.
type Reminder struct {
	Kind    ReminderKind `json:"kind"`
	Date    time.Time    `json:"date"`
	Message string       `json:"message"`
}

func BuildReminders(outlook CycleOutlook, leadDays int) []Reminder {
	if leadDays < 0 {
		leadDays = DefaultReminderLeadDays
	}
	reminders := make([]Reminder, 0, 2)

	if outlook.DaysUntilPeriod != nil && outlook.NextPeriodStart != nil && !outlook.PeriodActive {
		daysUntil := *outlook.DaysUntilPeriod
		switch {
		case daysUntil < 0:
			reminders = append(reminders, Reminder{
				Kind:    ReminderPeriodLate,
				Date:    *outlook.NextPeriodStart,
				Message: fmt.Sprintf("Period is %s late", pluralDays(-daysUntil)),
			})
		case daysUntil == 0:
			reminders = append(reminders, Reminder{
				Kind:    ReminderPeriodDue,
				Date:    *outlook.NextPeriodStart,
				Message: "Period expected today",
			})
		case daysUntil <= leadDays:
			reminders = append(reminders, Reminder{
				Kind:    ReminderPeriodDue,
				Date:    *outlook.NextPeriodStart,
				Message: fmt.Sprintf("Period expected in %s", pluralDays(daysUntil)),
			})
		}
	}

	switch outlook.Phase {
	case PhaseOvulation:
		reminders = append(reminders, Reminder{
			Kind:    ReminderOvulationDay,
			Date:    outlook.Today,
			Message: "Ovulation expected today",
		})
	case PhaseFertile:
		reminders = append(reminders, Reminder{
			Kind:    ReminderFertileWindow,
			Date:    *outlook.FertileEnd,
			Message: fmt.Sprintf("Fertile window until %s", outlook.FertileEnd.Format("2006-01-02")),
		})
	}
	return reminders
}

func pluralDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
