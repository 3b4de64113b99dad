package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/lunara/internal/models"
)

func newTestFertilityService(t *testing.T) (*FertilityService, *CycleService, *memoryFertility) {
	t.Helper()
	cycles, _, _ := newTestCycleService()
	observations := &memoryFertility{}
	return NewFertilityService(observations, cycles, nil), cycles, observations
}

func TestLogObservationScoresAndOverwritesDay(t *testing.T) {
	service, _, observations := newTestFertilityService(t)
	day := mustDay(t, "2024-03-10")

	entry, confirmed, err := service.LogObservation(1, FertilityInput{Date: day, CervicalMucus: models.MucusCreamy})
	if err != nil {
		t.Fatalf("log observation: %v", err)
	}
	if confirmed {
		t.Fatalf("expected no confirmation without a cycle")
	}
	if entry.FertilityScore != 60 || entry.FertilityPhase != models.FertilityHigh {
		t.Fatalf("unexpected score %d/%s", entry.FertilityScore, entry.FertilityPhase)
	}

	entry, _, err = service.LogObservation(1, FertilityInput{
		Date:           day,
		CervicalMucus:  models.MucusSticky,
		SexualActivity: models.SexualActivity{Occurred: false, Protected: true},
	})
	if err != nil {
		t.Fatalf("overwrite observation: %v", err)
	}
	if len(observations.entries) != 1 {
		t.Fatalf("expected one stored observation, got %d", len(observations.entries))
	}
	if entry.FertilityScore != 30 || observations.entries[0].CervicalMucus != models.MucusSticky {
		t.Fatalf("expected overwritten observation, got %#v", observations.entries[0])
	}
	if entry.SexualActivity.Protected {
		t.Fatalf("expected protected to be cleared when no activity occurred")
	}

	scored, err := service.ScoreDay(1, day)
	if err != nil {
		t.Fatalf("score day: %v", err)
	}
	if scored.FertilityScore != 30 {
		t.Fatalf("expected stored day score 30, got %d", scored.FertilityScore)
	}
	if _, err := service.ScoreDay(1, mustDay(t, "2024-03-11")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a day without observation, got %v", err)
	}
}

func TestLogObservationValidation(t *testing.T) {
	service, _, _ := newTestFertilityService(t)
	day := mustDay(t, "2024-03-10")

	tests := []struct {
		name  string
		input FertilityInput
		field string
	}{
		{name: "missing date", input: FertilityInput{}, field: "date"},
		{name: "unknown mucus", input: FertilityInput{Date: day, CervicalMucus: "slippery"}, field: "cervical_mucus"},
		{name: "unknown opk", input: FertilityInput{Date: day, OPKResult: "maybe"}, field: "opk_result"},
		{name: "missing unit", input: FertilityInput{Date: day, BBT: floatPtr(97.5)}, field: "bbt_unit"},
		{name: "fahrenheit out of range", input: FertilityInput{Date: day, BBT: floatPtr(36.5), BBTUnit: models.Fahrenheit}, field: "bbt"},
		{name: "celsius out of range", input: FertilityInput{Date: day, BBT: floatPtr(97.5), BBTUnit: models.Celsius}, field: "bbt"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, _, err := service.LogObservation(1, testCase.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if field, _ := ValidationField(err); field != testCase.field {
				t.Fatalf("expected field %q, got %q", testCase.field, field)
			}
		})
	}
}

func TestLogObservationRejectsUnitSwitch(t *testing.T) {
	service, _, _ := newTestFertilityService(t)
	if _, _, err := service.LogObservation(1, FertilityInput{Date: mustDay(t, "2024-03-10"), BBT: floatPtr(97.6), BBTUnit: models.Fahrenheit}); err != nil {
		t.Fatalf("log fahrenheit: %v", err)
	}

	_, _, err := service.LogObservation(1, FertilityInput{Date: mustDay(t, "2024-03-11"), BBT: floatPtr(36.6), BBTUnit: models.Celsius})
	if field, _ := ValidationField(err); field != "bbt_unit" {
		t.Fatalf("expected bbt_unit validation error, got %v", err)
	}

	if _, _, err := service.LogObservation(1, FertilityInput{Date: mustDay(t, "2024-03-10"), BBT: floatPtr(36.4), BBTUnit: models.Celsius}); err != nil {
		t.Fatalf("expected correcting the same day to be allowed, got %v", err)
	}
}

func TestLogObservationRejectsUnitSwitchWhenRewritingLatestDay(t *testing.T) {
	service, _, repo := newTestFertilityService(t)
	for _, raw := range []string{"2024-03-01", "2024-03-02"} {
		if _, _, err := service.LogObservation(1, FertilityInput{Date: mustDay(t, raw), BBT: floatPtr(97.5), BBTUnit: models.Fahrenheit}); err != nil {
			t.Fatalf("log %s: %v", raw, err)
		}
	}

	_, _, err := service.LogObservation(1, FertilityInput{Date: mustDay(t, "2024-03-02"), BBT: floatPtr(36.5), BBTUnit: models.Celsius})
	if field, _ := ValidationField(err); field != "bbt_unit" {
		t.Fatalf("expected bbt_unit validation error, got %v", err)
	}

	stored, err := repo.ListByUserRange(1, nil, nil)
	if err != nil {
		t.Fatalf("list observations: %v", err)
	}
	for _, entry := range stored {
		if entry.BBTUnit != models.Fahrenheit {
			t.Fatalf("expected history to stay in fahrenheit, got %s on %s", entry.BBTUnit, entry.Date.Format(DateLayout))
		}
	}

	if _, _, err := service.LogObservation(1, FertilityInput{Date: mustDay(t, "2024-03-02"), BBT: floatPtr(97.8), BBTUnit: models.Fahrenheit}); err != nil {
		t.Fatalf("expected same-unit correction to be allowed, got %v", err)
	}
}

func TestLogObservationConfirmsOvulation(t *testing.T) {
	tests := []struct {
		name  string
		input func(t *testing.T) FertilityInput
	}{
		{name: "egg white mucus", input: func(t *testing.T) FertilityInput {
			return FertilityInput{Date: mustDay(t, "2024-03-14"), CervicalMucus: models.MucusEggWhite}
		}},
		{name: "positive opk", input: func(t *testing.T) FertilityInput {
			return FertilityInput{Date: mustDay(t, "2024-03-14"), OPKResult: models.OPKPositive}
		}},
		{name: "temperature rise", input: func(t *testing.T) FertilityInput {
			return FertilityInput{Date: mustDay(t, "2024-03-14"), BBT: floatPtr(36.8), BBTUnit: models.Celsius}
		}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			service, cycles, _ := newTestFertilityService(t)
			if _, _, err := cycles.StartPeriod(1, mustDay(t, "2024-03-01")); err != nil {
				t.Fatalf("start: %v", err)
			}
			for _, raw := range []string{"2024-03-11", "2024-03-12", "2024-03-13"} {
				if _, _, err := service.LogObservation(1, FertilityInput{Date: mustDay(t, raw), BBT: floatPtr(36.5), BBTUnit: models.Celsius}); err != nil {
					t.Fatalf("baseline %s: %v", raw, err)
				}
			}

			_, confirmed, err := service.LogObservation(1, testCase.input(t))
			if err != nil {
				t.Fatalf("log signal: %v", err)
			}
			if !confirmed {
				t.Fatalf("expected the signal to confirm ovulation")
			}

			_, confirmed, err = service.LogObservation(1, FertilityInput{Date: mustDay(t, "2024-03-16"), CervicalMucus: models.MucusEggWhite})
			if err != nil {
				t.Fatalf("log later signal: %v", err)
			}
			if confirmed {
				t.Fatalf("expected a later signal in the same cycle to be ignored")
			}

			cycle, _, _ := cycles.cycles.FindLatest(1)
			if !cycle.Ovulation.IsConfirmed() {
				t.Fatalf("expected confirmed ovulation, got %q", cycle.Ovulation.Status)
			}
			assertDay(t, "ovulation", *cycle.Ovulation.Date, "2024-03-14")
		})
	}
}

func TestListObservations(t *testing.T) {
	service, _, _ := newTestFertilityService(t)
	for _, raw := range []string{"2024-03-09", "2024-03-10", "2024-03-12"} {
		if _, _, err := service.LogObservation(1, FertilityInput{Date: mustDay(t, raw)}); err != nil {
			t.Fatalf("log %s: %v", raw, err)
		}
	}

	from := mustDay(t, "2024-03-10")
	to := mustDay(t, "2024-03-12")
	entries, err := service.ListObservations(1, &from, &to)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected inclusive range to return 2 entries, got %d", len(entries))
	}
}
