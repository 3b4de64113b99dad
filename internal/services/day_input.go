package services

import (
	"strings"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
)

const maxSymptomNameLength = 80

const (
	minBBTFahrenheit = 93.0
	maxBBTFahrenheit = 105.0
	minBBTCelsius    = 34.0
	maxBBTCelsius    = 41.0
)

type SymptomInput struct {
	Category  models.SymptomCategory
	Name      string
	Severity  int
	Timestamp time.Time
}

type FertilityInput struct {
	Date           time.Time
	BBT            *float64
	BBTUnit        models.TemperatureUnit
	CervicalMucus  models.CervicalMucus
	OPKResult      models.OPKResult
	SexualActivity models.SexualActivity
}

// NormalizeSymptomInput fills the category from the built-in catalog when it is
// omitted and stamps the entry with now when no timestamp is given.
func NormalizeSymptomInput(input SymptomInput, now time.Time) (models.Symptom, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Symptom{}, invalidField("name", "is required")
	}
	if len([]rune(name)) > maxSymptomNameLength {
		return models.Symptom{}, invalidField("name", "is too long")
	}

	category := input.Category
	if category == "" {
		category = builtinSymptomCategory(name)
	}
	if !category.Valid() {
		return models.Symptom{}, invalidField("category", "unknown category")
	}

	if input.Severity < models.MinSymptomSeverity || input.Severity > models.MaxSymptomSeverity {
		return models.Symptom{}, invalidField("severity", "must be between 1 and 10")
	}

	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = now
	}
	return models.Symptom{
		Category:  category,
		Name:      name,
		Severity:  input.Severity,
		Timestamp: timestamp.UTC(),
	}, nil
}

func builtinSymptomCategory(name string) models.SymptomCategory {
	for _, builtin := range models.DefaultBuiltinSymptoms() {
		if strings.EqualFold(builtin.Name, name) {
			return builtin.Category
		}
	}
	return models.SymptomOther
}

func NormalizeFertilityInput(input FertilityInput) (FertilityInput, error) {
	if input.Date.IsZero() {
		return input, invalidField("date", "is required")
	}
	input.Date = CalendarDay(input.Date)

	if !IsValidCervicalMucus(input.CervicalMucus) {
		return input, invalidField("cervical_mucus", "unknown value")
	}
	if !IsValidOPKResult(input.OPKResult) {
		return input, invalidField("opk_result", "unknown value")
	}

	if input.BBT == nil {
		input.BBTUnit = ""
	} else {
		switch input.BBTUnit {
		case models.Fahrenheit:
			if *input.BBT < minBBTFahrenheit || *input.BBT > maxBBTFahrenheit {
				return input, invalidField("bbt", "out of range for fahrenheit")
			}
		case models.Celsius:
			if *input.BBT < minBBTCelsius || *input.BBT > maxBBTCelsius {
				return input, invalidField("bbt", "out of range for celsius")
			}
		default:
			return input, invalidField("bbt_unit", "must be F or C")
		}
	}

	if !input.SexualActivity.Occurred {
		input.SexualActivity.Protected = false
	}
	return input, nil
}

func IsValidCervicalMucus(value models.CervicalMucus) bool {
	switch value {
	case models.MucusNone, models.MucusDry, models.MucusSticky, models.MucusCreamy, models.MucusWatery, models.MucusEggWhite:
		return true
	default:
		return false
	}
}

func IsValidOPKResult(value models.OPKResult) bool {
	switch value {
	case models.OPKNotTested, models.OPKNegative, models.OPKPositive, models.OPKPeak:
		return true
	default:
		return false
	}
}
