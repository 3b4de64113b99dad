package api

import (
	"time"

	"github.com/terraincognita07/lunara/internal/models"
)

type dateInput struct {
	Date string `json:"date"`
}

type flowInput struct {
	Intensity models.FlowIntensity `json:"intensity"`
}

type symptomInput struct {
	Category  models.SymptomCategory `json:"category"`
	Name      string                 `json:"name"`
	Severity  int                    `json:"severity"`
	Timestamp *time.Time             `json:"timestamp"`
}

type fertilityInput struct {
	BBT            *float64               `json:"bbt"`
	BBTUnit        models.TemperatureUnit `json:"bbt_unit"`
	CervicalMucus  models.CervicalMucus   `json:"cervical_mucus"`
	OPKResult      models.OPKResult       `json:"opk_result"`
	SexualActivity models.SexualActivity  `json:"sexual_activity"`
}

type periodResponse struct {
	Period models.PeriodEntry `json:"period"`
	Cycle  models.CycleData   `json:"cycle"`
}

type fertilityResponse struct {
	Observation        models.FertilityData `json:"observation"`
	OvulationConfirmed bool                 `json:"ovulation_confirmed"`
}
