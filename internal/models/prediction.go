package models

import "time"

type Regularity string

const (
	RegularityRegular       Regularity = "regular"
	RegularityIrregular     Regularity = "irregular"
	RegularityVeryIrregular Regularity = "very_irregular"
	RegularityUnknown       Regularity = "unknown"
)

// CyclePrediction is recomputed on demand and never stored.
type CyclePrediction struct {
	LastPeriodStart     time.Time `json:"last_period_start"`
	NextPeriodStart     time.Time `json:"next_period_start"`
	NextPeriodEnd       time.Time `json:"next_period_end"`
	NextOvulation       time.Time `json:"next_ovulation"`
	NextFertileStart    time.Time `json:"next_fertile_start"`
	NextFertileEnd      time.Time `json:"next_fertile_end"`
	Confidence          float64   `json:"confidence"`
	IsRegular           bool      `json:"is_regular"`
	AverageCycleLength  int       `json:"average_cycle_length"`
	AveragePeriodLength int       `json:"average_period_length"`
	CycleVariation      float64   `json:"cycle_variation"`
	SampleSize          int       `json:"sample_size"`
}

type SymptomCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CycleStatistics struct {
	TotalCycles            int            `json:"total_cycles"`
	CompletedCycles        int            `json:"completed_cycles"`
	AverageCycleLength     float64        `json:"average_cycle_length"`
	MinCycleLength         int            `json:"min_cycle_length"`
	MaxCycleLength         int            `json:"max_cycle_length"`
	AveragePeriodLength    float64        `json:"average_period_length"`
	CycleVariation         float64        `json:"cycle_variation"`
	Regularity             Regularity     `json:"regularity"`
	CyclesThisYear         int            `json:"cycles_this_year"`
	AverageSymptomSeverity float64        `json:"average_symptom_severity"`
	TopSymptoms            []SymptomCount `json:"top_symptoms"`
}
