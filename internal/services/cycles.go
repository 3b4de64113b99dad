package services

import (
	"math"
	"sort"

	"github.com/terraincognita07/lunara/internal/models"
)

const (
	PredictionWindowCycles  = 6
	RegularVariationDays    = 7.0
	StrictlyRegularVariance = 3.0
	RegularConfidence       = 0.85
	IrregularConfidence     = 0.65
	FertileDaysBefore       = 5
	FertileDaysAfter        = 1
)

func completedCycleLengths(cycles []models.CycleData) []int {
	lengths := make([]int, 0, len(cycles))
	for _, cycle := range cycles {
		if cycle.IsCompleted() {
			lengths = append(lengths, *cycle.CycleLength)
		}
	}
	return lengths
}

func knownPeriodLengths(cycles []models.CycleData) []int {
	lengths := make([]int, 0, len(cycles))
	for _, cycle := range cycles {
		if cycle.PeriodLength != nil && *cycle.PeriodLength > 0 {
			lengths = append(lengths, *cycle.PeriodLength)
		}
	}
	return lengths
}

func tailCycles(values []models.CycleData, n int) []models.CycleData {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func sortCyclesByNumber(cycles []models.CycleData) {
	sort.SliceStable(cycles, func(i, j int) bool {
		return cycles[i].CycleNumber < cycles[j].CycleNumber
	})
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func roundedAverage(values []int) int {
	return int(math.Round(averageInts(values)))
}

// populationStdDev divides by n, not n-1.
func populationStdDev(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := averageInts(values)
	var sumSquares float64
	for _, value := range values {
		delta := float64(value) - mean
		sumSquares += delta * delta
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}

func minMaxInts(values []int) (int, int) {
	if len(values) == 0 {
		return 0, 0
	}
	low, high := values[0], values[0]
	for _, value := range values[1:] {
		if value < low {
			low = value
		}
		if value > high {
			high = value
		}
	}
	return low, high
}

// IsRegularVariation is the two-level rule used by prediction.
func IsRegularVariation(variation float64) bool {
	return variation <= RegularVariationDays
}

// ClassifyRegularity is the three-level rule used by statistics. It agrees with
// IsRegularVariation on the 7-day boundary and splits the regular side at 3 days.
func ClassifyRegularity(variation float64) models.Regularity {
	switch {
	case variation <= StrictlyRegularVariance:
		return models.RegularityRegular
	case variation <= RegularVariationDays:
		return models.RegularityIrregular
	default:
		return models.RegularityVeryIrregular
	}
}

func predictionConfidence(regular bool) float64 {
	if regular {
		return RegularConfidence
	}
	return IrregularConfidence
}

func averageOrDefault(values []int, fallback int) int {
	if len(values) == 0 {
		return fallback
	}
	return roundedAverage(values)
}
