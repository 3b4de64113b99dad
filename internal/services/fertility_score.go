package services

import (
	"sort"

	"github.com/terraincognita07/lunara/internal/models"
)

const (
	maxFertilityScore     = 100
	positiveOPKBonus      = 20
	BBTRiseThreshold      = 0.2
	BBTBaselineReadings   = 3
	BBTBaselineWindowDays = 7
)

var mucusBaseScores = map[models.CervicalMucus]int{
	models.MucusNone:     10,
	models.MucusDry:      10,
	models.MucusSticky:   30,
	models.MucusCreamy:   60,
	models.MucusWatery:   85,
	models.MucusEggWhite: 95,
}

// ScoreFertility scores one day's observation from its mucus category, adding a
// bonus for a positive ovulation test. The score stays within [0, 100].
func ScoreFertility(observation models.FertilityData) (int, models.FertilityPhase) {
	score, ok := mucusBaseScores[observation.CervicalMucus]
	if !ok {
		score = mucusBaseScores[models.MucusNone]
	}
	if observation.OPKResult == models.OPKPositive {
		score += positiveOPKBonus
	}
	if score > maxFertilityScore {
		score = maxFertilityScore
	}
	if score < 0 {
		score = 0
	}
	return score, FertilityPhaseForScore(score)
}

func FertilityPhaseForScore(score int) models.FertilityPhase {
	switch {
	case score >= 85:
		return models.FertilityPeak
	case score >= 60:
		return models.FertilityHigh
	case score >= 30:
		return models.FertilityModerate
	default:
		return models.FertilityLow
	}
}

// DetectBBTRise compares the current reading against the mean of the three most
// recent earlier readings in the same unit. Fewer than three readings never count
// as a rise.
func DetectBBTRise(current models.FertilityData, history []models.FertilityData) bool {
	if current.BBT == nil {
		return false
	}

	readings := make([]models.FertilityData, 0, len(history))
	for _, entry := range history {
		if entry.BBT == nil || entry.BBTUnit != current.BBTUnit {
			continue
		}
		offset := DaysBetween(entry.Date, current.Date)
		if offset <= 0 || offset > BBTBaselineWindowDays {
			continue
		}
		readings = append(readings, entry)
	}
	if len(readings) < BBTBaselineReadings {
		return false
	}

	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Date.After(readings[j].Date)
	})
	var total float64
	for _, entry := range readings[:BBTBaselineReadings] {
		total += *entry.BBT
	}
	baseline := total / BBTBaselineReadings
	// Readings are logged with two decimals; compare in hundredths to avoid
	// float noise right at the threshold.
	return roundHundredths(*current.BBT-baseline) >= BBTRiseThreshold
}

func roundHundredths(value float64) float64 {
	if value < 0 {
		return -roundHundredths(-value)
	}
	return float64(int64(value*100+0.5)) / 100
}

// HasOvulationSignal reports whether a day's observation confirms ovulation.
func HasOvulationSignal(current models.FertilityData, history []models.FertilityData) bool {
	if current.CervicalMucus == models.MucusEggWhite || current.OPKResult == models.OPKPositive {
		return true
	}
	return DetectBBTRise(current, history)
}
