package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
)

const (
	StatisticsWindowMonths = 24
	TopSymptomLimit        = 5
)

type StatsCycleReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.CycleData, error)
}

type StatsPeriodReader interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.PeriodEntry, error)
}

type StatisticsService struct {
	cycles  StatsCycleReader
	periods StatsPeriodReader
}

func NewStatisticsService(cycles StatsCycleReader, periods StatsPeriodReader) *StatisticsService {
	return &StatisticsService{
		cycles:  cycles,
		periods: periods,
	}
}

// GetCycleStatistics summarizes the 24 months ending at now. It returns nil when
// the window holds no cycles.
func (service *StatisticsService) GetCycleStatistics(userID uint, now time.Time) (*models.CycleStatistics, error) {
	from, to := StatisticsWindow(now)

	cycles, err := service.cycles.ListByUserRange(userID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("load cycles: %w", err)
	}
	periods, err := service.periods.ListByUserRange(userID, &from, &to)
	if err != nil {
		return nil, fmt.Errorf("load periods: %w", err)
	}
	return BuildCycleStatistics(cycles, periods, now), nil
}

func StatisticsWindow(now time.Time) (time.Time, time.Time) {
	today := CalendarDay(now)
	return today.AddDate(0, -StatisticsWindowMonths, 0), today.AddDate(0, 0, 1)
}

func BuildCycleStatistics(cycles []models.CycleData, periods []models.PeriodEntry, now time.Time) *models.CycleStatistics {
	if len(cycles) == 0 {
		return nil
	}

	ordered := make([]models.CycleData, len(cycles))
	copy(ordered, cycles)
	sortCyclesByNumber(ordered)

	lengths := completedCycleLengths(ordered)
	periodLengths := knownPeriodLengths(ordered)
	minLength, maxLength := minMaxInts(lengths)
	variation := populationStdDev(lengths)

	regularity := models.RegularityUnknown
	if len(lengths) >= minCompletedCyclesForPrediction {
		regularity = ClassifyRegularity(variation)
	}

	cyclesThisYear := 0
	for _, cycle := range ordered {
		if cycle.StartDate.Year() == now.Year() {
			cyclesThisYear++
		}
	}

	averageSeverity, topSymptoms := summarizeSymptoms(periods, TopSymptomLimit)

	return &models.CycleStatistics{
		TotalCycles:            len(ordered),
		CompletedCycles:        len(lengths),
		AverageCycleLength:     averageInts(lengths),
		MinCycleLength:         minLength,
		MaxCycleLength:         maxLength,
		AveragePeriodLength:    averageInts(periodLengths),
		CycleVariation:         variation,
		Regularity:             regularity,
		CyclesThisYear:         cyclesThisYear,
		AverageSymptomSeverity: averageSeverity,
		TopSymptoms:            topSymptoms,
	}
}

// summarizeSymptoms walks periods in start order. Names with equal counts keep
// the order in which they were first seen.
func summarizeSymptoms(periods []models.PeriodEntry, limit int) (float64, []models.SymptomCount) {
	ordered := make([]models.PeriodEntry, len(periods))
	copy(ordered, periods)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartDate.Before(ordered[j].StartDate)
	})

	counts := make([]models.SymptomCount, 0)
	indexByName := make(map[string]int)
	severitySum := 0
	severityCount := 0

	for _, period := range ordered {
		for _, symptom := range period.Symptoms {
			severitySum += symptom.Severity
			severityCount++

			index, seen := indexByName[symptom.Name]
			if !seen {
				index = len(counts)
				indexByName[symptom.Name] = index
				counts = append(counts, models.SymptomCount{Name: symptom.Name})
			}
			counts[index].Count++
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}

	if severityCount == 0 {
		return 0, counts
	}
	return float64(severitySum) / float64(severityCount), counts
}
