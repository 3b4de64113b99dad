package services

import (
	"fmt"

	"github.com/terraincognita07/lunara/internal/models"
)

const minCompletedCyclesForPrediction = 2

type PredictionCycleReader interface {
	FindLatest(userID uint) (models.CycleData, bool, error)
	ListRecentCompleted(userID uint, limit int) ([]models.CycleData, error)
}

type ActivePeriodReader interface {
	FindActive(userID uint) (models.PeriodEntry, bool, error)
}

type PredictionService struct {
	cycles  PredictionCycleReader
	periods ActivePeriodReader
}

func NewPredictionService(cycles PredictionCycleReader, periods ActivePeriodReader) *PredictionService {
	return &PredictionService{
		cycles:  cycles,
		periods: periods,
	}
}

// PredictNextCycle returns nil when the user has fewer than two completed cycles.
func (service *PredictionService) PredictNextCycle(userID uint) (*models.CyclePrediction, error) {
	completed, err := service.cycles.ListRecentCompleted(userID, PredictionWindowCycles)
	if err != nil {
		return nil, fmt.Errorf("load completed cycles: %w", err)
	}
	if len(completed) < minCompletedCyclesForPrediction {
		return nil, nil
	}

	latest, found, err := service.cycles.FindLatest(userID)
	if err != nil {
		return nil, fmt.Errorf("load latest cycle: %w", err)
	}
	cycles := completed
	if found && !latest.IsCompleted() {
		cycles = append(cycles, latest)
	}
	return PredictNextCycle(cycles), nil
}

// PredictNextCycle projects the next cycle from the six most recent completed
// cycles, anchored on the latest cycle start in the input. The result depends only
// on the input.
func PredictNextCycle(cycles []models.CycleData) *models.CyclePrediction {
	ordered := make([]models.CycleData, len(cycles))
	copy(ordered, cycles)
	sortCyclesByNumber(ordered)

	completed := make([]models.CycleData, 0, len(ordered))
	for _, cycle := range ordered {
		if cycle.IsCompleted() {
			completed = append(completed, cycle)
		}
	}
	completed = tailCycles(completed, PredictionWindowCycles)
	if len(completed) < minCompletedCyclesForPrediction {
		return nil
	}

	lastStart := ordered[0].StartDate
	for _, cycle := range ordered[1:] {
		if cycle.StartDate.After(lastStart) {
			lastStart = cycle.StartDate
		}
	}

	lengths := completedCycleLengths(completed)
	averageCycle := roundedAverage(lengths)
	averagePeriod := averageOrDefault(knownPeriodLengths(completed), models.DefaultPeriodLength)
	variation := populationStdDev(lengths)
	regular := IsRegularVariation(variation)

	nextStart := addDays(lastStart, averageCycle)
	ovulation := addDays(nextStart, -models.LutealPhaseDays)

	return &models.CyclePrediction{
		LastPeriodStart:     CalendarDay(lastStart),
		NextPeriodStart:     nextStart,
		NextPeriodEnd:       addDays(nextStart, averagePeriod-1),
		NextOvulation:       ovulation,
		NextFertileStart:    addDays(ovulation, -FertileDaysBefore),
		NextFertileEnd:      addDays(ovulation, FertileDaysAfter),
		Confidence:          predictionConfidence(regular),
		IsRegular:           regular,
		AverageCycleLength:  averageCycle,
		AveragePeriodLength: averagePeriod,
		CycleVariation:      variation,
		SampleSize:          len(lengths),
	}
}
