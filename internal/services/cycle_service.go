package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
	"go.uber.org/zap"
)

type PeriodRepository interface {
	FindActive(userID uint) (models.PeriodEntry, bool, error)
	FindLatest(userID uint) (models.PeriodEntry, bool, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.PeriodEntry, error)
	Create(entry *models.PeriodEntry) error
	Save(entry *models.PeriodEntry) error
}

type CycleRepository interface {
	FindLatest(userID uint) (models.CycleData, bool, error)
	ListRecentCompleted(userID uint, limit int) ([]models.CycleData, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.CycleData, error)
	Create(cycle *models.CycleData) error
	Save(cycle *models.CycleData) error
}

// LedgerTransactor runs fn against period and cycle repositories bound to one
// transaction. Returning an error from fn rolls every write back.
type LedgerTransactor interface {
	WithinTx(fn func(periods PeriodRepository, cycles CycleRepository) error) error
}

// CycleService owns the period and cycle ledgers. Every read-modify-write runs
// under a per-user lock, and multi-row writes go through the ledger transaction.
type CycleService struct {
	periods PeriodRepository
	cycles  CycleRepository
	ledger  LedgerTransactor
	locks   *userLocks
	logger  *zap.Logger
}

func NewCycleService(periods PeriodRepository, cycles CycleRepository, ledger LedgerTransactor, logger *zap.Logger) *CycleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CycleService{
		periods: periods,
		cycles:  cycles,
		ledger:  ledger,
		locks:   newUserLocks(),
		logger:  logger,
	}
}

func (service *CycleService) StartPeriod(userID uint, date time.Time) (models.PeriodEntry, models.CycleData, error) {
	day := CalendarDay(date)

	unlock := service.locks.Lock(userID)
	defer unlock()

	_, hasActive, err := service.periods.FindActive(userID)
	if err != nil {
		return models.PeriodEntry{}, models.CycleData{}, fmt.Errorf("load active period: %w", err)
	}
	if hasActive {
		return models.PeriodEntry{}, models.CycleData{}, ErrActivePeriodExists
	}

	latestPeriod, hasPeriod, err := service.periods.FindLatest(userID)
	if err != nil {
		return models.PeriodEntry{}, models.CycleData{}, fmt.Errorf("load latest period: %w", err)
	}
	if hasPeriod && latestPeriod.EndDate != nil && DaysBetween(*latestPeriod.EndDate, day) <= 0 {
		return models.PeriodEntry{}, models.CycleData{}, invalidField("date", "must be after the previous period ended")
	}

	previous, hasPrevious, err := service.cycles.FindLatest(userID)
	if err != nil {
		return models.PeriodEntry{}, models.CycleData{}, fmt.Errorf("load latest cycle: %w", err)
	}
	if hasPrevious && DaysBetween(previous.StartDate, day) <= 0 {
		return models.PeriodEntry{}, models.CycleData{}, invalidField("date", "must be after the current cycle start")
	}

	entry := models.PeriodEntry{
		UserID:        userID,
		StartDate:     day,
		FlowIntensity: []models.FlowIntensity{},
		Symptoms:      []models.Symptom{},
	}
	cycle := models.CycleData{
		UserID:      userID,
		CycleNumber: 1,
		StartDate:   day,
		Ovulation:   models.OvulationEstimate{Status: models.OvulationUnknown},
		IsRegular:   true,
	}
	if hasPrevious {
		cycle.CycleNumber = previous.CycleNumber + 1
	}

	err = service.ledger.WithinTx(func(periods PeriodRepository, cycles CycleRepository) error {
		if err := periods.Create(&entry); err != nil {
			return fmt.Errorf("create period: %w", err)
		}
		if hasPrevious && previous.IsOpen() {
			previous.EndDate = timePtr(day)
			previous.CycleLength = intPtr(DaysBetween(previous.StartDate, day))
			if err := cycles.Save(&previous); err != nil {
				return fmt.Errorf("close cycle %d: %w", previous.CycleNumber, err)
			}
		}
		if err := cycles.Create(&cycle); err != nil {
			return fmt.Errorf("create cycle: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.PeriodEntry{}, models.CycleData{}, err
	}

	service.logger.Info("period started",
		zap.Uint("user_id", userID),
		zap.String("date", day.Format("2006-01-02")),
		zap.Int("cycle_number", cycle.CycleNumber),
	)
	return entry, cycle, nil
}

func (service *CycleService) EndPeriod(userID uint, date time.Time) (models.PeriodEntry, models.CycleData, error) {
	day := CalendarDay(date)

	unlock := service.locks.Lock(userID)
	defer unlock()

	entry, hasActive, err := service.periods.FindActive(userID)
	if err != nil {
		return models.PeriodEntry{}, models.CycleData{}, fmt.Errorf("load active period: %w", err)
	}
	if !hasActive {
		return models.PeriodEntry{}, models.CycleData{}, ErrNoActivePeriod
	}
	if DaysBetween(entry.StartDate, day) < 0 {
		return models.PeriodEntry{}, models.CycleData{}, invalidField("date", "must not precede the period start")
	}

	cycle, hasCycle, err := service.cycles.FindLatest(userID)
	if err != nil {
		return models.PeriodEntry{}, models.CycleData{}, fmt.Errorf("load latest cycle: %w", err)
	}
	if !hasCycle || !sameCalendarDay(cycle.StartDate, entry.StartDate) {
		return models.PeriodEntry{}, models.CycleData{}, ErrCycleLedgerDrift
	}

	history, err := service.cycles.ListRecentCompleted(userID, PredictionWindowCycles)
	if err != nil {
		return models.PeriodEntry{}, models.CycleData{}, fmt.Errorf("load cycle history: %w", err)
	}
	averageCycle := averageOrDefault(completedCycleLengths(history), models.DefaultCycleLength)

	entry.EndDate = timePtr(day)
	cycle.PeriodLength = intPtr(DaysBetween(entry.StartDate, day) + 1)
	if ovulation, changed := cycle.Ovulation.Infer(addDays(entry.StartDate, averageCycle-models.LutealPhaseDays)); changed {
		cycle.Ovulation = ovulation
		applyFertileWindow(&cycle)
	}

	err = service.ledger.WithinTx(func(periods PeriodRepository, cycles CycleRepository) error {
		if err := periods.Save(&entry); err != nil {
			return fmt.Errorf("close period: %w", err)
		}
		if err := cycles.Save(&cycle); err != nil {
			return fmt.Errorf("update cycle %d: %w", cycle.CycleNumber, err)
		}
		return nil
	})
	if err != nil {
		return models.PeriodEntry{}, models.CycleData{}, err
	}

	service.logger.Info("period ended",
		zap.Uint("user_id", userID),
		zap.String("date", day.Format("2006-01-02")),
		zap.Int("period_length", *cycle.PeriodLength),
		zap.String("ovulation_status", string(cycle.Ovulation.Status)),
	)
	return entry, cycle, nil
}

// ConfirmOvulation records an observed ovulation on the open cycle. It reports
// false when there is no open cycle covering date or the cycle is already confirmed.
func (service *CycleService) ConfirmOvulation(userID uint, date time.Time) (models.CycleData, bool, error) {
	day := CalendarDay(date)

	unlock := service.locks.Lock(userID)
	defer unlock()

	cycle, found, err := service.cycles.FindLatest(userID)
	if err != nil {
		return models.CycleData{}, false, fmt.Errorf("load latest cycle: %w", err)
	}
	if !found || !cycle.IsOpen() || DaysBetween(cycle.StartDate, day) < 0 {
		return cycle, false, nil
	}

	ovulation, changed := cycle.Ovulation.Confirm(day)
	if !changed {
		return cycle, false, nil
	}
	cycle.Ovulation = ovulation
	applyFertileWindow(&cycle)
	if err := service.cycles.Save(&cycle); err != nil {
		return models.CycleData{}, false, fmt.Errorf("confirm ovulation on cycle %d: %w", cycle.CycleNumber, err)
	}

	service.logger.Info("ovulation confirmed",
		zap.Uint("user_id", userID),
		zap.Int("cycle_number", cycle.CycleNumber),
		zap.String("date", day.Format("2006-01-02")),
	)
	return cycle, true, nil
}

func (service *CycleService) LogFlow(userID uint, flow models.FlowIntensity) (models.PeriodEntry, error) {
	if !flow.Valid() {
		return models.PeriodEntry{}, invalidField("flow_intensity", "unknown intensity")
	}
	return service.updateActive(userID, func(entry *models.PeriodEntry) {
		entry.FlowIntensity = append(entry.FlowIntensity, flow)
	})
}

func (service *CycleService) LogSymptom(userID uint, input SymptomInput, now time.Time) (models.PeriodEntry, error) {
	symptom, err := NormalizeSymptomInput(input, now)
	if err != nil {
		return models.PeriodEntry{}, err
	}
	return service.updateActive(userID, func(entry *models.PeriodEntry) {
		entry.Symptoms = append(entry.Symptoms, symptom)
	})
}

func (service *CycleService) updateActive(userID uint, mutate func(entry *models.PeriodEntry)) (models.PeriodEntry, error) {
	unlock := service.locks.Lock(userID)
	defer unlock()

	entry, found, err := service.periods.FindActive(userID)
	if err != nil {
		return models.PeriodEntry{}, fmt.Errorf("load active period: %w", err)
	}
	if !found {
		return models.PeriodEntry{}, fmt.Errorf("%w: no active period", ErrNotFound)
	}

	mutate(&entry)
	if err := service.periods.Save(&entry); err != nil {
		return models.PeriodEntry{}, fmt.Errorf("update period: %w", err)
	}
	return entry, nil
}

func (service *CycleService) ActivePeriod(userID uint) (models.PeriodEntry, bool, error) {
	entry, found, err := service.periods.FindActive(userID)
	if err != nil {
		return models.PeriodEntry{}, false, fmt.Errorf("load active period: %w", err)
	}
	return entry, found, nil
}

func (service *CycleService) ListPeriods(userID uint, from *time.Time, to *time.Time) ([]models.PeriodEntry, error) {
	fromStart, toEnd, err := dayRangeBounds(from, to)
	if err != nil {
		return nil, err
	}
	entries, err := service.periods.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return entries, nil
}

func (service *CycleService) ListCycles(userID uint, from *time.Time, to *time.Time) ([]models.CycleData, error) {
	fromStart, toEnd, err := dayRangeBounds(from, to)
	if err != nil {
		return nil, err
	}
	cycles, err := service.cycles.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	sortCyclesByNumber(cycles)
	return cycles, nil
}

func applyFertileWindow(cycle *models.CycleData) {
	if cycle.Ovulation.Date == nil {
		cycle.FertileWindowStart = nil
		cycle.FertileWindowEnd = nil
		return
	}
	ovulation := *cycle.Ovulation.Date
	cycle.FertileWindowStart = timePtr(addDays(ovulation, -FertileDaysBefore))
	cycle.FertileWindowEnd = timePtr(addDays(ovulation, FertileDaysAfter))
}

// dayRangeBounds turns an inclusive [from, to] day range into the half-open
// bounds the repositories expect.
func dayRangeBounds(from *time.Time, to *time.Time) (*time.Time, *time.Time, error) {
	var fromStart, toEnd *time.Time
	if from != nil {
		fromStart = timePtr(CalendarDay(*from))
	}
	if to != nil {
		toEnd = timePtr(addDays(*to, 1))
	}
	if fromStart != nil && toEnd != nil && !fromStart.Before(*toEnd) {
		return nil, nil, invalidField("to", "must not precede from")
	}
	return fromStart, toEnd, nil
}
