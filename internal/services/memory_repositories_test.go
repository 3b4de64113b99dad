package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
)

var errStubStorage = errors.New("storage unavailable")

type memoryPeriods struct {
	mu      sync.Mutex
	entries []models.PeriodEntry
	nextID  int
	saveErr error
}

func (repo *memoryPeriods) FindActive(userID uint) (models.PeriodEntry, bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, entry := range repo.entries {
		if entry.UserID == userID && entry.EndDate == nil {
			return entry, true, nil
		}
	}
	return models.PeriodEntry{}, false, nil
}

func (repo *memoryPeriods) FindLatest(userID uint) (models.PeriodEntry, bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var latest models.PeriodEntry
	found := false
	for _, entry := range repo.entries {
		if entry.UserID == userID && (!found || entry.StartDate.After(latest.StartDate)) {
			latest = entry
			found = true
		}
	}
	return latest, found, nil
}

func (repo *memoryPeriods) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.PeriodEntry, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	result := make([]models.PeriodEntry, 0)
	for _, entry := range repo.entries {
		if entry.UserID != userID || !inHalfOpenRange(entry.StartDate, fromStart, toEnd) {
			continue
		}
		result = append(result, entry)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result, nil
}

func (repo *memoryPeriods) Create(entry *models.PeriodEntry) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, existing := range repo.entries {
		if existing.UserID == entry.UserID && existing.EndDate == nil && entry.EndDate == nil {
			return errors.New("unique constraint: active period")
		}
	}
	repo.nextID++
	entry.ID = fmt.Sprintf("period-%d", repo.nextID)
	repo.entries = append(repo.entries, *entry)
	return nil
}

func (repo *memoryPeriods) Save(entry *models.PeriodEntry) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.saveErr != nil {
		return repo.saveErr
	}
	for index := range repo.entries {
		if repo.entries[index].ID == entry.ID {
			repo.entries[index] = *entry
			return nil
		}
	}
	return fmt.Errorf("period %s not found", entry.ID)
}

func (repo *memoryPeriods) activeCount(userID uint) int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	count := 0
	for _, entry := range repo.entries {
		if entry.UserID == userID && entry.EndDate == nil {
			count++
		}
	}
	return count
}

type memoryCycles struct {
	mu        sync.Mutex
	entries   []models.CycleData
	nextID    int
	listErr   error
	createErr error
	saveErr   error
}

func (repo *memoryCycles) FindLatest(userID uint) (models.CycleData, bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var latest models.CycleData
	found := false
	for _, cycle := range repo.entries {
		if cycle.UserID == userID && (!found || cycle.CycleNumber > latest.CycleNumber) {
			latest = cycle
			found = true
		}
	}
	return latest, found, nil
}

func (repo *memoryCycles) ListRecentCompleted(userID uint, limit int) ([]models.CycleData, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.listErr != nil {
		return nil, repo.listErr
	}
	result := make([]models.CycleData, 0)
	for _, cycle := range repo.entries {
		if cycle.UserID == userID && cycle.CycleLength != nil {
			result = append(result, cycle)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CycleNumber > result[j].CycleNumber
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (repo *memoryCycles) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.CycleData, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.listErr != nil {
		return nil, repo.listErr
	}
	result := make([]models.CycleData, 0)
	for _, cycle := range repo.entries {
		if cycle.UserID == userID && inHalfOpenRange(cycle.StartDate, fromStart, toEnd) {
			result = append(result, cycle)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartDate.Before(result[j].StartDate)
	})
	return result, nil
}

func (repo *memoryCycles) Create(cycle *models.CycleData) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.createErr != nil {
		return repo.createErr
	}
	for _, existing := range repo.entries {
		if existing.UserID == cycle.UserID && existing.CycleNumber == cycle.CycleNumber {
			return errors.New("unique constraint: cycle number")
		}
	}
	repo.nextID++
	cycle.ID = fmt.Sprintf("cycle-%d", repo.nextID)
	repo.entries = append(repo.entries, *cycle)
	return nil
}

func (repo *memoryCycles) Save(cycle *models.CycleData) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.saveErr != nil {
		return repo.saveErr
	}
	for index := range repo.entries {
		if repo.entries[index].ID == cycle.ID {
			repo.entries[index] = *cycle
			return nil
		}
	}
	return fmt.Errorf("cycle %s not found", cycle.ID)
}

// memoryLedger snapshots both ledgers and restores them when fn fails.
type memoryLedger struct {
	periods *memoryPeriods
	cycles  *memoryCycles
}

func newMemoryLedger(periods *memoryPeriods, cycles *memoryCycles) *memoryLedger {
	return &memoryLedger{periods: periods, cycles: cycles}
}

func (ledger *memoryLedger) WithinTx(fn func(periods PeriodRepository, cycles CycleRepository) error) error {
	ledger.periods.mu.Lock()
	periodSnapshot := append([]models.PeriodEntry(nil), ledger.periods.entries...)
	ledger.periods.mu.Unlock()
	ledger.cycles.mu.Lock()
	cycleSnapshot := append([]models.CycleData(nil), ledger.cycles.entries...)
	ledger.cycles.mu.Unlock()

	if err := fn(ledger.periods, ledger.cycles); err != nil {
		ledger.periods.mu.Lock()
		ledger.periods.entries = periodSnapshot
		ledger.periods.mu.Unlock()
		ledger.cycles.mu.Lock()
		ledger.cycles.entries = cycleSnapshot
		ledger.cycles.mu.Unlock()
		return err
	}
	return nil
}

type memoryFertility struct {
	mu      sync.Mutex
	entries []models.FertilityData
	nextID  int
}

func (repo *memoryFertility) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.FertilityData, bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, entry := range repo.entries {
		if entry.UserID == userID && inHalfOpenRange(entry.Date, &dayStart, &dayEnd) {
			return entry, true, nil
		}
	}
	return models.FertilityData{}, false, nil
}

func (repo *memoryFertility) FindLatestWithBBTOutsideDay(userID uint, dayStart time.Time, dayEnd time.Time) (models.FertilityData, bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	var latest models.FertilityData
	found := false
	for _, entry := range repo.entries {
		if entry.UserID != userID || entry.BBT == nil || inHalfOpenRange(entry.Date, &dayStart, &dayEnd) {
			continue
		}
		if !found || entry.Date.After(latest.Date) {
			latest = entry
			found = true
		}
	}
	return latest, found, nil
}

func (repo *memoryFertility) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.FertilityData, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	result := make([]models.FertilityData, 0)
	for _, entry := range repo.entries {
		if entry.UserID == userID && inHalfOpenRange(entry.Date, fromStart, toEnd) {
			result = append(result, entry)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (repo *memoryFertility) Upsert(entry *models.FertilityData) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for index := range repo.entries {
		existing := repo.entries[index]
		if existing.UserID == entry.UserID && sameCalendarDay(existing.Date, entry.Date) {
			entry.ID = existing.ID
			repo.entries[index] = *entry
			return nil
		}
	}
	repo.nextID++
	entry.ID = fmt.Sprintf("fertility-%d", repo.nextID)
	repo.entries = append(repo.entries, *entry)
	return nil
}

func inHalfOpenRange(value time.Time, fromStart *time.Time, toEnd *time.Time) bool {
	if fromStart != nil && value.Before(*fromStart) {
		return false
	}
	if toEnd != nil && !value.Before(*toEnd) {
		return false
	}
	return true
}

func mustDay(t testing.TB, raw string) time.Time {
	t.Helper()
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return parsed
}

func completedCycle(number int, start string, length int, periodLength int) models.CycleData {
	startDate, _ := time.Parse(DateLayout, start)
	endDate := startDate.AddDate(0, 0, length)
	cycle := models.CycleData{
		UserID:      1,
		CycleNumber: number,
		StartDate:   startDate,
		EndDate:     &endDate,
		CycleLength: intPtr(length),
		Ovulation:   models.OvulationEstimate{Status: models.OvulationUnknown},
	}
	if periodLength > 0 {
		cycle.PeriodLength = intPtr(periodLength)
	}
	return cycle
}

func openCycle(number int, start string) models.CycleData {
	startDate, _ := time.Parse(DateLayout, start)
	return models.CycleData{
		UserID:      1,
		CycleNumber: number,
		StartDate:   startDate,
		Ovulation:   models.OvulationEstimate{Status: models.OvulationUnknown},
	}
}

func timeParseDay(raw string) (time.Time, error) {
	return time.Parse(DateLayout, raw)
}
