package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
	"go.uber.org/zap"
)

type FertilityRepository interface {
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.FertilityData, bool, error)
	FindLatestWithBBTOutsideDay(userID uint, dayStart time.Time, dayEnd time.Time) (models.FertilityData, bool, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.FertilityData, error)
	Upsert(entry *models.FertilityData) error
}

type OvulationConfirmer interface {
	ConfirmOvulation(userID uint, date time.Time) (models.CycleData, bool, error)
}

type FertilityService struct {
	observations FertilityRepository
	ovulation    OvulationConfirmer
	logger       *zap.Logger
}

func NewFertilityService(observations FertilityRepository, ovulation OvulationConfirmer, logger *zap.Logger) *FertilityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FertilityService{
		observations: observations,
		ovulation:    ovulation,
		logger:       logger,
	}
}

// LogObservation stores the day's observation, replacing any earlier one for the
// same day, and confirms ovulation on the open cycle when the day carries a signal.
// The boolean reports whether this call confirmed ovulation.
func (service *FertilityService) LogObservation(userID uint, input FertilityInput) (models.FertilityData, bool, error) {
	normalized, err := NormalizeFertilityInput(input)
	if err != nil {
		return models.FertilityData{}, false, err
	}

	if normalized.BBT != nil {
		if err := service.checkBBTUnit(userID, normalized); err != nil {
			return models.FertilityData{}, false, err
		}
	}

	entry := models.FertilityData{
		UserID:         userID,
		Date:           normalized.Date,
		BBT:            normalized.BBT,
		BBTUnit:        normalized.BBTUnit,
		CervicalMucus:  normalized.CervicalMucus,
		OPKResult:      normalized.OPKResult,
		SexualActivity: normalized.SexualActivity,
	}
	entry.FertilityScore, entry.FertilityPhase = ScoreFertility(entry)

	var history []models.FertilityData
	if entry.BBT != nil {
		from := addDays(entry.Date, -BBTBaselineWindowDays)
		to := entry.Date
		history, err = service.observations.ListByUserRange(userID, &from, &to)
		if err != nil {
			return models.FertilityData{}, false, fmt.Errorf("load bbt history: %w", err)
		}
	}

	if err := service.observations.Upsert(&entry); err != nil {
		return models.FertilityData{}, false, fmt.Errorf("save fertility observation: %w", err)
	}

	if !HasOvulationSignal(entry, history) || service.ovulation == nil {
		return entry, false, nil
	}
	_, confirmed, err := service.ovulation.ConfirmOvulation(userID, entry.Date)
	if err != nil {
		return entry, false, err
	}
	if confirmed {
		service.logger.Debug("fertility signal confirmed ovulation",
			zap.Uint("user_id", userID),
			zap.String("date", entry.Date.Format("2006-01-02")),
		)
	}
	return entry, confirmed, nil
}

func (service *FertilityService) checkBBTUnit(userID uint, input FertilityInput) error {
	dayStart := CalendarDay(input.Date)
	latest, found, err := service.observations.FindLatestWithBBTOutsideDay(userID, dayStart, addDays(dayStart, 1))
	if err != nil {
		return fmt.Errorf("load latest bbt reading: %w", err)
	}
	if !found {
		return nil
	}
	if latest.BBTUnit != input.BBTUnit {
		return invalidField("bbt_unit", fmt.Sprintf("readings are recorded in %s", latest.BBTUnit))
	}
	return nil
}

func (service *FertilityService) ScoreDay(userID uint, date time.Time) (models.FertilityData, error) {
	dayStart := CalendarDay(date)
	entry, found, err := service.observations.FindByUserAndDayRange(userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return models.FertilityData{}, fmt.Errorf("load fertility observation: %w", err)
	}
	if !found {
		return models.FertilityData{}, fmt.Errorf("%w: no observation for %s", ErrNotFound, dayStart.Format("2006-01-02"))
	}
	entry.FertilityScore, entry.FertilityPhase = ScoreFertility(entry)
	return entry, nil
}

func (service *FertilityService) ListObservations(userID uint, from *time.Time, to *time.Time) ([]models.FertilityData, error) {
	fromStart, toEnd, err := dayRangeBounds(from, to)
	if err != nil {
		return nil, err
	}
	entries, err := service.observations.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("list fertility observations: %w", err)
	}
	return entries, nil
}
