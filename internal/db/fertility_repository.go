package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/lunara/internal/models"
	"gorm.io/gorm"
)

type FertilityRepository struct {
	database *gorm.DB
}

func NewFertilityRepository(database *gorm.DB) *FertilityRepository {
	return &FertilityRepository{database: database}
}

func (repo *FertilityRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.FertilityData, bool, error) {
	entry := models.FertilityData{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.FertilityData{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FertilityData{}, false, nil
	}
	return entry, true, nil
}

// FindLatestWithBBTOutsideDay returns the newest reading with a temperature that is
// not on [dayStart, dayEnd).
func (repo *FertilityRepository) FindLatestWithBBTOutsideDay(userID uint, dayStart time.Time, dayEnd time.Time) (models.FertilityData, bool, error) {
	entry := models.FertilityData{}
	result := repo.database.
		Where("user_id = ? AND bbt IS NOT NULL", userID).
		Where("(date < ? OR date >= ?)", dayStart, dayEnd).
		Order("date DESC").
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.FertilityData{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FertilityData{}, false, nil
	}
	return entry, true, nil
}

func (repo *FertilityRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.FertilityData, error) {
	query := repo.database.Model(&models.FertilityData{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	entries := make([]models.FertilityData, 0)
	if err := query.Order("date ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Upsert overwrites the user's observation for entry.Date, keeping the original id.
func (repo *FertilityRepository) Upsert(entry *models.FertilityData) error {
	dayStart := entry.Date
	dayEnd := dayStart.AddDate(0, 0, 1)

	return repo.database.Transaction(func(tx *gorm.DB) error {
		var existing models.FertilityData
		result := tx.
			Where("user_id = ? AND date >= ? AND date < ?", entry.UserID, dayStart, dayEnd).
			First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return tx.Create(entry).Error
		}
		if result.Error != nil {
			return result.Error
		}

		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		return tx.Save(entry).Error
	})
}
