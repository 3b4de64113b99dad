package db

import (
	"time"

	"github.com/terraincognita07/lunara/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

func (repo *CycleRepository) FindLatest(userID uint) (models.CycleData, bool, error) {
	cycle := models.CycleData{}
	result := repo.database.
		Where("user_id = ?", userID).
		Order("cycle_number DESC").
		Limit(1).
		Find(&cycle)
	if result.Error != nil {
		return models.CycleData{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleData{}, false, nil
	}
	return cycle, true, nil
}

// ListRecentCompleted returns up to limit cycles with a known length, newest first.
func (repo *CycleRepository) ListRecentCompleted(userID uint, limit int) ([]models.CycleData, error) {
	cycles := make([]models.CycleData, 0, limit)
	if err := repo.database.
		Where("user_id = ? AND cycle_length IS NOT NULL", userID).
		Order("cycle_number DESC").
		Limit(limit).
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.CycleData, error) {
	query := repo.database.Model(&models.CycleData{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("start_date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("start_date < ?", *toEnd)
	}

	cycles := make([]models.CycleData, 0)
	if err := query.Order("cycle_number ASC").Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

func (repo *CycleRepository) Create(cycle *models.CycleData) error {
	return repo.database.Create(cycle).Error
}

func (repo *CycleRepository) Save(cycle *models.CycleData) error {
	return repo.database.Save(cycle).Error
}
