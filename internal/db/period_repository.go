package db

import (
	"time"

	"github.com/terraincognita07/lunara/internal/models"
	"gorm.io/gorm"
)

type PeriodRepository struct {
	database *gorm.DB
}

func NewPeriodRepository(database *gorm.DB) *PeriodRepository {
	return &PeriodRepository{database: database}
}

func (repo *PeriodRepository) FindActive(userID uint) (models.PeriodEntry, bool, error) {
	return repo.findOne(repo.database.Where("user_id = ? AND end_date IS NULL", userID))
}

func (repo *PeriodRepository) FindLatest(userID uint) (models.PeriodEntry, bool, error) {
	return repo.findOne(repo.database.Where("user_id = ?", userID).Order("start_date DESC"))
}

func (repo *PeriodRepository) findOne(query *gorm.DB) (models.PeriodEntry, bool, error) {
	entry := models.PeriodEntry{}
	result := query.Limit(1).Find(&entry)
	if result.Error != nil {
		return models.PeriodEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.PeriodEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *PeriodRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.PeriodEntry, error) {
	query := repo.database.Model(&models.PeriodEntry{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("start_date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("start_date < ?", *toEnd)
	}

	entries := make([]models.PeriodEntry, 0)
	if err := query.Order("start_date ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *PeriodRepository) Create(entry *models.PeriodEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *PeriodRepository) Save(entry *models.PeriodEntry) error {
	return repo.database.Save(entry).Error
}
