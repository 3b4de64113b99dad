package api

import (
	"time"

	"github.com/terraincognita07/lunara/internal/db"
	"github.com/terraincognita07/lunara/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	db               *gorm.DB
	cycles           *services.CycleService
	predictions      *services.PredictionService
	statistics       *services.StatisticsService
	fertility        *services.FertilityService
	exports          *services.ExportService
	location         *time.Location
	reminderLeadDays int
	logger           *zap.Logger
	now              func() time.Time
}

type HandlerOptions struct {
	Location         *time.Location
	ReminderLeadDays int
	Logger           *zap.Logger
}

func NewHandler(database *gorm.DB, options HandlerOptions) *Handler {
	location := options.Location
	if location == nil {
		location = time.UTC
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	repositories := db.NewRepositories(database)
	cycles := services.NewCycleService(repositories.Periods, repositories.Cycles, repositories.Ledger, logger.Named("cycles"))

	return &Handler{
		db:               database,
		cycles:           cycles,
		predictions:      services.NewPredictionService(repositories.Cycles, repositories.Periods),
		statistics:       services.NewStatisticsService(repositories.Cycles, repositories.Periods),
		fertility:        services.NewFertilityService(repositories.Fertility, cycles, logger.Named("fertility")),
		exports:          services.NewExportService(repositories.Periods, repositories.Cycles),
		location:         location,
		reminderLeadDays: options.ReminderLeadDays,
		logger:           logger,
		now:              time.Now,
	}
}

// today is the current calendar date in the configured timezone.
func (handler *Handler) today() time.Time {
	return services.CalendarDay(services.DateAtLocation(handler.now(), handler.location))
}
