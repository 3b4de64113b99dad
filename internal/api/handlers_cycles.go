package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunara/internal/services"
)

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondError(c, err)
	}

	cycles, err := handler.cycles.ListCycles(currentUserID(c), from, to)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(cycles)
}

// GetPrediction answers null while the history is too short to project from.
func (handler *Handler) GetPrediction(c *fiber.Ctx) error {
	prediction, err := handler.predictions.PredictNextCycle(currentUserID(c))
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(prediction)
}

func (handler *Handler) GetStatistics(c *fiber.Ctx) error {
	stats, err := handler.statistics.GetCycleStatistics(currentUserID(c), handler.today())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(stats)
}

func (handler *Handler) GetOutlook(c *fiber.Ctx) error {
	day, err := handler.dayOrToday(c.Query("date"), "date")
	if err != nil {
		return handler.respondError(c, err)
	}

	leadDays := c.QueryInt("lead_days", handler.reminderLeadDays)
	if leadDays < 0 {
		return validationError(c, "lead_days", "invalid lead_days: must not be negative")
	}

	outlook, err := handler.predictions.Outlook(currentUserID(c), day, leadDays)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(outlook)
}
