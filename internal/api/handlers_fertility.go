package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunara/internal/services"
)

func (handler *Handler) PutFertilityDay(c *fiber.Ctx) error {
	day, err := services.ParseDay(c.Params("date"), "date")
	if err != nil {
		return handler.respondError(c, err)
	}

	var input fertilityInput
	if err := parseBody(c, &input); err != nil {
		return handler.respondError(c, err)
	}

	entry, confirmed, err := handler.fertility.LogObservation(currentUserID(c), services.FertilityInput{
		Date:           day,
		BBT:            input.BBT,
		BBTUnit:        input.BBTUnit,
		CervicalMucus:  input.CervicalMucus,
		OPKResult:      input.OPKResult,
		SexualActivity: input.SexualActivity,
	})
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(fertilityResponse{Observation: entry, OvulationConfirmed: confirmed})
}

func (handler *Handler) GetFertilityDay(c *fiber.Ctx) error {
	day, err := services.ParseDay(c.Params("date"), "date")
	if err != nil {
		return handler.respondError(c, err)
	}

	entry, err := handler.fertility.ScoreDay(currentUserID(c), day)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) ListFertility(c *fiber.Ctx) error {
	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondError(c, err)
	}

	entries, err := handler.fertility.ListObservations(currentUserID(c), from, to)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(entries)
}
