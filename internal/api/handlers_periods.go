package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunara/internal/services"
)

func (handler *Handler) StartPeriod(c *fiber.Ctx) error {
	var input dateInput
	if err := parseBody(c, &input); err != nil {
		return handler.respondError(c, err)
	}
	day, err := handler.dayOrToday(input.Date, "date")
	if err != nil {
		return handler.respondError(c, err)
	}

	entry, cycle, err := handler.cycles.StartPeriod(currentUserID(c), day)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(periodResponse{Period: entry, Cycle: cycle})
}

func (handler *Handler) EndPeriod(c *fiber.Ctx) error {
	var input dateInput
	if err := parseBody(c, &input); err != nil {
		return handler.respondError(c, err)
	}
	day, err := handler.dayOrToday(input.Date, "date")
	if err != nil {
		return handler.respondError(c, err)
	}

	entry, cycle, err := handler.cycles.EndPeriod(currentUserID(c), day)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(periodResponse{Period: entry, Cycle: cycle})
}

func (handler *Handler) GetActivePeriod(c *fiber.Ctx) error {
	entry, found, err := handler.cycles.ActivePeriod(currentUserID(c))
	if err != nil {
		return handler.respondError(c, err)
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "no active period")
	}
	return c.JSON(entry)
}

func (handler *Handler) LogFlow(c *fiber.Ctx) error {
	var input flowInput
	if err := parseBody(c, &input); err != nil {
		return handler.respondError(c, err)
	}

	entry, err := handler.cycles.LogFlow(currentUserID(c), input.Intensity)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) LogSymptom(c *fiber.Ctx) error {
	var input symptomInput
	if err := parseBody(c, &input); err != nil {
		return handler.respondError(c, err)
	}

	symptom := services.SymptomInput{
		Category: input.Category,
		Name:     input.Name,
		Severity: input.Severity,
	}
	if input.Timestamp != nil {
		symptom.Timestamp = *input.Timestamp
	}

	entry, err := handler.cycles.LogSymptom(currentUserID(c), symptom, handler.now())
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) ListPeriods(c *fiber.Ctx) error {
	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondError(c, err)
	}

	entries, err := handler.cycles.ListPeriods(currentUserID(c), from, to)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(entries)
}
