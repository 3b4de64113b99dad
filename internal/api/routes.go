package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	users := app.Group("/api/users/:userID", handler.RequireUserID)

	periods := users.Group("/periods")
	periods.Get("", handler.ListPeriods)
	periods.Post("/start", handler.StartPeriod)
	periods.Post("/end", handler.EndPeriod)
	periods.Get("/active", handler.GetActivePeriod)
	periods.Post("/active/flow", handler.LogFlow)
	periods.Post("/active/symptoms", handler.LogSymptom)

	users.Get("/cycles", handler.ListCycles)
	users.Get("/prediction", handler.GetPrediction)
	users.Get("/statistics", handler.GetStatistics)
	users.Get("/outlook", handler.GetOutlook)

	fertility := users.Group("/fertility")
	fertility.Get("", handler.ListFertility)
	fertility.Get("/:date", handler.GetFertilityDay)
	fertility.Put("/:date", handler.PutFertilityDay)

	export := users.Group("/export")
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
