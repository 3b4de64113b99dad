package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Health(c *fiber.Ctx) error {
	sqlDB, err := handler.db.DB()
	if err != nil {
		return apiError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}
	if err := sqlDB.PingContext(c.UserContext()); err != nil {
		return apiError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
