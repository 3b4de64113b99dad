package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunara/internal/services"
	"go.uber.org/zap"
)

const contextUserIDKey = "user_id"

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, field string, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message, "field": field})
}

// respondError maps service errors onto HTTP statuses. Anything unrecognized is
// logged and hidden behind a generic 500.
func (handler *Handler) respondError(c *fiber.Ctx, err error) error {
	var invalid *services.ValidationError
	switch {
	case errors.As(err, &invalid):
		return validationError(c, invalid.Field, invalid.Error())
	case errors.Is(err, services.ErrConflict):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	default:
		handler.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals(requestIDLocalKey)),
			zap.Error(err),
		)
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}

func (handler *Handler) RequireUserID(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(strings.TrimSpace(c.Params("userID")), 10, 32)
	if err != nil || userID == 0 {
		return validationError(c, "user_id", "invalid user_id: must be a positive integer")
	}
	c.Locals(contextUserIDKey, uint(userID))
	return c.Next()
}

func currentUserID(c *fiber.Ctx) uint {
	userID, _ := c.Locals(contextUserIDKey).(uint)
	return userID
}

// dayOrToday parses an optional YYYY-MM-DD value, defaulting to today.
func (handler *Handler) dayOrToday(raw string, field string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return handler.today(), nil
	}
	return services.ParseDay(raw, field)
}

// parseBody decodes an optional request body. An empty body leaves target untouched.
func parseBody(c *fiber.Ctx, target any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(target); err != nil {
		return &services.ValidationError{Field: "body", Reason: "malformed payload"}
	}
	return nil
}
