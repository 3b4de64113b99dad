package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/lunara/internal/services"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondError(c, err)
	}

	summary, err := handler.exports.BuildSummary(currentUserID(c), from, to)
	if err != nil {
		return handler.respondError(c, err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondError(c, err)
	}

	entries, err := handler.exports.BuildEntries(currentUserID(c), from, to)
	if err != nil {
		return handler.respondError(c, err)
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSONCharsetUTF8, buildExportFilename(handler.today(), "json"))
	return c.JSON(entries)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return handler.respondError(c, err)
	}

	entries, err := handler.exports.BuildEntries(currentUserID(c), from, to)
	if err != nil {
		return handler.respondError(c, err)
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return handler.respondError(c, fmt.Errorf("write csv header: %w", err))
	}
	for _, entry := range entries {
		if err := writer.Write(entry.CSVRecord()); err != nil {
			return handler.respondError(c, fmt.Errorf("write csv row: %w", err))
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return handler.respondError(c, fmt.Errorf("flush csv: %w", err))
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(handler.today(), "csv"))
	return c.Send(output.Bytes())
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}

func buildExportFilename(day time.Time, extension string) string {
	return fmt.Sprintf("lunara-export-%s.%s", day.Format(services.DateLayout), extension)
}
