package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/lunara/internal/db"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, today string) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "lunara-test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	handler := NewHandler(database, HandlerOptions{Location: time.UTC, ReminderLeadDays: 2})
	fixedNow, err := time.Parse("2006-01-02", today)
	require.NoError(t, err)
	handler.now = func() time.Time { return fixedNow.Add(9 * time.Hour) }

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(requestid.New())
	app.Use(AccessLog(zap.NewNop()))
	RegisterRoutes(app, handler)
	return app, handler
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}

	response, err := app.Test(request, -1)
	require.NoError(t, err, "%s %s", method, path)
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return response.StatusCode, raw
}

func decodeJSON[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(raw, &value), "body: %s", raw)
	return value
}

func startAndEnd(t *testing.T, app *fiber.App, userPath string, start string, end string) {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, userPath+"/periods/start", map[string]string{"date": start})
	require.Equal(t, http.StatusCreated, status, "start %s: %s", start, body)
	status, body = doJSON(t, app, http.MethodPost, userPath+"/periods/end", map[string]string{"date": end})
	require.Equal(t, http.StatusOK, status, "end %s: %s", end, body)
}
