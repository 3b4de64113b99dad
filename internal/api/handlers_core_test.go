package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t, "2024-03-20")

	status, body := doJSON(t, app, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	status, _ = doJSON(t, app, http.MethodGet, "/favicon.ico", nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	app, _ := newTestApp(t, "2024-03-20")

	status, _ := doJSON(t, app, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
