package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aristath/divdesk/internal/modules/settings"
	testingpkg "github.com/aristath/divdesk/internal/testing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoutes(t *testing.T) {
	db, cleanup := testingpkg.NewTestDB(t, "config")
	defer cleanup()

	log := zerolog.Nop()
	service := settings.NewService(settings.NewRepository(db.Conn(), log), log)
	r := chi.NewRouter()
	NewHandler(service, log).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPut, "/settings/pipeline_slow_ms", bytes.NewBufferString(`{"value": 250}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPut, "/settings/unknown", bytes.NewBufferString(`{"value": 1}`))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/settings/", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var values map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &values))
	assert.Equal(t, 250.0, values["pipeline_slow_ms"])
	assert.Equal(t, "all", values["default_account"])
}
