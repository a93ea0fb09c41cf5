package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront-dev/shopfront/internal/api"
	"github.com/shopfront-dev/shopfront/internal/config"
	"github.com/shopfront-dev/shopfront/internal/platform/memory"
	"github.com/shopfront-dev/shopfront/internal/store"
)

func TestMigrateWithoutRelationalStorage(t *testing.T) {
	selector := store.NewSelector(memory.New(), nil)
	handler := api.NewAdminHandler(selector, nil, "", config.HostedConfig{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/migrate", nil)
	rec := httptest.NewRecorder()
	handler.Migrate(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body api.MigrateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "memory", body.Backend)
}

func TestHealthReportsActiveBackend(t *testing.T) {
	selector := store.NewSelector(memory.New(), nil)
	handler := api.NewAdminHandler(selector, nil, "", config.HostedConfig{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "memory", body.Backend)
}
