package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shopfront-dev/shopfront/internal/api/shared"
	"github.com/shopfront-dev/shopfront/internal/config"
	"github.com/shopfront-dev/shopfront/internal/migration"
	"github.com/shopfront-dev/shopfront/internal/platform/hosted"
	"github.com/shopfront-dev/shopfront/internal/platform/memory"
	"github.com/shopfront-dev/shopfront/internal/platform/postgres"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// AdminHandler serves the operational endpoints: the migration trigger and
// the health probe.
type AdminHandler struct {
	selector   *store.Selector
	relational *postgres.Store
	dsn        string
	hostedCfg  config.HostedConfig
	logger     *slog.Logger
}

// NewAdminHandler builds the handler. relational may be nil when the server
// runs purely in memory; the migration trigger then reports failure instead
// of panicking.
func NewAdminHandler(selector *store.Selector, relational *postgres.Store, dsn string,
	hostedCfg config.HostedConfig, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		selector:   selector,
		relational: relational,
		dsn:        dsn,
		hostedCfg:  hostedCfg,
		logger:     logger.With(slog.String("component", "admin_handler")),
	}
}

// Migrate handles POST /api/admin/migrate: it (re)applies the schema, copies
// the seed catalog into the relational database, and swaps the active backend
// to the richest configured one. Safe to call repeatedly.
func (h *AdminHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	if h.relational == nil {
		shared.RespondWithJSON(w, r, http.StatusConflict, MigrateResponse{
			Success: false,
			Message: "relational storage is not configured",
			Backend: h.selector.Active().Name(),
		})
		return
	}

	res, err := migration.Run(r.Context(), h.dsn, memory.New(), h.relational.DB(), h.logger)
	if err != nil {
		shared.RespondWithJSON(w, r, http.StatusInternalServerError, MigrateResponse{
			Success: false,
			Message: fmt.Sprintf("schema migration failed: %s", SafeErrorMessage(err)),
			Backend: h.selector.Active().Name(),
		})
		return
	}

	var next store.Store = h.relational
	if h.hostedCfg.Enabled() {
		client := hosted.NewClient(h.hostedCfg.URL, h.hostedCfg.APIKey, h.logger)
		next = hosted.New(r.Context(), client, h.relational, h.dsn, h.logger)
	}
	h.selector.Swap(next)

	shared.RespondWithJSON(w, r, http.StatusOK, MigrateResponse{
		Success: true,
		Message: fmt.Sprintf("migration complete, %d rows copied", res.Copied),
		Backend: next.Name(),
		Copied:  res.Copied,
		Failed:  res.Failed,
	})
}

// Health handles GET /health.
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "ok",
		Backend: h.selector.Active().Name(),
	})
}
