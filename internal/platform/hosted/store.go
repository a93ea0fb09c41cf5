package hosted

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/shopfront-dev/shopfront/internal/migration"
	"github.com/shopfront-dev/shopfront/internal/platform/memory"
	"github.com/shopfront-dev/shopfront/internal/platform/postgres"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// Store implements store.Store against the hosted data service, using the
// relational backend as a per-operation fallback. Reads and writes go to the
// service first; transport and service failures retry the same operation via
// direct SQL, so a service outage degrades latency, not availability.
type Store struct {
	client     *Client
	relational *postgres.Store
	logger     *slog.Logger
}

var _ store.Store = (*Store)(nil)

// New builds the hosted backend and verifies that both data paths can serve.
// It probes the service's catalog tables; if the probe fails it prepares the
// relational side (schema plus seed catalog) so the fallback path is ready,
// then probes once more. A still-failing probe is logged as degraded, never
// returned as an error: the relational path keeps the store usable.
func New(ctx context.Context, client *Client, relational *postgres.Store, dsn string, logger *slog.Logger) *Store {
	if client == nil {
		panic("client cannot be nil")
	}
	if relational == nil {
		panic("relational fallback cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		client:     client,
		relational: relational,
		logger:     logger.With(slog.String("component", "hosted_store")),
	}

	if err := s.probe(ctx); err != nil {
		s.logger.Warn("hosted service probe failed, preparing relational fallback",
			slog.String("error", err.Error()))
		if _, mErr := migration.Run(ctx, dsn, memory.New(), relational.DB(), logger); mErr != nil {
			s.logger.Error("relational fallback preparation failed",
				slog.String("error", mErr.Error()))
		}
		if err := s.probe(ctx); err != nil {
			s.logger.Warn("starting degraded, all operations will use the relational path",
				slog.String("error", err.Error()))
		}
	}
	return s
}

// Name implements store.Store.
func (s *Store) Name() string { return "hosted" }

// probe issues one cheap read per catalog table the storefront cannot render
// without.
func (s *Store) probe(ctx context.Context) error {
	limit := url.Values{"limit": {"1"}}
	for _, resource := range []string{"categories", "products", "testimonials"} {
		var rows []map[string]any
		if err := s.client.Get(ctx, resource, limit, &rows); err != nil {
			return err
		}
	}
	return nil
}
