package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopfront-dev/shopfront/internal/store"
)

// Store implements store.Store with direct SQL. The relational schema uses
// snake_case column names while the domain model uses camelCase fields; every
// query below therefore lists its columns explicitly and scans them in a
// fixed order, rather than relying on any name matching.
type Store struct {
	db     *DB
	logger *slog.Logger
}

var _ store.Store = (*Store)(nil)

// NewStore creates the relational backend over an established pool.
func NewStore(db *DB, logger *slog.Logger) *Store {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		logger: logger.With(slog.String("component", "postgres_store")),
	}
}

// Name implements store.Store.
func (s *Store) Name() string { return "postgres" }

// DB exposes the underlying handle for collaborators that need direct SQL on
// the same pool (the hosted backend's fallback path and the session store).
func (s *Store) DB() *DB { return s.db }

// EnsureSeedData probes the categories table and, if the database is freshly
// created (no categories), loads the sample catalog through the contract's
// own create operations. Seeding through the contract keeps the routine
// backend-agnostic: the hosted backend reuses it verbatim.
func (s *Store) EnsureSeedData(ctx context.Context) error {
	categories, err := s.GetAllCategories(ctx)
	if err != nil {
		return fmt.Errorf("probe categories: %w", err)
	}
	if len(categories) > 0 {
		s.logger.Info("store already initialized, skipping seed",
			slog.Int("categories", len(categories)))
		return nil
	}

	s.logger.Info("empty database detected, seeding sample data")
	return seedCatalog(ctx, s)
}

// seedCatalog inserts the relational seed set through any contract
// implementation.
func seedCatalog(ctx context.Context, dst store.CatalogStore) error {
	for _, c := range seedCategories {
		c := c
		if _, err := dst.CreateCategory(ctx, &c); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}
	for _, p := range seedProducts {
		p := p
		if _, err := dst.CreateProduct(ctx, &p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	for _, t := range seedTestimonials {
		t := t
		if _, err := dst.CreateTestimonial(ctx, &t); err != nil {
			return fmt.Errorf("seed testimonial %q: %w", t.UserName, err)
		}
	}
	return nil
}
