// Package migration (re)creates the relational schema and copies the
// in-memory seed catalog into it, so the hosted backend always finds the
// tables and rows it expects. The whole routine is idempotent: the schema
// phase runs versioned goose migrations and the copy phase upserts by id.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/shopfront-dev/shopfront/internal/platform/postgres"
	"github.com/shopfront-dev/shopfront/internal/store"
	"github.com/shopfront-dev/shopfront/migrations"
)

// Result summarizes the copy phase. Row-level failures are warnings, not
// errors: one bad row must not abort the migration.
type Result struct {
	Copied int
	Failed int
}

// EnsureSchema applies all pending migrations from the embedded filesystem.
// goose tracks applied versions, so re-running is a no-op.
func EnsureSchema(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open database for migration: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Run executes the full migration: schema phase, then catalog copy from src
// (normally the in-memory backend's seed). The returned error is non-nil only
// when the schema phase fails; row-level copy failures are logged and counted
// in Result.Failed.
func Run(ctx context.Context, dsn string, src store.CatalogStore, db *postgres.DB, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "migration"))

	log.Info("running schema migration")
	if err := EnsureSchema(ctx, dsn); err != nil {
		log.Error("schema migration failed", slog.String("error", err.Error()))
		return Result{}, fmt.Errorf("schema migration: %w", err)
	}

	res := copyCatalog(ctx, src, db, log)
	log.Info("migration complete",
		slog.Int("copied", res.Copied),
		slog.Int("failed", res.Failed))
	return res, nil
}

// copyCatalog upserts every catalog row from src into the relational tables,
// in dependency order: categories, then products, then testimonials. Upserts
// carry explicit ids so re-running converges on the same end state.
func copyCatalog(ctx context.Context, src store.CatalogStore, db *postgres.DB, log *slog.Logger) Result {
	var res Result

	const upsertCategory = `
INSERT INTO categories (id, name, description, image_url)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
name = EXCLUDED.name, description = EXCLUDED.description, image_url = EXCLUDED.image_url`

	categories, err := src.GetAllCategories(ctx)
	if err != nil {
		log.Warn("reading source categories failed", slog.String("error", err.Error()))
	}
	for _, c := range categories {
		if _, err := db.Pool.Exec(ctx, upsertCategory, c.ID, c.Name, c.Description, c.ImageURL); err != nil {
			res.Failed++
			log.Warn("category upsert failed",
				slog.Int64("id", c.ID), slog.String("error", err.Error()))
			continue
		}
		res.Copied++
	}

	const upsertProduct = `
INSERT INTO products (id, name, tagline, description, price, original_price, image_url,
rating, review_count, category_id, is_featured, is_best_seller, is_new_arrival)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id) DO UPDATE SET
name = EXCLUDED.name, tagline = EXCLUDED.tagline, description = EXCLUDED.description,
price = EXCLUDED.price, original_price = EXCLUDED.original_price, image_url = EXCLUDED.image_url,
rating = EXCLUDED.rating, review_count = EXCLUDED.review_count, category_id = EXCLUDED.category_id,
is_featured = EXCLUDED.is_featured, is_best_seller = EXCLUDED.is_best_seller,
is_new_arrival = EXCLUDED.is_new_arrival`

	products, err := src.GetAllProducts(ctx)
	if err != nil {
		log.Warn("reading source products failed", slog.String("error", err.Error()))
	}
	for _, p := range products {
		if _, err := db.Pool.Exec(ctx, upsertProduct,
			p.ID, p.Name, p.Tagline, p.Description, p.Price, p.OriginalPrice, p.ImageURL,
			p.Rating, p.ReviewCount, p.CategoryID, p.IsFeatured, p.IsBestSeller, p.IsNewArrival); err != nil {
			res.Failed++
			log.Warn("product upsert failed",
				slog.Int64("id", p.ID), slog.String("error", err.Error()))
			continue
		}
		res.Copied++
	}

	const upsertTestimonial = `
INSERT INTO testimonials (id, user_name, user_image_url, rating, comment, is_verified)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
user_name = EXCLUDED.user_name, user_image_url = EXCLUDED.user_image_url,
rating = EXCLUDED.rating, comment = EXCLUDED.comment, is_verified = EXCLUDED.is_verified`

	testimonials, err := src.GetAllTestimonials(ctx)
	if err != nil {
		log.Warn("reading source testimonials failed", slog.String("error", err.Error()))
	}
	for _, t := range testimonials {
		if _, err := db.Pool.Exec(ctx, upsertTestimonial,
			t.ID, t.UserName, t.UserImageURL, t.Rating, t.Comment, t.IsVerified); err != nil {
			res.Failed++
			log.Warn("testimonial upsert failed",
				slog.Int64("id", t.ID), slog.String("error", err.Error()))
			continue
		}
		res.Copied++
	}

	resyncSequences(ctx, db, log)
	return res
}

// resyncSequences advances each copied table's id sequence past the highest
// explicit id written above. Without this, the next database-assigned insert
// into categories, products or testimonials would draw an id the copy already
// took and fail on the primary key.
func resyncSequences(ctx context.Context, db *postgres.DB, log *slog.Logger) {
	for _, table := range []string{"categories", "products", "testimonials"} {
		q := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id) + 1, 1), false) FROM %s`,
			table, table)
		if _, err := db.Pool.Exec(ctx, q); err != nil {
			log.Warn("sequence resync failed",
				slog.String("table", table), slog.String("error", err.Error()))
		}
	}
}
