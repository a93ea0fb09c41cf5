package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// Explicit column lists per entity. The scan order in the helpers below must
// stay in lockstep with these.
const (
	categoryColumns = `id, name, description, image_url`

	productColumns = `id, name, tagline, description, price, original_price,
image_url, rating, review_count, category_id, is_featured, is_best_seller, is_new_arrival`

	reviewColumns = `id, product_id, user_name, user_image_url, rating, comment, is_verified`

	testimonialColumns = `id, user_name, user_image_url, rating, comment, is_verified`
)

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Tagline, &p.Description, &p.Price, &p.OriginalPrice,
		&p.ImageURL, &p.Rating, &p.ReviewCount, &p.CategoryID,
		&p.IsFeatured, &p.IsBestSeller, &p.IsNewArrival)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// collectProducts drains rows into a slice, always returning a non-nil slice.
func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// --- categories ---

// GetAllCategories implements store.CatalogStore.
func (s *Store) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories ORDER BY id`
	rows, err := s.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// GetCategoryByID implements store.CatalogStore.
func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	return scanCategory(s.db.Pool.QueryRow(ctx, q, id))
}

// CreateCategory implements store.CatalogStore.
func (s *Store) CreateCategory(ctx context.Context, in *domain.InsertCategory) (*domain.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	const q = `
INSERT INTO categories (name, description, image_url)
VALUES ($1, $2, $3)
RETURNING id`

	c := domain.Category{Name: in.Name, Description: in.Description, ImageURL: in.ImageURL}
	if err := s.db.Pool.QueryRow(ctx, q, c.Name, c.Description, c.ImageURL).Scan(&c.ID); err != nil {
		s.logger.Error("failed to create category", slog.String("error", err.Error()))
		return nil, err
	}
	return &c, nil
}

// --- products ---

// GetAllProducts implements store.CatalogStore.
func (s *Store) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products ORDER BY id`
	rows, err := s.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// GetProductByID implements store.CatalogStore.
func (s *Store) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(s.db.Pool.QueryRow(ctx, q, id))
}

// GetProductsByCategory implements store.CatalogStore.
func (s *Store) GetProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY id`
	rows, err := s.db.Pool.Query(ctx, q, categoryID)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// GetFeaturedProducts implements store.CatalogStore.
func (s *Store) GetFeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE is_featured ORDER BY id`
	rows, err := s.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// CreateProduct implements store.CatalogStore.
func (s *Store) CreateProduct(ctx context.Context, in *domain.InsertProduct) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	const q = `
INSERT INTO products (name, tagline, description, price, original_price, image_url,
rating, review_count, category_id, is_featured, is_best_seller, is_new_arrival)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`

	p := domain.Product{
		Name:          in.Name,
		Tagline:       in.Tagline,
		Description:   in.Description,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		ImageURL:      in.ImageURL,
		Rating:        in.Rating,
		ReviewCount:   in.ReviewCount,
		CategoryID:    in.CategoryID,
		IsFeatured:    in.IsFeatured,
		IsBestSeller:  in.IsBestSeller,
		IsNewArrival:  in.IsNewArrival,
	}
	err := s.db.Pool.QueryRow(ctx, q,
		p.Name, p.Tagline, p.Description, p.Price, p.OriginalPrice, p.ImageURL,
		p.Rating, p.ReviewCount, p.CategoryID, p.IsFeatured, p.IsBestSeller, p.IsNewArrival).
		Scan(&p.ID)
	if err != nil {
		s.logger.Error("failed to create product",
			slog.String("name", p.Name),
			slog.String("error", err.Error()))
		return nil, err
	}
	return &p, nil
}

// --- reviews ---

// GetReviewsByProductID implements store.CatalogStore.
func (s *Store) GetReviewsByProductID(ctx context.Context, productID int64) ([]domain.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE product_id = $1 ORDER BY id`
	rows, err := s.db.Pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Review, 0)
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserName, &r.UserImageURL,
			&r.Rating, &r.Comment, &r.IsVerified); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CreateReview implements store.CatalogStore.
func (s *Store) CreateReview(ctx context.Context, in *domain.InsertReview) (*domain.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	const q = `
INSERT INTO reviews (product_id, user_name, user_image_url, rating, comment, is_verified)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	r := domain.Review{
		ProductID:    in.ProductID,
		UserName:     in.UserName,
		UserImageURL: in.UserImageURL,
		Rating:       in.Rating,
		Comment:      in.Comment,
		IsVerified:   in.IsVerified,
	}
	err := s.db.Pool.QueryRow(ctx, q,
		r.ProductID, r.UserName, r.UserImageURL, r.Rating, r.Comment, r.IsVerified).
		Scan(&r.ID)
	if err != nil {
		s.logger.Error("failed to create review", slog.String("error", err.Error()))
		return nil, err
	}
	return &r, nil
}

// --- testimonials ---

// GetAllTestimonials implements store.CatalogStore.
func (s *Store) GetAllTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	const q = `SELECT ` + testimonialColumns + ` FROM testimonials ORDER BY id`
	rows, err := s.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Testimonial, 0)
	for rows.Next() {
		var t domain.Testimonial
		if err := rows.Scan(&t.ID, &t.UserName, &t.UserImageURL,
			&t.Rating, &t.Comment, &t.IsVerified); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CreateTestimonial implements store.CatalogStore.
func (s *Store) CreateTestimonial(ctx context.Context, in *domain.InsertTestimonial) (*domain.Testimonial, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	const q = `
INSERT INTO testimonials (user_name, user_image_url, rating, comment, is_verified)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

	t := domain.Testimonial{
		UserName:     in.UserName,
		UserImageURL: in.UserImageURL,
		Rating:       in.Rating,
		Comment:      in.Comment,
		IsVerified:   in.IsVerified,
	}
	err := s.db.Pool.QueryRow(ctx, q,
		t.UserName, t.UserImageURL, t.Rating, t.Comment, t.IsVerified).
		Scan(&t.ID)
	if err != nil {
		s.logger.Error("failed to create testimonial", slog.String("error", err.Error()))
		return nil, err
	}
	return &t, nil
}
