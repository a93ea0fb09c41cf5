package hosted

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// list fetches rows from the hosted service and converts them. Results are
// ordered by id so list output is stable across both data paths.
func list[R any, D any](ctx context.Context, c *Client, resource string, query url.Values, conv func(R) D) ([]D, error) {
	if query == nil {
		query = url.Values{}
	}
	if query.Get("order") == "" {
		query.Set("order", "id")
	}
	var rows []R
	if err := c.Get(ctx, resource, query, &rows); err != nil {
		return nil, err
	}
	out := make([]D, 0, len(rows))
	for _, r := range rows {
		out = append(out, conv(r))
	}
	return out, nil
}

// GetAllCategories implements store.CatalogStore.
func (s *Store) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	return withFallback(ctx, s.logger, "GetAllCategories",
		func(ctx context.Context) ([]domain.Category, error) {
			return list(ctx, s.client, "categories", nil, categoryRow.toDomain)
		},
		s.relational.GetAllCategories)
}

// GetCategoryByID implements store.CatalogStore.
func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	return withFallback(ctx, s.logger, "GetCategoryByID",
		func(ctx context.Context) (*domain.Category, error) {
			var row categoryRow
			if err := s.client.GetOne(ctx, "categories", eq("id", id), &row); err != nil {
				if IsNotFound(err) {
					return nil, store.ErrCategoryNotFound
				}
				return nil, err
			}
			c := row.toDomain()
			return &c, nil
		},
		func(ctx context.Context) (*domain.Category, error) {
			return s.relational.GetCategoryByID(ctx, id)
		})
}

// CreateCategory implements store.CatalogStore.
func (s *Store) CreateCategory(ctx context.Context, in *domain.InsertCategory) (*domain.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return withFallback(ctx, s.logger, "CreateCategory",
		func(ctx context.Context) (*domain.Category, error) {
			payload := map[string]any{
				"name":        in.Name,
				"description": in.Description,
				"image_url":   in.ImageURL,
			}
			var row categoryRow
			if err := s.client.Post(ctx, "categories", payload, &row); err != nil {
				return nil, err
			}
			c := row.toDomain()
			return &c, nil
		},
		func(ctx context.Context) (*domain.Category, error) {
			return s.relational.CreateCategory(ctx, in)
		})
}

// GetAllProducts implements store.CatalogStore.
func (s *Store) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	return withFallback(ctx, s.logger, "GetAllProducts",
		func(ctx context.Context) ([]domain.Product, error) {
			return list(ctx, s.client, "products", nil, productRow.toDomain)
		},
		s.relational.GetAllProducts)
}

// GetProductByID implements store.CatalogStore.
func (s *Store) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	return withFallback(ctx, s.logger, "GetProductByID",
		func(ctx context.Context) (*domain.Product, error) { return s.getProductHosted(ctx, id) },
		func(ctx context.Context) (*domain.Product, error) {
			return s.relational.GetProductByID(ctx, id)
		})
}

func (s *Store) getProductHosted(ctx context.Context, id int64) (*domain.Product, error) {
	var row productRow
	if err := s.client.GetOne(ctx, "products", eq("id", id), &row); err != nil {
		if IsNotFound(err) {
			return nil, store.ErrProductNotFound
		}
		return nil, err
	}
	p := row.toDomain()
	return &p, nil
}

// GetProductsByCategory implements store.CatalogStore.
func (s *Store) GetProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	return withFallback(ctx, s.logger, "GetProductsByCategory",
		func(ctx context.Context) ([]domain.Product, error) {
			return list(ctx, s.client, "products", eq("category_id", categoryID), productRow.toDomain)
		},
		func(ctx context.Context) ([]domain.Product, error) {
			return s.relational.GetProductsByCategory(ctx, categoryID)
		})
}

// GetFeaturedProducts implements store.CatalogStore.
func (s *Store) GetFeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	return withFallback(ctx, s.logger, "GetFeaturedProducts",
		func(ctx context.Context) ([]domain.Product, error) {
			return list(ctx, s.client, "products", eq("is_featured", true), productRow.toDomain)
		},
		s.relational.GetFeaturedProducts)
}

// CreateProduct implements store.CatalogStore.
func (s *Store) CreateProduct(ctx context.Context, in *domain.InsertProduct) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return withFallback(ctx, s.logger, "CreateProduct",
		func(ctx context.Context) (*domain.Product, error) {
			payload := map[string]any{
				"name":           in.Name,
				"tagline":        in.Tagline,
				"description":    in.Description,
				"price":          in.Price,
				"original_price": in.OriginalPrice,
				"image_url":      in.ImageURL,
				"rating":         in.Rating,
				"review_count":   in.ReviewCount,
				"category_id":    in.CategoryID,
				"is_featured":    in.IsFeatured,
				"is_best_seller": in.IsBestSeller,
				"is_new_arrival": in.IsNewArrival,
			}
			var row productRow
			if err := s.client.Post(ctx, "products", payload, &row); err != nil {
				return nil, err
			}
			p := row.toDomain()
			return &p, nil
		},
		func(ctx context.Context) (*domain.Product, error) {
			return s.relational.CreateProduct(ctx, in)
		})
}

// GetReviewsByProductID implements store.CatalogStore.
func (s *Store) GetReviewsByProductID(ctx context.Context, productID int64) ([]domain.Review, error) {
	return withFallback(ctx, s.logger, "GetReviewsByProductID",
		func(ctx context.Context) ([]domain.Review, error) {
			return list(ctx, s.client, "reviews", eq("product_id", productID), reviewRow.toDomain)
		},
		func(ctx context.Context) ([]domain.Review, error) {
			return s.relational.GetReviewsByProductID(ctx, productID)
		})
}

// CreateReview implements store.CatalogStore.
func (s *Store) CreateReview(ctx context.Context, in *domain.InsertReview) (*domain.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return withFallback(ctx, s.logger, "CreateReview",
		func(ctx context.Context) (*domain.Review, error) {
			payload := map[string]any{
				"product_id":     in.ProductID,
				"user_name":      in.UserName,
				"user_image_url": in.UserImageURL,
				"rating":         in.Rating,
				"comment":        in.Comment,
				"is_verified":    in.IsVerified,
			}
			var row reviewRow
			if err := s.client.Post(ctx, "reviews", payload, &row); err != nil {
				return nil, err
			}
			r := row.toDomain()
			return &r, nil
		},
		func(ctx context.Context) (*domain.Review, error) {
			return s.relational.CreateReview(ctx, in)
		})
}

// GetAllTestimonials implements store.CatalogStore.
func (s *Store) GetAllTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	return withFallback(ctx, s.logger, "GetAllTestimonials",
		func(ctx context.Context) ([]domain.Testimonial, error) {
			return list(ctx, s.client, "testimonials", nil, testimonialRow.toDomain)
		},
		s.relational.GetAllTestimonials)
}

// CreateTestimonial implements store.CatalogStore.
func (s *Store) CreateTestimonial(ctx context.Context, in *domain.InsertTestimonial) (*domain.Testimonial, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return withFallback(ctx, s.logger, "CreateTestimonial",
		func(ctx context.Context) (*domain.Testimonial, error) {
			payload := map[string]any{
				"user_name":      in.UserName,
				"user_image_url": in.UserImageURL,
				"rating":         in.Rating,
				"comment":        in.Comment,
				"is_verified":    in.IsVerified,
			}
			var row testimonialRow
			if err := s.client.Post(ctx, "testimonials", payload, &row); err != nil {
				return nil, err
			}
			t := row.toDomain()
			return &t, nil
		},
		func(ctx context.Context) (*domain.Testimonial, error) {
			return s.relational.CreateTestimonial(ctx, in)
		})
}
