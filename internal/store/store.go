package store

import (
	"context"

	"github.com/shopfront-dev/shopfront/internal/domain"
)

// UserStore covers account persistence.
type UserStore interface {
	// GetUser retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// GetUserByUsername retrieves a user by unique username.
	// Returns ErrUserNotFound if absent.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetUserByEmail retrieves a user by unique email.
	// Returns ErrUserNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// CreateUser persists a new user and returns it with its assigned ID and
	// defaulted fields. Returns ErrUsernameExists or ErrEmailExists when the
	// corresponding unique field is already taken; in that case no existing
	// row is mutated.
	CreateUser(ctx context.Context, in *domain.InsertUser) (*domain.User, error)
}

// CatalogStore covers categories, products, reviews and testimonials.
// All list operations return empty non-nil slices when nothing matches.
type CatalogStore interface {
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	// GetCategoryByID returns ErrCategoryNotFound if absent.
	GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, in *domain.InsertCategory) (*domain.Category, error)

	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	// GetProductByID returns ErrProductNotFound if absent.
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	GetProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
	// GetFeaturedProducts returns products whose IsFeatured flag is set.
	GetFeaturedProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in *domain.InsertProduct) (*domain.Product, error)

	GetReviewsByProductID(ctx context.Context, productID int64) ([]domain.Review, error)
	CreateReview(ctx context.Context, in *domain.InsertReview) (*domain.Review, error)

	GetAllTestimonials(ctx context.Context) ([]domain.Testimonial, error)
	CreateTestimonial(ctx context.Context, in *domain.InsertTestimonial) (*domain.Testimonial, error)
}

// CartStore covers the shopping cart.
type CartStore interface {
	// GetCartItems returns the user's cart rows joined with their products.
	// Returns ErrDanglingCartItem if any row references a product that no
	// longer resolves. An empty cart is an empty slice, not an error.
	GetCartItems(ctx context.Context, userID int64) ([]domain.CartItemWithProduct, error)

	// AddToCart inserts a cart row, or merges into the existing
	// (userID, productID) row by adding quantities. Returns the resulting
	// row either way. Returns ErrProductNotFound if the product is unknown.
	AddToCart(ctx context.Context, in *domain.InsertCartItem) (*domain.CartItem, error)

	// UpdateCartItem sets the quantity of an existing row.
	// Returns ErrInvalidQuantity if quantity < 1 and ErrCartItemNotFound if
	// the row does not exist.
	UpdateCartItem(ctx context.Context, id int64, quantity int) (*domain.CartItem, error)

	// RemoveCartItem deletes a cart row. Removing an unknown ID is a no-op.
	RemoveCartItem(ctx context.Context, id int64) error

	// ClearCart deletes all of the user's cart rows. Idempotent.
	ClearCart(ctx context.Context, userID int64) error
}

// OrderStore covers order history.
type OrderStore interface {
	CreateOrder(ctx context.Context, in *domain.InsertOrder) (*domain.Order, error)
	// GetOrderByID returns ErrOrderNotFound if absent.
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	GetUserOrders(ctx context.Context, userID int64) ([]domain.Order, error)
}

// Store is the full storage contract. The route layer talks to exactly this
// interface and never to a concrete backend.
type Store interface {
	UserStore
	CatalogStore
	CartStore
	OrderStore

	// Name identifies the backend in logs and the health endpoint.
	Name() string
}
