// Package memory implements the storage contract with process-local maps.
// It is the zero-dependency reference implementation, seeded with a fixed
// catalog, and serves as the safety-net fallback when no database is
// reachable at startup.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// Store keeps every entity collection in a map keyed by a monotonic counter
// local to that collection. IDs are unique within an entity type only.
// A single RWMutex guards all collections; operations are cheap enough that
// finer locking buys nothing.
type Store struct {
	mu sync.RWMutex

	users        map[int64]domain.User
	categories   map[int64]domain.Category
	products     map[int64]domain.Product
	reviews      map[int64]domain.Review
	testimonials map[int64]domain.Testimonial
	cartItems    map[int64]domain.CartItem
	orders       map[int64]domain.Order

	nextUserID        int64
	nextCategoryID    int64
	nextProductID     int64
	nextReviewID      int64
	nextTestimonialID int64
	nextCartItemID    int64
	nextOrderID       int64

	now func() time.Time
}

var _ store.Store = (*Store)(nil)

// New constructs a Store pre-populated with the seed catalog.
func New() *Store {
	s := &Store{
		users:        make(map[int64]domain.User),
		categories:   make(map[int64]domain.Category),
		products:     make(map[int64]domain.Product),
		reviews:      make(map[int64]domain.Review),
		testimonials: make(map[int64]domain.Testimonial),
		cartItems:    make(map[int64]domain.CartItem),
		orders:       make(map[int64]domain.Order),
		now:          func() time.Time { return time.Now().UTC() },
	}
	s.seed()
	return s
}

// Name implements store.Store.
func (s *Store) Name() string { return "memory" }

// --- users ---

// GetUser implements store.UserStore.
func (s *Store) GetUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

// GetUserByUsername implements store.UserStore.
func (s *Store) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetUserByEmail implements store.UserStore.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// CreateUser implements store.UserStore.
func (s *Store) CreateUser(_ context.Context, in *domain.InsertUser) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == in.Username {
			return nil, store.ErrUsernameExists
		}
		if u.Email == in.Email {
			return nil, store.ErrEmailExists
		}
	}

	s.nextUserID++
	u := domain.User{
		ID:        s.nextUserID,
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
		Name:      in.Name,
		Role:      in.RoleOrDefault(),
		CreatedAt: s.now(),
	}
	s.users[u.ID] = u
	return &u, nil
}

// --- categories ---

// GetAllCategories implements store.CatalogStore.
func (s *Store) GetAllCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetCategoryByID implements store.CatalogStore.
func (s *Store) GetCategoryByID(_ context.Context, id int64) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	return &c, nil
}

// CreateCategory implements store.CatalogStore.
func (s *Store) CreateCategory(_ context.Context, in *domain.InsertCategory) (*domain.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCategoryID++
	c := domain.Category{
		ID:          s.nextCategoryID,
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
	s.categories[c.ID] = c
	return &c, nil
}

// --- products ---

// GetAllProducts implements store.CatalogStore.
func (s *Store) GetAllProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterProducts(func(domain.Product) bool { return true }), nil
}

// GetProductByID implements store.CatalogStore.
func (s *Store) GetProductByID(_ context.Context, id int64) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	return &p, nil
}

// GetProductsByCategory implements store.CatalogStore.
func (s *Store) GetProductsByCategory(_ context.Context, categoryID int64) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterProducts(func(p domain.Product) bool { return p.CategoryID == categoryID }), nil
}

// GetFeaturedProducts implements store.CatalogStore.
func (s *Store) GetFeaturedProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterProducts(func(p domain.Product) bool { return p.IsFeatured }), nil
}

// filterProducts returns matching products sorted by ID. Callers hold the lock.
func (s *Store) filterProducts(keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateProduct implements store.CatalogStore.
func (s *Store) CreateProduct(_ context.Context, in *domain.InsertProduct) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProductID++
	p := domain.Product{
		ID:            s.nextProductID,
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
	s.products[p.ID] = p
	return &p, nil
}

// --- reviews ---

// GetReviewsByProductID implements store.CatalogStore.
func (s *Store) GetReviewsByProductID(_ context.Context, productID int64) ([]domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Review, 0)
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateReview implements store.CatalogStore.
func (s *Store) CreateReview(_ context.Context, in *domain.InsertReview) (*domain.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextReviewID++
	r := domain.Review{
		ID:           s.nextReviewID,
		ProductID:    in.ProductID,
		UserName:     in.UserName,
		UserImageURL: in.UserImageURL,
		Rating:       in.Rating,
		Comment:      in.Comment,
		IsVerified:   in.IsVerified,
	}
	s.reviews[r.ID] = r
	return &r, nil
}

// --- testimonials ---

// GetAllTestimonials implements store.CatalogStore.
func (s *Store) GetAllTestimonials(_ context.Context) ([]domain.Testimonial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Testimonial, 0, len(s.testimonials))
	for _, t := range s.testimonials {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateTestimonial implements store.CatalogStore.
func (s *Store) CreateTestimonial(_ context.Context, in *domain.InsertTestimonial) (*domain.Testimonial, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTestimonialID++
	t := domain.Testimonial{
		ID:           s.nextTestimonialID,
		UserName:     in.UserName,
		UserImageURL: in.UserImageURL,
		Rating:       in.Rating,
		Comment:      in.Comment,
		IsVerified:   in.IsVerified,
	}
	s.testimonials[t.ID] = t
	return &t, nil
}

// --- cart ---

// GetCartItems implements store.CartStore. A cart row whose product is gone
// fails the whole read with ErrDanglingCartItem; a dangling reference in a
// process-local store is a programming error, not a recoverable condition.
func (s *Store) GetCartItems(_ context.Context, userID int64) ([]domain.CartItemWithProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CartItemWithProduct, 0)
	for _, item := range s.cartItems {
		if item.UserID != userID {
			continue
		}
		p, ok := s.products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %d for cart item %d",
				store.ErrDanglingCartItem, item.ProductID, item.ID)
		}
		out = append(out, domain.CartItemWithProduct{CartItem: item, Product: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// AddToCart implements store.CartStore with merge-or-insert semantics.
func (s *Store) AddToCart(_ context.Context, in *domain.InsertCartItem) (*domain.CartItem, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[in.ProductID]; !ok {
		return nil, store.ErrProductNotFound
	}

	for id, item := range s.cartItems {
		if item.UserID == in.UserID && item.ProductID == in.ProductID {
			item.Quantity += in.Quantity
			s.cartItems[id] = item
			return &item, nil
		}
	}

	s.nextCartItemID++
	item := domain.CartItem{
		ID:        s.nextCartItemID,
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		AddedAt:   s.now(),
	}
	s.cartItems[item.ID] = item
	return &item, nil
}

// UpdateCartItem implements store.CartStore.
func (s *Store) UpdateCartItem(_ context.Context, id int64, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, store.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cartItems[id]
	if !ok {
		return nil, store.ErrCartItemNotFound
	}
	item.Quantity = quantity
	s.cartItems[id] = item
	return &item, nil
}

// RemoveCartItem implements store.CartStore. Idempotent.
func (s *Store) RemoveCartItem(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cartItems, id)
	return nil
}

// ClearCart implements store.CartStore. Idempotent.
func (s *Store) ClearCart(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.cartItems {
		if item.UserID == userID {
			delete(s.cartItems, id)
		}
	}
	return nil
}

// --- orders ---

// CreateOrder implements store.OrderStore.
func (s *Store) CreateOrder(_ context.Context, in *domain.InsertOrder) (*domain.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextOrderID++
	o := domain.Order{
		ID:              s.nextOrderID,
		Reference:       newOrderReference(),
		UserID:          in.UserID,
		Items:           append([]byte(nil), in.Items...),
		Status:          in.StatusOrDefault(),
		TotalAmount:     in.TotalAmount,
		ShippingAddress: in.ShippingAddress,
		CreatedAt:       s.now(),
	}
	s.orders[o.ID] = o
	return &o, nil
}

// GetOrderByID implements store.OrderStore.
func (s *Store) GetOrderByID(_ context.Context, id int64) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrOrderNotFound
	}
	return &o, nil
}

// GetUserOrders implements store.OrderStore.
func (s *Store) GetUserOrders(_ context.Context, userID int64) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
