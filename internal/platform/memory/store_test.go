package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCatalog(t *testing.T) {
	s := New()
	ctx := context.Background()

	cats, err := s.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 3)

	products, err := s.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 6)

	featured, err := s.GetFeaturedProducts(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 4)
	for _, p := range featured {
		assert.True(t, p.IsFeatured)
	}

	testimonials, err := s.GetAllTestimonials(ctx)
	require.NoError(t, err)
	assert.Len(t, testimonials, 3)
}

func TestSeedIsDeterministic(t *testing.T) {
	ctx := context.Background()
	a, _ := New().GetAllProducts(ctx)
	b, _ := New().GetAllProducts(ctx)
	assert.Equal(t, a, b)
}

func TestGetProductsByCategory(t *testing.T) {
	s := New()
	ctx := context.Background()

	all, err := s.GetAllProducts(ctx)
	require.NoError(t, err)

	byCat := map[int64]int{}
	for _, p := range all {
		byCat[p.CategoryID]++
	}

	for catID, want := range byCat {
		got, err := s.GetProductsByCategory(ctx, catID)
		require.NoError(t, err)
		assert.Len(t, got, want)
	}

	none, err := s.GetProductsByCategory(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCreateUserAndUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, &domain.InsertUser{
		Username: "ada", Email: "ada@example.com", Password: "hash", Name: "Ada",
	})
	require.NoError(t, err)
	assert.Greater(t, u.ID, int64(0))
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = s.CreateUser(ctx, &domain.InsertUser{
		Username: "ada", Email: "other@example.com", Password: "hash", Name: "Ada 2",
	})
	assert.ErrorIs(t, err, store.ErrUsernameExists)

	_, err = s.CreateUser(ctx, &domain.InsertUser{
		Username: "ada2", Email: "ada@example.com", Password: "hash", Name: "Ada 2",
	})
	assert.ErrorIs(t, err, store.ErrEmailExists)

	// The failed creates must not have touched the original row.
	got, err := s.GetUserByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	byEmail, err := s.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = s.GetUser(ctx, 999)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestCreateProductRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	in := &domain.InsertProduct{
		Name: "Test Kettle", Tagline: "Boils", Price: 49.99,
		Rating: 4.2, ReviewCount: 3, CategoryID: 1, IsBestSeller: true,
	}
	created, err := s.CreateProduct(ctx, in)
	require.NoError(t, err)

	got, err := s.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Price, got.Price)

	_, err = s.CreateProduct(ctx, &domain.InsertProduct{Name: "", Price: 1, CategoryID: 1})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestAddToCartMerges(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.AddToCart(ctx, &domain.InsertCartItem{UserID: 7, ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Quantity)

	second, err := s.AddToCart(ctx, &domain.InsertCartItem{UserID: 7, ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "merge must reuse the existing row")
	assert.Equal(t, 2, second.Quantity)

	items, err := s.GetCartItems(ctx, 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(1), items[0].Product.ID)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	s := New()
	_, err := s.AddToCart(context.Background(), &domain.InsertCartItem{UserID: 1, ProductID: 404, Quantity: 1})
	assert.ErrorIs(t, err, store.ErrProductNotFound)
}

func TestUpdateCartItem(t *testing.T) {
	s := New()
	ctx := context.Background()

	item, err := s.AddToCart(ctx, &domain.InsertCartItem{UserID: 3, ProductID: 2, Quantity: 1})
	require.NoError(t, err)

	updated, err := s.UpdateCartItem(ctx, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)

	_, err = s.UpdateCartItem(ctx, item.ID, 0)
	assert.ErrorIs(t, err, store.ErrInvalidQuantity)
	_, err = s.UpdateCartItem(ctx, item.ID, -1)
	assert.ErrorIs(t, err, store.ErrInvalidQuantity)
	_, err = s.UpdateCartItem(ctx, 9999, 2)
	assert.ErrorIs(t, err, store.ErrCartItemNotFound)
}

func TestRemoveAndClearAreIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.RemoveCartItem(ctx, 12345))
	require.NoError(t, s.ClearCart(ctx, 77))

	a, err := s.AddToCart(ctx, &domain.InsertCartItem{UserID: 9, ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, &domain.InsertCartItem{UserID: 9, ProductID: 2, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, s.RemoveCartItem(ctx, a.ID))
	require.NoError(t, s.RemoveCartItem(ctx, a.ID))

	require.NoError(t, s.ClearCart(ctx, 9))
	items, err := s.GetCartItems(ctx, 9)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGetCartItemsTwoProducts(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.AddToCart(ctx, &domain.InsertCartItem{UserID: 5, ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, &domain.InsertCartItem{UserID: 5, ProductID: 2, Quantity: 1})
	require.NoError(t, err)

	items, err := s.GetCartItems(ctx, 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		want, err := s.GetProductByID(ctx, it.ProductID)
		require.NoError(t, err)
		assert.Equal(t, *want, it.Product)
	}
}

func TestGetCartItemsDanglingReference(t *testing.T) {
	s := New()
	ctx := context.Background()

	item, err := s.AddToCart(ctx, &domain.InsertCartItem{UserID: 2, ProductID: 6, Quantity: 1})
	require.NoError(t, err)

	// Simulate catalog corruption by deleting the product out from under the
	// cart row.
	s.mu.Lock()
	delete(s.products, item.ProductID)
	s.mu.Unlock()

	_, err = s.GetCartItems(ctx, 2)
	assert.ErrorIs(t, err, store.ErrDanglingCartItem)
}

func TestOrders(t *testing.T) {
	s := New()
	ctx := context.Background()

	items := json.RawMessage(`[{"productId":1,"quantity":2,"price":89.00}]`)
	o, err := s.CreateOrder(ctx, &domain.InsertOrder{
		UserID: 4, Items: items, TotalAmount: 178.00, ShippingAddress: "12 Harbor Way",
	})
	require.NoError(t, err)
	assert.Greater(t, o.ID, int64(0))
	assert.NotEmpty(t, o.Reference)
	assert.Equal(t, domain.OrderStatusPending, o.Status)

	got, err := s.GetOrderByID(ctx, o.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(items), string(got.Items))

	list, err := s.GetUserOrders(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	other, err := s.GetUserOrders(ctx, 5)
	require.NoError(t, err)
	assert.NotNil(t, other)
	assert.Empty(t, other)

	_, err = s.GetOrderByID(ctx, 42)
	assert.ErrorIs(t, err, store.ErrOrderNotFound)
}

func TestReviews(t *testing.T) {
	s := New()
	ctx := context.Background()

	r, err := s.CreateReview(ctx, &domain.InsertReview{
		ProductID: 1, UserName: "Sam", Rating: 4, Comment: "Solid build.",
	})
	require.NoError(t, err)

	list, err := s.GetReviewsByProductID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, r.ID, list[0].ID)

	empty, err := s.GetReviewsByProductID(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
