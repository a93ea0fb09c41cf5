package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewStore(&DB{Pool: mock}, nil), mock
}

func productRow(id int64, name string, featured bool, categoryID int64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "tagline", "description", "price", "original_price",
		"image_url", "rating", "review_count", "category_id",
		"is_featured", "is_best_seller", "is_new_arrival",
	}).AddRow(id, name, "tagline", "desc", 19.99, (*float64)(nil),
		"https://img", 4.5, 10, categoryID, featured, false, false)
}

func TestGetUser(t *testing.T) {
	s, mock := newTestStore(t)
	defer mock.Close()
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`SELECT id, username, email, password, name, role, created_at FROM users WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password", "name", "role", "created_at"}).
			AddRow(int64(1), "ada", "ada@example.com", "hash", "Ada", "user", now))

	u, err := s.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)

	mock.ExpectQuery(`SELECT id, username, email, password, name, role, created_at FROM users WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnError(pgx.ErrNoRows)

	_, err = s.GetUser(ctx, 2)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	s, mock := newTestStore(t)
	defer mock.Close()
	ctx := context.Background()
	now := time.Now()

	in := &domain.InsertUser{Username: "ada", Email: "ada@example.com", Password: "hash", Name: "Ada"}

	mock.ExpectQuery(`INSERT INTO users \(username, email, password, name, role\)`).
		WithArgs("ada", "ada@example.com", "hash", "Ada", "user").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), now))

	u, err := s.CreateUser(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, domain.RoleUser, u.Role)

	mock.ExpectQuery(`INSERT INTO users \(username, email, password, name, role\)`).
		WithArgs("ada", "ada@example.com", "hash", "Ada", "user").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
	_, err = s.CreateUser(ctx, in)
	assert.ErrorIs(t, err, store.ErrUsernameExists)

	mock.ExpectQuery(`INSERT INTO users \(username, email, password, name, role\)`).
		WithArgs("ada", "ada@example.com", "hash", "Ada", "user").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	_, err = s.CreateUser(ctx, in)
	assert.ErrorIs(t, err, store.ErrEmailExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserValidation(t *testing.T) {
	s, mock := newTestStore(t)
	defer mock.Close()

	_, err := s.CreateUser(context.Background(), &domain.InsertUser{Username: "x"})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	require.NoError(t, mock.ExpectationsWereMet(), "invalid payload must not reach the database")
}

func TestGetFeaturedProducts(t *testing.T) {
	s, mock := newTestStore(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE is_featured ORDER BY id`).
		WillReturnRows(productRow(1, "Aurora Table Lamp", true, 1))

	products, err := s.GetFeaturedProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].IsFeatured)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByIDNotFound(t *testing.T) {
	s, mock := newTestStore(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetProductByID(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart(t *testing.T) {
	s, mock := newTestStore(t)
	defer mock.Close()
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(productRow(3, "Drift Wireless Speaker", true, 2))
	mock.ExpectQuery(`INSERT INTO cart_items \(user_id, product_id, quantity\)`).
		WithArgs(int64(7), int64(3), 2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "product_id", "quantity", "added_at"}).
			AddRow(int64(11), int64(7), int64(3), 2, now))

	item, err := s.AddToCart(ctx, &domain.InsertCartItem{UserID: 7, ProductID: 3, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(11), item.ID)
	assert.Equal(t, 2, item.Quantity)

	// Unknown product: the pre-check fails and nothing is inserted.
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err = s.AddToCart(ctx, &domain.InsertCartItem{UserID: 7, ProductID: 404, Quantity: 1})
	assert.ErrorIs(t, err, store.ErrProductNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCartItem(t *testing.T) {
	s, mock := newTestStore(t)
	defer mock.Close()
	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`UPDATE cart_items SET quantity = \$2 WHERE id = \$1`).
		WithArgs(int64(5), 4).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "product_id", "quantity", "added_at"}).
			AddRow(int64(5), int64(7), int64(3), 4, now))

	item, err := s.UpdateCartItem(ctx, 5, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	_, err = s.UpdateCartItem(ctx, 5, 0)
	assert.ErrorIs(t, err, store.ErrInvalidQuantity)

	mock.ExpectQuery(`UPDATE cart_items SET quantity = \$2 WHERE id = \$1`).
		WithArgs(int64(999), 2).
		WillReturnError(pgx.ErrNoRows)
	_, err = s.UpdateCartItem(ctx, 999, 2)
	assert.ErrorIs(t, err, store.ErrCartItemNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveAndClearCart(t *testing.T) {
	s, mock := newTestStore(t)
	defer mock.Close()
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM cart_items WHERE id = \$1`).
		WithArgs(int64(123)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.NoError(t, s.RemoveCartItem(ctx, 123), "removing an unknown id is a no-op")

	mock.ExpectExec(`DELETE FROM cart_items WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	require.NoError(t, s.ClearCart(ctx, 7))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCartItemsDangling(t *testing.T) {
	s, mock := newTestStore(t)
	defer mock.Close()
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM cart_items WHERE user_id = \$1 ORDER BY id`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "product_id", "quantity", "added_at"}).
			AddRow(int64(1), int64(7), int64(42), 1, now))
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(int64(42)).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetCartItems(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrDanglingCartItem)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder(t *testing.T) {
	s, mock := newTestStore(t)
	defer mock.Close()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO orders \(reference, user_id, items, status, total_amount, shipping_address\)`).
		WithArgs(pgxmock.AnyArg(), int64(4), []byte(`[{"productId":1}]`), "pending", 89.0, "12 Harbor Way").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(9), now))

	o, err := s.CreateOrder(context.Background(), &domain.InsertOrder{
		UserID: 4, Items: []byte(`[{"productId":1}]`), TotalAmount: 89.0, ShippingAddress: "12 Harbor Way",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), o.ID)
	assert.NotEmpty(t, o.Reference)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSeedDataSkipsWhenInitialized(t *testing.T) {
	s, mock := newTestStore(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM categories ORDER BY id`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "image_url"}).
			AddRow(int64(1), "Home & Living", "", ""))

	require.NoError(t, s.EnsureSeedData(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet(), "no inserts expected when categories exist")
}

func TestSessionStore(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	ss := NewSessionStore(&DB{Pool: mock}, nil)
	expiry := time.Now().Add(time.Hour)

	mock.ExpectExec(`INSERT INTO sessions \(sid, sess, expire\)`).
		WithArgs("tok", []byte("payload"), expiry).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, ss.Commit("tok", []byte("payload"), expiry))

	mock.ExpectQuery(`SELECT sess FROM sessions WHERE sid = \$1 AND expire > now\(\)`).
		WithArgs("tok").
		WillReturnRows(pgxmock.NewRows([]string{"sess"}).AddRow([]byte("payload")))
	data, found, err := ss.Find("tok")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("payload"), data)

	mock.ExpectQuery(`SELECT sess FROM sessions WHERE sid = \$1 AND expire > now\(\)`).
		WithArgs("gone").
		WillReturnError(pgx.ErrNoRows)
	_, found, err = ss.Find("gone")
	require.NoError(t, err)
	assert.False(t, found)

	mock.ExpectExec(`DELETE FROM sessions WHERE sid = \$1`).
		WithArgs("tok").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, ss.Delete("tok"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCleanupStopBeforeStart(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	ss := NewSessionStore(&DB{Pool: mock}, nil)

	// A shutdown can win the race against the reaper goroutine's startup;
	// the reaper must still terminate. Repeated stops must not panic.
	ss.StopCleanup()
	ss.StopCleanup()

	done := make(chan struct{})
	go func() {
		ss.StartCleanup(time.Hour)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper kept running after StopCleanup")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
