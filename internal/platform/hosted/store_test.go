package hosted

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/platform/postgres"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// newTestStore wires a hosted store to a fake service and a mocked relational
// pool. Tests construct the store directly to skip the startup probe.
func newTestStore(t *testing.T, handler http.Handler) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := slog.Default()
	return &Store{
		client:     NewClient(srv.URL, "test-key", logger),
		relational: postgres.NewStore(&postgres.DB{Pool: mock}, logger),
		logger:     logger,
	}, mock
}

// failingHandler rejects every request with a server error, simulating a
// hosted service outage.
func failingHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"XX000","message":"internal error"}`, http.StatusInternalServerError)
	})
}

// noRows responds the way the service reports a single-object miss.
func noRows(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotAcceptable)
	w.Write([]byte(`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`))
}

func writeJSON(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(body)); err != nil {
		t.Errorf("write response: %v", err)
	}
}

const productJSON = `{"id":3,"name":"Drift Wireless Speaker","tagline":"Room-filling sound",
"description":"","price":129.00,"original_price":null,"image_url":"","rating":4.8,
"review_count":41,"category_id":2,"is_featured":true,"is_best_seller":false,"is_new_arrival":false}`

func TestGetProductByIDUsesHostedPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.3", r.URL.Query().Get("id"))
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		writeJSON(t, w, productJSON)
	})
	s, mock := newTestStore(t, mux)

	p, err := s.GetProductByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, "Drift Wireless Speaker", p.Name)
	assert.True(t, p.IsFeatured)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByIDNotFoundDoesNotFallBack(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		noRows(w)
	})
	s, mock := newTestStore(t, mux)

	_, err := s.GetProductByID(context.Background(), 99)

	assert.ErrorIs(t, err, store.ErrProductNotFound)
	// No relational expectations were registered: a terminal hosted answer
	// must never reach the fallback path.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func productMockRow() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "tagline", "description", "price", "original_price",
		"image_url", "rating", "review_count", "category_id",
		"is_featured", "is_best_seller", "is_new_arrival",
	}).AddRow(int64(3), "Drift Wireless Speaker", "Room-filling sound", "",
		129.00, (*float64)(nil), "", 4.8, 41, int64(2), true, false, false)
}

func TestGetProductByIDFallsBackToRelational(t *testing.T) {
	s, mock := newTestStore(t, failingHandler())
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(productMockRow())

	p, err := s.GetProductByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "Drift Wireless Speaker", p.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByIDBothPathsDown(t *testing.T) {
	s, mock := newTestStore(t, failingHandler())
	// The fallback retries once, so the relational failure is hit twice.
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WillReturnError(errors.New("connection refused"))
	mock.ExpectQuery(`SELECT (.+) FROM products WHERE id = \$1`).
		WillReturnError(errors.New("connection refused"))

	_, err := s.GetProductByID(context.Background(), 3)

	assert.ErrorIs(t, err, store.ErrBackendUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserHostedConflictIsTerminal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":"23505","message":"duplicate key value violates unique constraint \"users_email_key\""}`))
	})
	s, mock := newTestStore(t, mux)

	_, err := s.CreateUser(context.Background(), &domain.InsertUser{
		Username: "maya",
		Email:    "maya@example.com",
		Password: "hashed",
		Name:     "Maya",
	})

	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserValidationNeverLeavesProcess(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid payload reached the hosted service")
	})
	s, mock := newTestStore(t, handler)

	_, err := s.CreateUser(context.Background(), &domain.InsertUser{
		Username: "maya",
		Email:    "not-an-email",
		Password: "hashed",
		Name:     "Maya",
	})

	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCartMergesExistingRow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, productJSON)
	})
	mux.HandleFunc("GET /cart_items", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `{"id":7,"user_id":1,"product_id":3,"quantity":2,"added_at":"2026-08-30T12:00:00Z"}`)
	})
	mux.HandleFunc("PATCH /cart_items", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.7", r.URL.Query().Get("id"))
		writeJSON(t, w, `[{"id":7,"user_id":1,"product_id":3,"quantity":5,"added_at":"2026-08-30T12:00:00Z"}]`)
	})
	s, mock := newTestStore(t, mux)

	item, err := s.AddToCart(context.Background(), &domain.InsertCartItem{
		UserID: 1, ProductID: 3, Quantity: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), item.ID)
	assert.Equal(t, 5, item.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCartInsertsWhenAbsent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, productJSON)
	})
	mux.HandleFunc("GET /cart_items", func(w http.ResponseWriter, r *http.Request) {
		noRows(w)
	})
	mux.HandleFunc("POST /cart_items", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `{"id":8,"user_id":1,"product_id":3,"quantity":3,"added_at":"2026-08-30T12:00:00Z"}`)
	})
	s, mock := newTestStore(t, mux)

	item, err := s.AddToCart(context.Background(), &domain.InsertCartItem{
		UserID: 1, ProductID: 3, Quantity: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(8), item.ID)
	assert.Equal(t, 3, item.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCartUnknownProductIsTerminal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		noRows(w)
	})
	s, mock := newTestStore(t, mux)

	_, err := s.AddToCart(context.Background(), &domain.InsertCartItem{
		UserID: 1, ProductID: 99, Quantity: 1,
	})

	assert.ErrorIs(t, err, store.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCartItemsDanglingProductFailsLoudly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart_items", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `[{"id":7,"user_id":1,"product_id":42,"quantity":1,"added_at":"2026-08-30T12:00:00Z"}]`)
	})
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		noRows(w)
	})
	s, mock := newTestStore(t, mux)

	_, err := s.GetCartItems(context.Background(), 1)

	assert.ErrorIs(t, err, store.ErrDanglingCartItem)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCartItemsHostedJoin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart_items", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.1", r.URL.Query().Get("user_id"))
		writeJSON(t, w, `[{"id":7,"user_id":1,"product_id":3,"quantity":2,"added_at":"2026-08-30T12:00:00Z"}]`)
	})
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, productJSON)
	})
	s, mock := newTestStore(t, mux)

	items, err := s.GetCartItems(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCartItemUnknownID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /cart_items", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, `[]`)
	})
	s, mock := newTestStore(t, mux)

	_, err := s.UpdateCartItem(context.Background(), 99, 2)

	assert.ErrorIs(t, err, store.ErrCartItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCartItemRejectsBadQuantity(t *testing.T) {
	s, mock := newTestStore(t, failingHandler())

	_, err := s.UpdateCartItem(context.Background(), 7, 0)

	assert.ErrorIs(t, err, store.ErrInvalidQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveCartItemHostedPath(t *testing.T) {
	deleted := false
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /cart_items", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.7", r.URL.Query().Get("id"))
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})
	s, mock := newTestStore(t, mux)

	err := s.RemoveCartItem(context.Background(), 7)

	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearCartFallsBackToRelational(t *testing.T) {
	s, mock := newTestStore(t, failingHandler())
	mock.ExpectExec(`DELETE FROM cart_items WHERE user_id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	err := s.ClearCart(context.Background(), 1)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderReusesReferenceOnFallback(t *testing.T) {
	s, mock := newTestStore(t, failingHandler())
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(pgxmock.AnyArg(), int64(1), pgxmock.AnyArg(), "pending", 258.0, "12 Harbor Lane").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(5), time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)))

	o, err := s.CreateOrder(context.Background(), &domain.InsertOrder{
		UserID:          1,
		Items:           []byte(`[{"productId":3,"quantity":2}]`),
		TotalAmount:     258.0,
		ShippingAddress: "12 Harbor Lane",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), o.ID)
	assert.NotEmpty(t, o.Reference)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNameIdentifiesBackend(t *testing.T) {
	s, _ := newTestStore(t, failingHandler())
	assert.Equal(t, "hosted", s.Name())
}
