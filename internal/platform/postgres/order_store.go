package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
)

const orderColumns = `id, reference, user_id, items, status, total_amount, shipping_address, created_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var items []byte
	err := row.Scan(&o.ID, &o.Reference, &o.UserID, &items, &o.Status,
		&o.TotalAmount, &o.ShippingAddress, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrOrderNotFound
		}
		return nil, err
	}
	o.Items = json.RawMessage(items)
	return &o, nil
}

// CreateOrder implements store.OrderStore. Items is stored as the exact JSON
// snapshot submitted at creation time.
func (s *Store) CreateOrder(ctx context.Context, in *domain.InsertOrder) (*domain.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	const q = `
INSERT INTO orders (reference, user_id, items, status, total_amount, shipping_address)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	o := domain.Order{
		Reference:       uuid.NewString(),
		UserID:          in.UserID,
		Items:           append([]byte(nil), in.Items...),
		Status:          in.StatusOrDefault(),
		TotalAmount:     in.TotalAmount,
		ShippingAddress: in.ShippingAddress,
	}
	err := s.db.Pool.QueryRow(ctx, q,
		o.Reference, o.UserID, []byte(o.Items), o.Status, o.TotalAmount, o.ShippingAddress).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		s.logger.Error("failed to create order",
			slog.Int64("user_id", o.UserID),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.logger.Info("order created",
		slog.Int64("order_id", o.ID),
		slog.String("reference", o.Reference),
		slog.Int64("user_id", o.UserID))
	return &o, nil
}

// GetOrderByID implements store.OrderStore.
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(s.db.Pool.QueryRow(ctx, q, id))
}

// GetUserOrders implements store.OrderStore. Newest first.
func (s *Store) GetUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := s.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}
