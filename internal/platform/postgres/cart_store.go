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

const cartItemColumns = `id, user_id, product_id, quantity, added_at`

func scanCartItem(row pgx.Row) (*domain.CartItem, error) {
	var item domain.CartItem
	err := row.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.AddedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetCartItems implements store.CartStore. The product join is performed
// client-side with one lookup per row; carts are small, so the N+1 cost is
// accepted for the per-row error granularity it gives us. A row whose
// product no longer resolves fails the whole read with ErrDanglingCartItem.
func (s *Store) GetCartItems(ctx context.Context, userID int64) ([]domain.CartItemWithProduct, error) {
	const q = `SELECT ` + cartItemColumns + ` FROM cart_items WHERE user_id = $1 ORDER BY id`
	rows, err := s.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.CartItem, 0)
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		items = append(items, *item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.CartItemWithProduct, 0, len(items))
	for _, item := range items {
		p, err := s.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if store.IsNotFound(err) {
				return nil, fmt.Errorf("%w: product %d for cart item %d",
					store.ErrDanglingCartItem, item.ProductID, item.ID)
			}
			return nil, err
		}
		out = append(out, domain.CartItemWithProduct{CartItem: item, Product: *p})
	}
	return out, nil
}

// AddToCart implements store.CartStore. The (user_id, product_id) unique
// constraint plus an additive ON CONFLICT update makes merge-or-insert a
// single atomic statement, so two concurrent adds for the same pair cannot
// produce duplicate rows or lose an increment.
func (s *Store) AddToCart(ctx context.Context, in *domain.InsertCartItem) (*domain.CartItem, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if _, err := s.GetProductByID(ctx, in.ProductID); err != nil {
		return nil, err
	}

	const q = `
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING ` + cartItemColumns

	item, err := scanCartItem(s.db.Pool.QueryRow(ctx, q, in.UserID, in.ProductID, in.Quantity))
	if err != nil {
		s.logger.Error("failed to add to cart",
			slog.Int64("user_id", in.UserID),
			slog.Int64("product_id", in.ProductID),
			slog.String("error", err.Error()))
		return nil, err
	}
	return item, nil
}

// UpdateCartItem implements store.CartStore.
func (s *Store) UpdateCartItem(ctx context.Context, id int64, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, store.ErrInvalidQuantity
	}

	const q = `
UPDATE cart_items SET quantity = $2 WHERE id = $1
RETURNING ` + cartItemColumns

	return scanCartItem(s.db.Pool.QueryRow(ctx, q, id, quantity))
}

// RemoveCartItem implements store.CartStore. Idempotent: deleting an unknown
// id affects zero rows and is not an error.
func (s *Store) RemoveCartItem(ctx context.Context, id int64) error {
	const q = `DELETE FROM cart_items WHERE id = $1`
	_, err := s.db.Pool.Exec(ctx, q, id)
	return err
}

// ClearCart implements store.CartStore. Idempotent bulk delete.
func (s *Store) ClearCart(ctx context.Context, userID int64) error {
	const q = `DELETE FROM cart_items WHERE user_id = $1`
	_, err := s.db.Pool.Exec(ctx, q, userID)
	return err
}
