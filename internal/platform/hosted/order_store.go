package hosted

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// CreateOrder implements store.OrderStore. The public reference is generated
// here so that retrying on the relational path cannot mint a second one for
// the same checkout.
func (s *Store) CreateOrder(ctx context.Context, in *domain.InsertOrder) (*domain.Order, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	reference := uuid.NewString()
	status := in.StatusOrDefault()

	return withFallback(ctx, s.logger, "CreateOrder",
		func(ctx context.Context) (*domain.Order, error) {
			payload := map[string]any{
				"reference":        reference,
				"user_id":          in.UserID,
				"items":            json.RawMessage(in.Items),
				"status":           status,
				"total_amount":     in.TotalAmount,
				"shipping_address": in.ShippingAddress,
			}
			var row orderRow
			if err := s.client.Post(ctx, "orders", payload, &row); err != nil {
				return nil, err
			}
			o := row.toDomain()
			return &o, nil
		},
		func(ctx context.Context) (*domain.Order, error) {
			return s.createOrderRelational(ctx, in, reference, status)
		})
}

// createOrderRelational inserts with the already-minted reference instead of
// delegating to the relational store, which would generate its own.
func (s *Store) createOrderRelational(ctx context.Context, in *domain.InsertOrder, reference, status string) (*domain.Order, error) {
	const q = `
INSERT INTO orders (reference, user_id, items, status, total_amount, shipping_address)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	o := domain.Order{
		Reference:       reference,
		UserID:          in.UserID,
		Items:           in.Items,
		Status:          status,
		TotalAmount:     in.TotalAmount,
		ShippingAddress: in.ShippingAddress,
	}
	err := s.relational.DB().Pool.QueryRow(ctx, q,
		o.Reference, o.UserID, o.Items, o.Status, o.TotalAmount, o.ShippingAddress).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderByID implements store.OrderStore.
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	return withFallback(ctx, s.logger, "GetOrderByID",
		func(ctx context.Context) (*domain.Order, error) {
			var row orderRow
			if err := s.client.GetOne(ctx, "orders", eq("id", id), &row); err != nil {
				if IsNotFound(err) {
					return nil, store.ErrOrderNotFound
				}
				return nil, err
			}
			o := row.toDomain()
			return &o, nil
		},
		func(ctx context.Context) (*domain.Order, error) {
			return s.relational.GetOrderByID(ctx, id)
		})
}

// GetUserOrders implements store.OrderStore. Newest first, matching the
// relational ordering.
func (s *Store) GetUserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	return withFallback(ctx, s.logger, "GetUserOrders",
		func(ctx context.Context) ([]domain.Order, error) {
			query := eq("user_id", userID)
			query.Set("order", "created_at.desc")
			var rows []orderRow
			if err := s.client.Get(ctx, "orders", query, &rows); err != nil {
				return nil, err
			}
			out := make([]domain.Order, 0, len(rows))
			for _, r := range rows {
				out = append(out, r.toDomain())
			}
			return out, nil
		},
		func(ctx context.Context) ([]domain.Order, error) {
			return s.relational.GetUserOrders(ctx, userID)
		})
}
