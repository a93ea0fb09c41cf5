package hosted

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// GetCartItems implements store.CartStore. The hosted primary performs the
// whole read, product joins included; a transport failure anywhere in the
// join discards the partial result and reruns the read entirely on the
// relational path, so a response never mixes rows from two backends.
func (s *Store) GetCartItems(ctx context.Context, userID int64) ([]domain.CartItemWithProduct, error) {
	return withFallback(ctx, s.logger, "GetCartItems",
		func(ctx context.Context) ([]domain.CartItemWithProduct, error) {
			return s.getCartItemsHosted(ctx, userID)
		},
		func(ctx context.Context) ([]domain.CartItemWithProduct, error) {
			return s.relational.GetCartItems(ctx, userID)
		})
}

func (s *Store) getCartItemsHosted(ctx context.Context, userID int64) ([]domain.CartItemWithProduct, error) {
	items, err := list(ctx, s.client, "cart_items", eq("user_id", userID), cartItemRow.toDomain)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CartItemWithProduct, 0, len(items))
	for _, item := range items {
		p, err := s.getProductHosted(ctx, item.ProductID)
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

// AddToCart implements store.CartStore. The hosted service has no atomic
// merge-or-insert, so the primary path reads the existing row and either
// patches its quantity or inserts a fresh one. The relational fallback keeps
// its single-statement upsert.
func (s *Store) AddToCart(ctx context.Context, in *domain.InsertCartItem) (*domain.CartItem, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	return withFallback(ctx, s.logger, "AddToCart",
		func(ctx context.Context) (*domain.CartItem, error) { return s.addToCartHosted(ctx, in) },
		func(ctx context.Context) (*domain.CartItem, error) { return s.relational.AddToCart(ctx, in) })
}

func (s *Store) addToCartHosted(ctx context.Context, in *domain.InsertCartItem) (*domain.CartItem, error) {
	if _, err := s.getProductHosted(ctx, in.ProductID); err != nil {
		return nil, err
	}

	query := eq("user_id", in.UserID)
	query.Set("product_id", "eq."+strconv.FormatInt(in.ProductID, 10))

	var existing cartItemRow
	err := s.client.GetOne(ctx, "cart_items", query, &existing)
	switch {
	case err == nil:
		var updated []cartItemRow
		patch := map[string]any{"quantity": existing.Quantity + in.Quantity}
		if err := s.client.Patch(ctx, "cart_items", eq("id", existing.ID), patch, &updated); err != nil {
			return nil, err
		}
		if len(updated) == 0 {
			// Row vanished between read and patch; retry as an insert.
			return s.insertCartItemHosted(ctx, in)
		}
		item := updated[0].toDomain()
		return &item, nil
	case IsNotFound(err):
		return s.insertCartItemHosted(ctx, in)
	default:
		return nil, err
	}
}

func (s *Store) insertCartItemHosted(ctx context.Context, in *domain.InsertCartItem) (*domain.CartItem, error) {
	payload := map[string]any{
		"user_id":    in.UserID,
		"product_id": in.ProductID,
		"quantity":   in.Quantity,
	}
	var row cartItemRow
	if err := s.client.Post(ctx, "cart_items", payload, &row); err != nil {
		return nil, err
	}
	item := row.toDomain()
	return &item, nil
}

// UpdateCartItem implements store.CartStore.
func (s *Store) UpdateCartItem(ctx context.Context, id int64, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, store.ErrInvalidQuantity
	}

	return withFallback(ctx, s.logger, "UpdateCartItem",
		func(ctx context.Context) (*domain.CartItem, error) {
			var updated []cartItemRow
			patch := map[string]any{"quantity": quantity}
			if err := s.client.Patch(ctx, "cart_items", eq("id", id), patch, &updated); err != nil {
				return nil, err
			}
			if len(updated) == 0 {
				return nil, store.ErrCartItemNotFound
			}
			item := updated[0].toDomain()
			return &item, nil
		},
		func(ctx context.Context) (*domain.CartItem, error) {
			return s.relational.UpdateCartItem(ctx, id, quantity)
		})
}

// RemoveCartItem implements store.CartStore. Idempotent on both paths.
func (s *Store) RemoveCartItem(ctx context.Context, id int64) error {
	return execFallback(ctx, s.logger, "RemoveCartItem",
		func(ctx context.Context) error { return s.client.Delete(ctx, "cart_items", eq("id", id)) },
		func(ctx context.Context) error { return s.relational.RemoveCartItem(ctx, id) })
}

// ClearCart implements store.CartStore.
func (s *Store) ClearCart(ctx context.Context, userID int64) error {
	return execFallback(ctx, s.logger, "ClearCart",
		func(ctx context.Context) error {
			return s.client.Delete(ctx, "cart_items", eq("user_id", userID))
		},
		func(ctx context.Context) error { return s.relational.ClearCart(ctx, userID) })
}
