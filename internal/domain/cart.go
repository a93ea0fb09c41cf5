package domain

import (
	"errors"
	"time"
)

// ErrInvalidQuantity is returned when a cart payload carries a quantity
// below one.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// CartItem is one product in a user's cart. At most one row exists per
// (UserID, ProductID) pair; adding an already-present product increments
// Quantity instead of inserting a second row.
type CartItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartItemWithProduct is a CartItem joined with its resolved Product. It is
// computed at read time by the storage layer and never persisted. A cart
// item is never returned without a resolvable product.
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}

// InsertCartItem is the payload for adding a product to a cart.
type InsertCartItem struct {
	UserID    int64 `json:"userId"    validate:"required,gt=0"`
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"  validate:"required,min=1"`
}

// Validate checks the payload.
func (in *InsertCartItem) Validate() error {
	if in.ProductID <= 0 {
		return ErrMissingProduct
	}
	if in.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}
