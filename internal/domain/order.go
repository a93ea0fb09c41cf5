package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// Order statuses. Only the storage-relevant states; payment-provider states
// live with the payment wrapper.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order validation errors.
var (
	ErrEmptyOrderItems  = errors.New("order items cannot be empty")
	ErrNegativeTotal    = errors.New("totalAmount cannot be negative")
	ErrEmptyShipAddress = errors.New("shippingAddress cannot be empty")
)

// Order is a completed checkout. Items is an opaque JSON snapshot of the
// purchased line items captured at creation time, so later catalog changes
// never retroactively alter historical orders. Reference is a public UUID
// used for customer-facing correlation; ID stays internal.
type Order struct {
	ID              int64           `json:"id"`
	Reference       string          `json:"reference"`
	UserID          int64           `json:"userId"`
	Items           json.RawMessage `json:"items"`
	Status          string          `json:"status"`
	TotalAmount     float64         `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// InsertOrder is the payload for creating an order. Status defaults to
// "pending" when empty.
type InsertOrder struct {
	UserID          int64           `json:"userId"          validate:"required,gt=0"`
	Items           json.RawMessage `json:"items"           validate:"required"`
	Status          string          `json:"status"          validate:"omitempty,oneof=pending paid shipped delivered cancelled"`
	TotalAmount     float64         `json:"totalAmount"     validate:"gte=0"`
	ShippingAddress string          `json:"shippingAddress" validate:"required"`
}

// Validate checks the payload.
func (in *InsertOrder) Validate() error {
	if len(in.Items) == 0 {
		return ErrEmptyOrderItems
	}
	if !json.Valid(in.Items) {
		return errors.New("order items must be valid JSON")
	}
	if in.TotalAmount < 0 {
		return ErrNegativeTotal
	}
	if in.ShippingAddress == "" {
		return ErrEmptyShipAddress
	}
	return nil
}

// StatusOrDefault returns the requested status, defaulting to pending.
func (in *InsertOrder) StatusOrDefault() string {
	if in.Status == "" {
		return OrderStatusPending
	}
	return in.Status
}
