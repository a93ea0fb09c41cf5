// Package api contains the HTTP handlers, request/response models and
// middleware for the storefront's REST surface.
package api

import (
	"github.com/shopfront-dev/shopfront/internal/domain"
)

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name"     validate:"required"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// AddToCartRequest is the payload for POST /api/cart.
type AddToCartRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"  validate:"required,min=1"`
}

// UpdateCartItemRequest is the payload for PUT /api/cart/{id}.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest is the payload for POST /api/orders. The line items and
// total come from the user's server-side cart, not the request.
type CreateOrderRequest struct {
	ShippingAddress string `json:"shippingAddress" validate:"required"`
}

// CreateReviewRequest is the payload for POST /api/products/{id}/reviews.
type CreateReviewRequest struct {
	UserName     string `json:"userName"     validate:"required"`
	UserImageURL string `json:"userImageUrl" validate:"omitempty,url"`
	Rating       int    `json:"rating"       validate:"gte=0,lte=5"`
	Comment      string `json:"comment"      validate:"required"`
}

// MigrateResponse is returned by the admin migration trigger.
type MigrateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Backend string `json:"backend"`
	Copied  int    `json:"copied"`
	Failed  int    `json:"failed"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}
