package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shopfront-dev/shopfront/internal/api/shared"
	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// CartHandler serves the authenticated cart endpoints. All operations are
// scoped to the caller's user ID from the request context.
type CartHandler struct {
	selector *store.Selector
	logger   *slog.Logger
}

// NewCartHandler builds the handler.
func NewCartHandler(selector *store.Selector, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{
		selector: selector,
		logger:   logger.With(slog.String("component", "cart_handler")),
	}
}

// GetCart handles GET /api/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	items, err := h.selector.Active().GetCartItems(r.Context(), userID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// AddItem handles POST /api/cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req AddToCartRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.ValidationDetail(err))
		return
	}

	item, err := h.selector.Active().AddToCart(r.Context(), &domain.InsertCartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, item)
}

// resolveOwnCartItem checks that id names a row in the caller's own cart.
// Foreign and unknown ids both come back as ErrCartItemNotFound, so a row id
// leaks nothing about other users' carts.
func (h *CartHandler) resolveOwnCartItem(ctx context.Context, userID, id int64) error {
	items, err := h.selector.Active().GetCartItems(ctx, userID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID == id {
			return nil
		}
	}
	return store.ErrCartItemNotFound
}

// UpdateItem handles PUT /api/cart/{id}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, SafeErrorMessage(store.ErrCartItemNotFound))
		return
	}

	var req UpdateCartItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.ValidationDetail(err))
		return
	}

	if err := h.resolveOwnCartItem(r.Context(), userID, id); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}

	item, err := h.selector.Active().UpdateCartItem(r.Context(), id, req.Quantity)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// RemoveItem handles DELETE /api/cart/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, SafeErrorMessage(store.ErrCartItemNotFound))
		return
	}

	if err := h.resolveOwnCartItem(r.Context(), userID, id); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}

	if err := h.selector.Active().RemoveCartItem(r.Context(), id); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.selector.Active().ClearCart(r.Context(), userID); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
