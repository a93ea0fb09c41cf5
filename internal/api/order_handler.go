package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopfront-dev/shopfront/internal/api/shared"
	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// OrderHandler serves checkout and order history.
type OrderHandler struct {
	selector *store.Selector
	logger   *slog.Logger
}

// NewOrderHandler builds the handler.
func NewOrderHandler(selector *store.Selector, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandler{
		selector: selector,
		logger:   logger.With(slog.String("component", "order_handler")),
	}
}

// orderLine is the line-item shape snapshotted into Order.Items at checkout.
type orderLine struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Create handles POST /api/orders. The order is built from the caller's
// server-side cart: line items and the total are snapshotted from the cart
// contents, then the cart is cleared.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateOrderRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.ValidationDetail(err))
		return
	}

	backend := h.selector.Active()
	cart, err := backend.GetCartItems(r.Context(), userID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	if len(cart) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "cart is empty")
		return
	}

	lines := make([]orderLine, 0, len(cart))
	var total float64
	for _, item := range cart {
		lines = append(lines, orderLine{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
		})
		total += item.Product.Price * float64(item.Quantity)
	}
	items, err := json.Marshal(lines)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "failed to snapshot cart")
		return
	}

	order, err := backend.CreateOrder(r.Context(), &domain.InsertOrder{
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}

	// Clearing the cart is best effort; the order already exists.
	if err := backend.ClearCart(r.Context(), userID); err != nil {
		h.logger.Warn("failed to clear cart after checkout",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
	}

	h.logger.Info("order created",
		slog.Int64("order_id", order.ID),
		slog.String("reference", order.Reference),
		slog.Int64("user_id", userID))
	shared.RespondWithJSON(w, r, http.StatusCreated, order)
}

// Get handles GET /api/orders/{id}. Users can only read their own orders;
// admins can read any.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, SafeErrorMessage(store.ErrOrderNotFound))
		return
	}

	order, err := h.selector.Active().GetOrderByID(r.Context(), id)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	if order.UserID != userID && shared.GetUserRole(r.Context()) != domain.RoleAdmin {
		// A foreign order id reads as absent, not forbidden.
		shared.RespondWithError(w, r, http.StatusNotFound, SafeErrorMessage(store.ErrOrderNotFound))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, order)
}

// List handles GET /api/orders, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	orders, err := h.selector.Active().GetUserOrders(r.Context(), userID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, orders)
}
