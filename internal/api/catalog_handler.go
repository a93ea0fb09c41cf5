package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shopfront-dev/shopfront/internal/api/shared"
	"github.com/shopfront-dev/shopfront/internal/domain"
	"github.com/shopfront-dev/shopfront/internal/store"
)

// CatalogHandler serves the public browsing endpoints and the admin catalog
// writes.
type CatalogHandler struct {
	selector *store.Selector
	logger   *slog.Logger
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(selector *store.Selector, logger *slog.Logger) *CatalogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{
		selector: selector,
		logger:   logger.With(slog.String("component", "catalog_handler")),
	}
}

// pathID extracts the {id} URL parameter as an int64. Malformed and
// non-positive values fail the extraction; no entity carries such an id, so
// callers answer as if the id were simply absent.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// ListCategories handles GET /api/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.selector.Active().GetAllCategories(r.Context())
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categories)
}

// GetCategory handles GET /api/categories/{id}.
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, SafeErrorMessage(store.ErrCategoryNotFound))
		return
	}
	category, err := h.selector.Active().GetCategoryByID(r.Context(), id)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, category)
}

// CreateCategory handles POST /api/categories (admin).
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in domain.InsertCategory
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(&in); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.selector.Active().CreateCategory(r.Context(), &in)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, category)
}

// ListProducts handles GET /api/products, with optional ?category= and
// ?featured=true filters.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	backend := h.selector.Active()
	ctx := r.Context()

	var (
		products []domain.Product
		err      error
	)
	switch {
	case r.URL.Query().Get("featured") == "true":
		products, err = backend.GetFeaturedProducts(ctx)
	case r.URL.Query().Get("category") != "":
		categoryID, parseErr := strconv.ParseInt(r.URL.Query().Get("category"), 10, 64)
		if parseErr != nil || categoryID <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "invalid category filter")
			return
		}
		products, err = backend.GetProductsByCategory(ctx, categoryID)
	default:
		products, err = backend.GetAllProducts(ctx)
	}
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, SafeErrorMessage(store.ErrProductNotFound))
		return
	}
	product, err := h.selector.Active().GetProductByID(r.Context(), id)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// CreateProduct handles POST /api/products (admin).
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.InsertProduct
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(&in); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.selector.Active().CreateProduct(r.Context(), &in)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, product)
}

// ListProductReviews handles GET /api/products/{id}/reviews.
func (h *CatalogHandler) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, SafeErrorMessage(store.ErrProductNotFound))
		return
	}

	backend := h.selector.Active()
	// Confirm the product exists so an unknown id is a 404, not an empty list.
	if _, err := backend.GetProductByID(r.Context(), id); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}

	reviews, err := backend.GetReviewsByProductID(r.Context(), id)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, reviews)
}

// CreateProductReview handles POST /api/products/{id}/reviews.
func (h *CatalogHandler) CreateProductReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, SafeErrorMessage(store.ErrProductNotFound))
		return
	}

	var req CreateReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.ValidationDetail(err))
		return
	}

	backend := h.selector.Active()
	if _, err := backend.GetProductByID(r.Context(), id); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}

	review, err := backend.CreateReview(r.Context(), &domain.InsertReview{
		ProductID:    id,
		UserName:     req.UserName,
		UserImageURL: req.UserImageURL,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, review)
}

// ListTestimonials handles GET /api/testimonials.
func (h *CatalogHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.selector.Active().GetAllTestimonials(r.Context())
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, testimonials)
}

// CreateTestimonial handles POST /api/testimonials (admin).
func (h *CatalogHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var in domain.InsertTestimonial
	if err := shared.DecodeJSON(r, &in); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := shared.ValidateRequest(&in); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	testimonial, err := h.selector.Active().CreateTestimonial(r.Context(), &in)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), SafeErrorMessage(err))
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, testimonial)
}
