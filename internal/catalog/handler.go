package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/httputil"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/logging"
)

// Handler serves the public catalog.
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListCategories returns all active categories
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200 {array} Category
// @Router       /categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).WithError(err).Error("failed to list categories")
		httputil.RespondInternal(w)
		return
	}
	httputil.RespondJSON(w, categories, http.StatusOK)
}

// GetCategory returns a category by slug
// @Summary      Category detail
// @Tags         catalog
// @Produce      json
// @Param        slug path string true "Category slug"
// @Success      200 {object} Category
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /categories/{slug} [get]
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.repo.GetCategory(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "No Category matches the given query.", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logging.GetLoggerFromContext(r.Context()).WithError(err).Error("failed to get category")
		httputil.RespondInternal(w)
		return
	}
	httputil.RespondJSON(w, category, http.StatusOK)
}

// ListProducts returns a page of active products
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        category  query string false "Category slug"
// @Param        search    query string false "Matches name or description"
// @Param        page      query int    false "Page number, from 1"
// @Param        page_size query int    false "Page size, at most 100"
// @Success      200 {object} ProductPage
// @Failure      404 {object} httputil.ErrorResponse "Invalid page"
// @Router       /products [get]
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page := 1
	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httputil.RespondErrorWithCode(w, "Invalid page.", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		page = n
	}

	pageSize := DefaultPageSize
	if raw := query.Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageSize = n
		}
	}

	result, err := h.repo.ListProducts(r.Context(), ProductFilter{
		CategorySlug: query.Get("category"),
		Search:       query.Get("search"),
		Page:         page,
		PageSize:     pageSize,
	})
	if errors.Is(err, ErrPageOutOfRange) {
		httputil.RespondErrorWithCode(w, "Invalid page.", httputil.CodeNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).WithError(err).Error("failed to list products")
		httputil.RespondInternal(w)
		return
	}

	if result.Page > 1 && len(result.Results) == 0 {
		httputil.RespondErrorWithCode(w, "Invalid page.", httputil.CodeNotFound, http.StatusNotFound)
		return
	}

	httputil.RespondJSON(w, result, http.StatusOK)
}

// GetProduct returns a product by slug
// @Summary      Product detail
// @Tags         catalog
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} Product
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /products/{slug} [get]
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetProduct(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "No Product matches the given query.", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logging.GetLoggerFromContext(r.Context()).WithError(err).Error("failed to get product")
		httputil.RespondInternal(w)
		return
	}
	httputil.RespondJSON(w, product, http.StatusOK)
}

// Promoted serves one promotional list.
//
// @Summary      Promotional product lists
// @Description  /flash-sales, /product-of-the-day, /best-sellers and /attractive-offers
// @Tags         catalog
// @Produce      json
// @Success      200 {array} Product
// @Router       /flash-sales [get]
// @Router       /product-of-the-day [get]
// @Router       /best-sellers [get]
// @Router       /attractive-offers [get]
func (h *Handler) Promoted(promo Promotion) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := h.repo.ListPromoted(r.Context(), promo)
		if err != nil {
			logging.GetLoggerFromContext(r.Context()).WithError(err).Error("failed to list promoted products", "promotion", string(promo))
			httputil.RespondInternal(w)
			return
		}
		httputil.RespondJSON(w, products, http.StatusOK)
	}
}
