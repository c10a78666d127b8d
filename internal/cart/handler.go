package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/auth"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/httputil"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/logging"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Add puts a product into the caller's cart
// @Summary      Add to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AddRequest true "Product and quantity"
// @Success      201 {object} AddedItem
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Router       /cart/add [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "Authentication credentials were not provided.", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	item, err := h.service.Add(r.Context(), userID, req)
	if err != nil {
		var invalid *user.ValidationError
		if errors.As(err, &invalid) {
			httputil.RespondValidation(w, "Invalid input.", invalid.Fields)
			return
		}
		logger.Error("failed to add to cart", "error", err.Error())
		httputil.RespondInternal(w)
		return
	}

	logger.Info("cart item added", "user_id", userID, "product_id", item.Product, "quantity", item.Quantity)
	httputil.RespondJSON(w, item, http.StatusCreated)
}

// Remove deletes a product from the caller's cart
// @Summary      Remove from cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body RemoveRequest true "Product to remove"
// @Success      200 {object} httputil.MessageResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      404 {object} httputil.ErrorResponse "Cart or item not found"
// @Router       /cart/remove [post]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "Authentication credentials were not provided.", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	var req RemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	err := h.service.Remove(r.Context(), userID, req)
	if err != nil {
		var invalid *user.ValidationError
		switch {
		case errors.As(err, &invalid):
			httputil.RespondValidation(w, "Invalid input.", invalid.Fields)
		case errors.Is(err, ErrCartNotFound):
			httputil.RespondErrorWithCode(w, "Cart not found.", httputil.CodeNotFound, http.StatusNotFound)
		case errors.Is(err, ErrItemNotFound):
			httputil.RespondErrorWithCode(w, "Product not found in cart.", httputil.CodeNotFound, http.StatusNotFound)
		default:
			logger.Error("failed to remove from cart", "error", err.Error())
			httputil.RespondInternal(w)
		}
		return
	}

	httputil.RespondJSON(w, httputil.MessageResponse{Detail: "Product removed from cart successfully."}, http.StatusOK)
}

// List returns the caller's cart
// @Summary      Cart contents
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Contents
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Router       /cart [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "Authentication credentials were not provided.", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	contents, err := h.service.List(r.Context(), userID)
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("failed to list cart", "error", err.Error())
		httputil.RespondInternal(w)
		return
	}
	httputil.RespondJSON(w, contents, http.StatusOK)
}
