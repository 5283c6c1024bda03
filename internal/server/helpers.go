package server

import (
	"errors"
	"net/http"

	"suplementi-be/internal/order"
	"suplementi-be/internal/product"
	"suplementi-be/internal/user"
	"suplementi-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

// writeError maps domain errors onto HTTP responses. The insufficient-stock
// payload keeps the structured fields so the admin UI can build its
// message.
func writeError(w http.ResponseWriter, err error) {
	var stockErr *order.InsufficientStockError
	if errors.As(err, &stockErr) {
		utils.WriteJSON(w, http.StatusConflict, map[string]any{
			"error":        stockErr.Error(),
			"product_name": stockErr.ProductName,
			"available":    stockErr.Available,
			"required":     stockErr.Required,
		})
		return
	}

	switch {
	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, user.ErrUserNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, product.ErrInvalidStockInput):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, utils.ErrForbidden):
		utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, user.ErrInvalidCredentials):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, user.ErrCooldownActive):
		utils.WriteJSONError(w, err.Error(), http.StatusTooManyRequests)
	case errors.Is(err, order.ErrStatusConflict),
		errors.Is(err, user.ErrAlreadyVerified):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

func pathID(r *http.Request, param string) (uint, bool) {
	id, err := utils.ToUint(chi.URLParam(r, param))
	return id, err == nil
}
