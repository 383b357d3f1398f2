package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/ebarkhatov/shopkeep/internal/domain/category"
	"github.com/ebarkhatov/shopkeep/internal/domain/order"
	"github.com/ebarkhatov/shopkeep/internal/domain/product"
	"github.com/ebarkhatov/shopkeep/internal/domain/user"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Code: status, Message: message})
}

func badRequest(w http.ResponseWriter, message string) {
	writeErrorResponse(w, http.StatusBadRequest, message)
}

// writeError maps a domain error to its HTTP reply: 404 for missing target
// records, 400 for caller errors (missing fields, unresolved references,
// invalid quantities or prices), 500 for everything else. Unexpected errors
// are logged with the request-scoped logger and never echoed to the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, category.ErrNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, order.ErrNotFound):
		writeErrorResponse(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, product.ErrNegativePrice):
		badRequest(w, err.Error())
		return
	}

	var (
		missingErr  *order.MissingFieldError
		refErr      *order.InvalidReferenceError
		qtyErr      *order.InvalidQuantityError
		categoryErr *product.CategoryNotFoundError
	)
	switch {
	case errors.As(err, &missingErr),
		errors.As(err, &refErr),
		errors.As(err, &qtyErr),
		errors.As(err, &categoryErr):
		badRequest(w, err.Error())
		return
	}

	zctx.From(r.Context()).Error("request failed", zap.Error(err))
	writeErrorResponse(w, http.StatusInternalServerError, "internal error")
}
