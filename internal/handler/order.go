package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ebarkhatov/shopkeep/internal/domain/order"
)

type orderResponse struct {
	ID     string       `json:"id"`
	UserID string       `json:"userId"`
	Items  []order.Item `json:"items"`
	Total  float64      `json:"total"`
}

type createOrderRequest struct {
	UserID string       `json:"userId"`
	Items  []order.Item `json:"items"`
}

// updateOrderRequest distinguishes absent fields from empty ones: a nil
// field is left untouched, a supplied items list always reprices the order.
type updateOrderRequest struct {
	UserID *string       `json:"userId"`
	Items  *[]order.Item `json:"items"`
}

func toOrderResponse(o order.Order) orderResponse {
	return orderResponse{
		ID:     o.ID,
		UserID: o.UserID,
		Items:  o.Items,
		Total:  o.Total.InexactFloat64(),
	}
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*o))
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	o, err := h.orders.Create(r.Context(), order.CreateRequest{
		UserID: req.UserID,
		Items:  req.Items,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(*o))
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	o, err := h.orders.Update(r.Context(), chi.URLParam(r, "id"), order.UpdateRequest{
		UserID: req.UserID,
		Items:  req.Items,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*o))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
