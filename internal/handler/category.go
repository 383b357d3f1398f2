package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ebarkhatov/shopkeep/internal/domain/category"
)

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type categoryRequest struct {
	Name string `json:"name"`
}

func toCategoryResponse(c category.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name}
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]categoryResponse, len(categories))
	for i, c := range categories {
		out[i] = toCategoryResponse(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.categories.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*c))
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	c := &category.Category{ID: uuid.New().String(), Name: req.Name}
	if err := h.categories.Create(r.Context(), c); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(*c))
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	c := &category.Category{ID: chi.URLParam(r, "id"), Name: req.Name}
	if err := h.categories.Update(r.Context(), c); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*c))
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
