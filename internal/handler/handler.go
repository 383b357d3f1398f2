// Package handler exposes the service's resources over HTTP. Routing is
// chi; request and response bodies are plain JSON. Domain errors are mapped
// to status codes in respond.go.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ebarkhatov/shopkeep/internal/domain/category"
	"github.com/ebarkhatov/shopkeep/internal/domain/order"
	"github.com/ebarkhatov/shopkeep/internal/domain/product"
	"github.com/ebarkhatov/shopkeep/internal/domain/user"
)

// Handler holds the route handlers for all resources. Users and categories
// go straight to their repositories; products and orders go through their
// services, which own the referential checks and pricing.
type Handler struct {
	users      user.Repository
	categories category.Repository
	products   product.Repository
	productSvc *product.Service
	orders     *order.Service
}

// New constructs a Handler with the required dependencies.
func New(
	users user.Repository,
	categories category.Repository,
	products product.Repository,
	productSvc *product.Service,
	orders *order.Service,
) *Handler {
	return &Handler{
		users:      users,
		categories: categories,
		products:   products,
		productSvc: productSvc,
		orders:     orders,
	}
}

// Routes returns the router for all resource endpoints.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
		r.Get("/{id}", h.getUser)
		r.Put("/{id}", h.updateUser)
		r.Delete("/{id}", h.deleteUser)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Post("/", h.createCategory)
		r.Get("/{id}", h.getCategory)
		r.Put("/{id}", h.updateCategory)
		r.Delete("/{id}", h.deleteCategory)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/", h.createOrder)
		r.Get("/{id}", h.getOrder)
		r.Put("/{id}", h.updateOrder)
		r.Delete("/{id}", h.deleteOrder)
	})

	return r
}
