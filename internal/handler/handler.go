// Package handler exposes the domain services over HTTP.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shoplane/orders-api/internal/domain/discount"
	"github.com/shoplane/orders-api/internal/domain/order"
	"github.com/shoplane/orders-api/internal/domain/product"
	"github.com/shoplane/orders-api/internal/domain/user"
)

// Handler routes API requests to the domain services and maps domain
// errors to response codes.
type Handler struct {
	orders    *order.Service
	products  *product.Service
	users     *user.Service
	discounts *discount.Validator
	security  *Security
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	orders *order.Service,
	products *product.Service,
	users *user.Service,
	discounts *discount.Validator,
	security *Security,
) *Handler {
	return &Handler{
		orders:    orders,
		products:  products,
		users:     users,
		discounts: discounts,
		security:  security,
	}
}

// Routes builds the API router. Reads are public; mutations require an
// API key when key auth is configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/users/{id}", h.getUser)
		r.Get("/users/{id}/orders", h.listUserOrders)
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)
		r.Get("/discounts/{code}", h.getDiscountCode)
		r.Get("/orders/{id}", h.getOrder)
		r.Get("/orders/{id}/total", h.getOrderTotal)
		r.Get("/stats/revenue", h.getRevenue)
		r.Get("/stats/orders", h.getOrderStats)

		r.Group(func(r chi.Router) {
			r.Use(h.security.Require)

			r.Post("/users", h.registerUser)
			r.Post("/products", h.createProduct)
			r.Post("/orders", h.createOrder)
			r.Post("/orders/{id}/confirm", h.confirmOrder)
			r.Post("/orders/{id}/payment", h.processPayment)
			r.Post("/orders/{id}/ship", h.shipOrder)
			r.Post("/orders/{id}/deliver", h.deliverOrder)
			r.Post("/orders/{id}/cancel", h.cancelOrder)
			r.Post("/orders/{id}/discount", h.applyDiscount)
		})
	})

	return r
}
