package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/shoplane/orders-api/internal/domain/product"
)

type productJSON struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func toProductJSON(p *product.Product) productJSON {
	return productJSON{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Price:     p.Price,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
	}
}

type createProductRequest struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := h.products.CreateProduct(r.Context(), product.CreateProductRequest{
		Name:     req.Name,
		SKU:      req.SKU,
		Price:    req.Price,
		Category: req.Category,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductJSON(p))
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductJSON(p))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]productJSON, len(products))
	for i := range products {
		out[i] = toProductJSON(&products[i])
	}
	writeJSON(w, http.StatusOK, out)
}
