package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type discountCodeJSON struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// getDiscountCode reports whether a promotional code is known. It does not
// gate applying discounts to orders; it backs storefront code validation.
func (h *Handler) getDiscountCode(w http.ResponseWriter, r *http.Request) {
	c, err := h.discounts.Validate(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, discountCodeJSON{Code: c.Code, Description: c.Description})
}
