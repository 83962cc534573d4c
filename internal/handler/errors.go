package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/shoplane/orders-api/internal/domain/discount"
	"github.com/shoplane/orders-api/internal/domain/order"
	"github.com/shoplane/orders-api/internal/domain/product"
	"github.com/shoplane/orders-api/internal/domain/user"
)

// errorResponse is the wire shape of every error body. Message carries the
// stable domain message verbatim.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Code: code, Message: message})
}

// writeDomainError maps each domain error kind to its response code:
// validation 400, not found 404, conflict 409, illegal transition 422.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		orderVal   *order.ValidationError
		productVal *product.ValidationError
		userVal    *user.ValidationError
		transition *order.InvalidStateTransitionError
		productCfl *product.ConflictError
		userCfl    *user.ConflictError
	)

	switch {
	case errors.As(err, &orderVal),
		errors.As(err, &productVal),
		errors.As(err, &userVal):
		writeError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, discount.ErrUnknownCode):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.As(err, &productCfl), errors.As(err, &userCfl):
		writeError(w, http.StatusConflict, err.Error())

	case errors.As(err, &transition):
		writeError(w, http.StatusUnprocessableEntity, err.Error())

	default:
		zctx.From(r.Context()).Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
