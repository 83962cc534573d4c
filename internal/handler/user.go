package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shoplane/orders-api/internal/domain/user"
)

type userJSON struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserJSON(u *user.User) userJSON {
	return userJSON{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

type registerUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.users.Register(r.Context(), req.Email, req.Name)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserJSON(u))
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserJSON(u))
}
