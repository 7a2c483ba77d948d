package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/facturaas/internal/auth"
	"github.com/MrJamesThe3rd/facturaas/internal/http/render"
	"github.com/MrJamesThe3rd/facturaas/internal/user"
)

type Handler struct {
	users  *user.Service
	tokens *auth.Tokens
}

func NewHandler(users *user.Service, tokens *auth.Tokens) *Handler {
	return &Handler{users: users, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int64        `json:"expires_in"`
	User      userResponse `json:"user"`
}

type userResponse struct {
	ID           uuid.UUID  `json:"id"`
	Login        string     `json:"login"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         auth.Role  `json:"role"`
	LastAccessAt *time.Time `json:"last_access_at,omitempty"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.Decode(r, &req); err != nil {
		render.Error(w, r, err)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	token, err := h.tokens.Issue(u.ID, u.Login)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, loginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(h.tokens.TTL().Seconds()),
		User: userResponse{
			ID:           u.ID,
			Login:        u.Login,
			Name:         u.Name,
			Email:        u.Email,
			Role:         u.Role,
			LastAccessAt: u.LastAccessAt,
		},
	})
}
