package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/lotus-studio/lotus/internal/platform/httpx"
	"github.com/lotus-studio/lotus/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	codec     *TokenCodec
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, codec *TokenCodec) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		codec:     codec,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/register", h.handleRegister)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email,max=50"`
	FirstName string `json:"firstName" validate:"required,min=3,max=20"`
	LastName  string `json:"lastName" validate:"required,min=3,max=20"`
	Password  string `json:"password" validate:"required,min=6,max=40"`
}

type jwtResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteUnauthorized(w, r, "Bad credentials")
		return
	}

	token, err := h.codec.Issue(user.Email, time.Now())
	if err != nil {
		h.logger.Error("issue token", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// The admin flag reflects the stored account at login time; when the
	// re-resolve fails the response degrades to admin=false.
	admin := false
	if stored, err := h.service.Resolve(r.Context(), user.Email); err == nil {
		admin = stored.Admin
	}

	httpx.JSON(w, http.StatusOK, jwtResponse{
		Token:     token,
		Type:      "Bearer",
		ID:        user.ID,
		Username:  user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Admin:     admin,
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.service.Register(r.Context(), req.Email, req.FirstName, req.LastName, req.Password); err != nil {
		if errors.Is(err, shared.ErrEmailTaken) {
			httpx.Message(w, http.StatusBadRequest, "Error: Email is already taken!")
			return
		}
		h.logger.Error("register account", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	httpx.Message(w, http.StatusOK, "User registered successfully!")
}
