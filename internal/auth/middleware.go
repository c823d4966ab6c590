package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/lotus-studio/lotus/internal/platform/httpx"
	"github.com/lotus-studio/lotus/internal/shared"
)

const bearerPrefix = "Bearer "

// Middleware authenticates inbound requests from the Authorization header.
type Middleware struct {
	logger  *slog.Logger
	codec   *TokenCodec
	service *Service
}

// NewMiddleware constructs the authentication middleware.
func NewMiddleware(logger *slog.Logger, codec *TokenCodec, service *Service) *Middleware {
	return &Middleware{logger: logger, codec: codec, service: service}
}

// Authenticate extracts and verifies a bearer token, attaching the resolved
// identity to the request context. Every failure degrades to an anonymous
// request; rejection is left to RequireAuth on protected routes.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			next.ServeHTTP(w, r)
			return
		}

		subject, err := m.codec.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			if m.logger != nil {
				m.logger.Debug("reject bearer token", slog.String("path", r.URL.Path))
			}
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.service.Resolve(r.Context(), subject)
		if err != nil {
			if m.logger != nil {
				m.logger.Debug("token subject not resolvable", slog.String("path", r.URL.Path))
			}
			next.ServeHTTP(w, r)
			return
		}

		identity := &shared.Identity{ID: user.ID, Email: user.Email, Admin: user.Admin}
		next.ServeHTTP(w, r.WithContext(shared.ContextWithIdentity(r.Context(), identity)))
	})
}

// RequireAuth rejects anonymous requests with the structured 401 body.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shared.IdentityFromContext(r.Context()) == nil {
			WriteUnauthorized(w, r, "Full authentication is required to access this resource")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type unauthorizedBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// WriteUnauthorized writes the fixed-shape authentication failure response.
func WriteUnauthorized(w http.ResponseWriter, r *http.Request, message string) {
	httpx.JSON(w, http.StatusUnauthorized, unauthorizedBody{
		Status:  http.StatusUnauthorized,
		Error:   "Unauthorized",
		Message: message,
		Path:    r.URL.Path,
	})
}
