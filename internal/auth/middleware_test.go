package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotus-studio/lotus/internal/accounts"
	"github.com/lotus-studio/lotus/internal/shared"
)

func newTestMiddleware(t *testing.T, ttl time.Duration, users ...*accounts.User) (*Middleware, *TokenCodec) {
	t.Helper()
	codec := NewTokenCodec("testSecretKeyForTokens1234567890", ttl)
	service := NewService(newStubStore(users...))
	return NewMiddleware(nil, codec, service), codec
}

func identityProbe(captured **shared.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = shared.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingHeader(t *testing.T) {
	mw, _ := newTestMiddleware(t, time.Hour)

	var identity *shared.Identity
	res := httptest.NewRecorder()
	mw.Authenticate(identityProbe(&identity)).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/api/session", nil))

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Nil(t, identity)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	mw, _ := newTestMiddleware(t, time.Hour)

	var identity *shared.Identity
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	res := httptest.NewRecorder()
	mw.Authenticate(identityProbe(&identity)).ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Nil(t, identity)
}

func TestAuthenticateUnresolvableSubject(t *testing.T) {
	mw, codec := newTestMiddleware(t, time.Hour)

	token, err := codec.Issue("deleted@example.com", time.Now())
	require.NoError(t, err)

	var identity *shared.Identity
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	mw.Authenticate(identityProbe(&identity)).ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Nil(t, identity)
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	mw, codec := newTestMiddleware(t, time.Hour, &accounts.User{
		ID:    3,
		Email: "user@example.com",
		Admin: true,
	})

	token, err := codec.Issue("user@example.com", time.Now())
	require.NoError(t, err)

	var identity *shared.Identity
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	mw.Authenticate(identityProbe(&identity)).ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	require.NotNil(t, identity)
	assert.Equal(t, int64(3), identity.ID)
	assert.Equal(t, "user@example.com", identity.Email)
	assert.True(t, identity.Admin)
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	mw, _ := newTestMiddleware(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/session/1", nil)
	res := httptest.NewRecorder()
	mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for anonymous request")
	})).ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, float64(http.StatusUnauthorized), body["status"])
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Equal(t, "/api/session/1", body["path"])
	assert.NotEmpty(t, body["message"])
}

func TestExpiredTokenOnProtectedRoute(t *testing.T) {
	mw, codec := newTestMiddleware(t, -time.Minute, &accounts.User{
		ID:    1,
		Email: "user@example.com",
	})

	token, err := codec.Issue("user@example.com", time.Now())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/session/42", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()

	protected := mw.Authenticate(mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	})))
	protected.ServeHTTP(res, req)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "Unauthorized")
	assert.Contains(t, res.Body.String(), "/api/session/42")
}
