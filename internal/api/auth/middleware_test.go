// filepath: internal/api/auth/middleware_test.go
package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// actorEcho writes the actor the middleware put in the context.
var actorEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ActorFromContext(r.Context())))
})

func newTestMiddleware(t *testing.T, key string) *Middleware {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	require.NoError(t, err)
	return NewMiddleware(string(hash))
}

func TestAuthMiddleware(t *testing.T) {
	m := newTestMiddleware(t, "s3cret")
	handler := m.AuthMiddleware(actorEcho)

	testCases := []struct {
		name           string
		header         string
		expectedStatus int
		expectedBody   string
	}{
		{"Valid key", "Bearer s3cret", http.StatusOK, ActorAPIKey},
		{"Wrong key", "Bearer nope", http.StatusUnauthorized, `{"error":"Invalid API key"}`},
		{"Missing header", "", http.StatusUnauthorized, `{"error":"Authorization header required"}`},
		{"Basic scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, `{"error":"Invalid authorization header format"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/file", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.Equal(t, tc.expectedBody, rr.Body.String())
			} else {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestAuthMiddleware_MissingHeaderAdvertisesBearer(t *testing.T) {
	m := newTestMiddleware(t, "s3cret")
	rr := httptest.NewRecorder()

	m.AuthMiddleware(actorEcho).ServeHTTP(rr, httptest.NewRequest("GET", "/api/file", nil))

	assert.Equal(t, `Bearer realm="restricted"`, rr.Header().Get("WWW-Authenticate"))
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	m := NewMiddleware("")
	assert.False(t, m.Enabled())

	rr := httptest.NewRecorder()
	m.AuthMiddleware(actorEcho).ServeHTTP(rr, httptest.NewRequest("GET", "/api/file", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ActorAnonymous, rr.Body.String())
}

func TestVerify_CachesSuccess(t *testing.T) {
	m := newTestMiddleware(t, "s3cret")

	assert.True(t, m.verify("s3cret"))
	assert.Equal(t, 1, m.verified.ItemCount())

	// A cached digest is accepted without consulting the hash.
	m.hash = []byte("not-a-bcrypt-hash")
	assert.True(t, m.verify("s3cret"))

	assert.False(t, m.verify("other"))
	assert.Equal(t, 1, m.verified.ItemCount(), "Failures are never cached")
}

func TestHashKey(t *testing.T) {
	hash, err := HashKey("s3cret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}
