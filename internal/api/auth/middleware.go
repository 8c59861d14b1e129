// filepath: internal/api/auth/middleware.go
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"filekit/internal/logging"

	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
)

// Actors recorded in the request context and audit events.
const (
	ActorAPIKey    = "api-key"
	ActorAnonymous = "anonymous"
)

// verifiedTTL bounds how long a verified key skips the bcrypt comparison.
const verifiedTTL = 5 * time.Minute

type actorKey struct{}

// ActorFromContext returns the actor set by AuthMiddleware.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok {
		return actor
	}
	return ActorAnonymous
}

// writeError sends a JSON error response.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Middleware checks a Bearer API key against a bcrypt hash.
type Middleware struct {
	hash     []byte
	verified *cache.Cache
}

// NewMiddleware creates a new instance of Middleware. An empty hash turns
// authentication off.
func NewMiddleware(apiKeyHash string) *Middleware {
	return &Middleware{
		hash:     []byte(apiKeyHash),
		verified: cache.New(verifiedTTL, 2*verifiedTTL),
	}
}

// Enabled reports whether requests need an API key.
func (m *Middleware) Enabled() bool {
	return len(m.hash) > 0
}

// AuthMiddleware rejects requests without a valid Bearer API key.
func (m *Middleware) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="restricted"`)
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		key := strings.TrimPrefix(authHeader, "Bearer ")
		if !m.verify(key) {
			logging.Log.Warnf("AuthMiddleware: Invalid API key from %s", r.RemoteAddr)
			writeError(w, http.StatusUnauthorized, "Invalid API key")
			return
		}

		ctx := context.WithValue(r.Context(), actorKey{}, ActorAPIKey)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verify compares key with the configured hash, remembering successes.
func (m *Middleware) verify(key string) bool {
	// Cache by digest so plaintext keys are never held in memory.
	sum := sha256.Sum256([]byte(key))
	cacheKey := hex.EncodeToString(sum[:])

	if _, ok := m.verified.Get(cacheKey); ok {
		return true
	}
	if err := bcrypt.CompareHashAndPassword(m.hash, []byte(key)); err != nil {
		return false
	}
	m.verified.SetDefault(cacheKey, true)
	return true
}

// HashKey returns the bcrypt hash to store in server.api_key_hash.
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
