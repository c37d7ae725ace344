package middleware

import (
	"net/http"
	"strings"

	"github.com/kiranshivaraju/fixit/internal/api/response"
	"github.com/kiranshivaraju/fixit/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// Auth checks Bearer tokens against the configured API keys.
type Auth struct {
	byPrefix map[string][]models.APIKey
}

// NewAuth creates a new Auth middleware from configured keys.
func NewAuth(keys []models.APIKey) *Auth {
	byPrefix := make(map[string][]models.APIKey, len(keys))
	for _, k := range keys {
		byPrefix[k.Prefix] = append(byPrefix[k.Prefix], k)
	}
	return &Auth{byPrefix: byPrefix}
}

// Authenticate validates the Bearer token and records the key prefix in the
// request context for rate limiting.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawKey := extractBearerToken(r)
		if rawKey == "" {
			response.Error(w, http.StatusUnauthorized,
				"INVALID_TOKEN", "Missing or invalid Authorization header", nil)
			return
		}

		if len(rawKey) < models.APIKeyPrefixLen {
			response.Error(w, http.StatusUnauthorized,
				"INVALID_TOKEN", "Invalid API key format", nil)
			return
		}

		prefix := rawKey[:models.APIKeyPrefixLen]

		// Find matching key by bcrypt comparison
		for _, key := range a.byPrefix[prefix] {
			if bcrypt.CompareHashAndPassword([]byte(key.KeyHash), []byte(rawKey)) == nil {
				next.ServeHTTP(w, r.WithContext(setKeyPrefix(r.Context(), prefix)))
				return
			}
		}

		response.Error(w, http.StatusUnauthorized,
			"INVALID_TOKEN", "Invalid API key", nil)
	})
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
