package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cerbhq/cerberus/pkg/audit"
	"github.com/cerbhq/cerberus/pkg/keys"
	"github.com/cerbhq/cerberus/pkg/principal"
)

// exemptPrefixes are served without a credential: provisioning, key
// management, documentation, and health.
var exemptPrefixes = []string{
	"/bootstrap",
	"/api-keys",
	"/docs",
	"/status",
}

// APIKeyAuthenticator is middleware that validates bearer API keys
type APIKeyAuthenticator struct {
	Keys *keys.Service
}

// NewAPIKeyAuthenticator creates a new API key authenticator middleware
func NewAPIKeyAuthenticator(keyService *keys.Service) *APIKeyAuthenticator {
	return &APIKeyAuthenticator{Keys: keyService}
}

func exempt(path string) bool {
	if path == "/" {
		return true
	}
	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// Middleware returns an HTTP middleware that resolves the bearer API key
// into a request principal. Requests to exempt paths pass through untouched.
func (a *APIKeyAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if exempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			audit.Log(audit.AuthenticateEvent{
				ClientIP:     r.RemoteAddr,
				ErrorMessage: "missing authorization header",
			})
			unauthorized(w, "Missing Authorization header")
			return
		}

		const scheme = "Bearer "
		if len(authHeader) < len(scheme) || !strings.EqualFold(authHeader[:len(scheme)], scheme) {
			audit.Log(audit.AuthenticateEvent{
				ClientIP:     r.RemoteAddr,
				ErrorMessage: "malformed authorization header",
			})
			unauthorized(w, "Invalid Authorization header format. Expected: Bearer <api-key>")
			return
		}

		key := a.Keys.Validate(authHeader[len(scheme):])
		if key == nil {
			audit.Log(audit.AuthenticateEvent{
				ClientIP:     r.RemoteAddr,
				ErrorMessage: "invalid api key",
			})
			unauthorized(w, "Invalid or expired API key")
			return
		}

		audit.Log(audit.AuthenticateEvent{
			ApiKeyID: key.ID.String(),
			TenantID: key.TenantID.String(),
			ClientIP: r.RemoteAddr,
			Success:  true,
		})

		p := principal.FromKey(key).WithRemoteAddr(r.RemoteAddr)
		r = r.WithContext(principal.Set(r.Context(), p))

		next.ServeHTTP(w, r)
	})
}
