package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
)

type contextKey string

const (
	// TenantKey is the context key for the authenticated tenant
	TenantKey contextKey = "tenant"
	// APIKeyKey is the context key for the presented API key
	APIKeyKey contextKey = "api_key"
)

// APIKeyAuth validates the X-API-Key header against the per-tenant keys.
// The tenant comes from the URL; the key must match that tenant's entry.
func APIKeyAuth(keys map[string]string, tenantFromRequest func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(keys) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			tenant := tenantFromRequest(r)
			presented := r.Header.Get("X-API-Key")
			if presented == "" {
				http.Error(w, "missing API key", http.StatusUnauthorized)
				return
			}

			expected, ok := keys[tenant]
			if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) != 1 {
				http.Error(w, "invalid API key", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), TenantKey, tenant)
			ctx = context.WithValue(ctx, APIKeyKey, presented)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTenantFromContext extracts the authenticated tenant from the context
func GetTenantFromContext(ctx context.Context) string {
	if tenant, ok := ctx.Value(TenantKey).(string); ok {
		return tenant
	}
	return ""
}
