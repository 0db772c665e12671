package middleware

import (
	"context"
	"net/http"
	"strings"

	"piqueunique/internal/identity"
	httputil "piqueunique/pkg/http"
	"piqueunique/pkg/logger"
)

const identityKey contextKey = "identity"

// Authentication verifies the bearer credential when one is present and
// stores the resolved identity in the request context. Requests without an
// Authorization header pass through anonymously; handlers that require a
// caller enforce it themselves. An invalid credential is rejected here.
func Authentication(provider identity.Provider, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			bearer := strings.TrimPrefix(header, "Bearer ")
			ident, err := provider.Verify(r.Context(), bearer)
			if err != nil {
				log.Warn("Credential verification failed",
					"request_id", requestIDFrom(r),
					"path", r.URL.Path,
				)
				if writeErr := httputil.WriteError(w, err); writeErr != nil {
					log.Error("failed to write error response", "error", writeErr)
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the verified caller, or nil for anonymous requests.
func IdentityFrom(ctx context.Context) *identity.Identity {
	if v := ctx.Value(identityKey); v != nil {
		if ident, ok := v.(*identity.Identity); ok {
			return ident
		}
	}
	return nil
}
