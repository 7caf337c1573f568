package httpx

import (
	"net/http"
	"slices"

	"github.com/robochamp/backend/pkg/slogx"
)

// RequireRole gates a handler on the role claim set by AuthnMiddleware.
// Must be applied inside AuthnMiddleware in the chain.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if !slices.Contains(roles, role) {
				slogx.FromContext(r.Context()).Warn("role check failed",
					"role", role,
					"required", roles,
				)
				WriteError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
