package auth

import (
	"log/slog"
	"net/http"

	"github.com/surest/member-service/pkg/apierror"
)

// RequireAnyRole permits the request only when the installed principal
// carries at least one of the required roles. No principal yields 401,
// insufficient roles yield 403.
func RequireAnyRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := FromContext(r.Context())
			if !ok {
				apierror.Respond(w, r, apierror.Unauthorized("authentication required"))
				return
			}

			if !user.HasAnyRole(roles...) {
				slog.Warn("principal lacks required role",
					"username", user.Username,
					"roles", user.Roles,
					"required", roles)
				apierror.Respond(w, r, apierror.Forbidden("you do not have permission to access this resource"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
