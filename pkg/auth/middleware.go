package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/surest/member-service/pkg/login"
	"github.com/surest/member-service/pkg/token"
)

// Verifier parses and verifies a bearer token from the Authorization header.
// It stores the outcome in the request context and always passes the request
// on: the reject decision belongs to the authorization gate, not the filter.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verifier(ja)
}

// Middleware installs a security principal for requests that carry a valid
// bearer token.
type Middleware struct {
	tokens      *token.Service
	credentials login.CredentialRepository
}

func NewMiddleware(tokens *token.Service, credentials login.CredentialRepository) *Middleware {
	return &Middleware{
		tokens:      tokens,
		credentials: credentials,
	}
}

// Principal runs once per request, after Verifier. Requests without a bearer
// credential, with an invalid or expired token, or whose subject resolves to
// no stored credential pass through unauthenticated. An already-installed
// principal is never overwritten.
func (m *Middleware) Principal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, ok := FromContext(ctx); ok {
			next.ServeHTTP(w, r)
			return
		}

		raw := jwtauth.TokenFromHeader(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		_, claims, err := jwtauth.FromContext(ctx)
		if err != nil || claims == nil {
			// Malformed or expired token: degrade to unauthenticated,
			// the gate rejects later if the endpoint needs a role.
			next.ServeHTTP(w, r)
			return
		}

		subject, _ := claims["sub"].(string)
		if subject == "" {
			next.ServeHTTP(w, r)
			return
		}

		cred, err := m.credentials.GetByUsername(ctx, subject)
		if err != nil {
			slog.Debug("bearer token subject has no stored credential", "subject", subject)
			next.ServeHTTP(w, r)
			return
		}

		if !m.tokens.Valid(subject, cred.Username, raw) {
			next.ServeHTTP(w, r)
			return
		}

		authUser := &AuthUser{
			Username: cred.Username,
			Roles:    cred.Roles,
		}
		next.ServeHTTP(w, r.WithContext(WithAuthUser(ctx, authUser)))
	})
}
