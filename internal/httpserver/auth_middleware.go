package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/security"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// WithUser returns a new context carrying the current user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// CurrentUser extracts the current user from context, if any.
func CurrentUser(r *http.Request) *domain.User {
	if v := r.Context().Value(userContextKey); v != nil {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}

// AuthMiddleware validates the Bearer token and attaches the resolved user
// to the request context. It is a hard gate: no downstream handler runs
// without an identity. A request without a token is rejected before any
// store access; expired, forged and malformed tokens are indistinguishable
// in the response. Internal logs keep the detail.
func AuthMiddleware(tokens *security.TokenService, users domain.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
				writeError(w, r, domain.ErrUnauthenticated)
				return
			}
			tokenStr := strings.TrimSpace(authHeader[len("Bearer "):])

			userID, err := tokens.ParseSubject(tokenStr)
			if err != nil {
				log.Debug().Err(err).Msg("token rejected")
				writeError(w, r, domain.ErrUnauthenticated)
				return
			}

			// The token may outlive the account it was issued for.
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				writeError(w, r, err)
				return
			}
			if user == nil {
				log.Debug().Int64("user_id", userID).Msg("token subject no longer exists")
				writeError(w, r, domain.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
