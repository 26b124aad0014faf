package auth

import (
	"context"
	"net/http"
)

// contextKey is package-private so no other package can read or shadow
// the operator value in a request context.
type contextKey string

const operatorKey contextKey = "operator"

// SessionCookie is the name of the HttpOnly cookie carrying the
// operator session JWT.
const SessionCookie = "token"

// RequireAuth guards the admin routes. It reads the session cookie,
// validates the JWT and stores the operator login in the request
// context; a missing or invalid token stops the chain with a 401.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operator, err := extractOperator(r, tokens)
			if err != nil {
				http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), operatorKey, operator)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OperatorFromContext returns the authenticated operator login, if the
// request carried a valid session.
func OperatorFromContext(ctx context.Context) (string, bool) {
	operator, ok := ctx.Value(operatorKey).(string)
	return operator, ok && operator != ""
}

func extractOperator(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", err
	}
	return tokens.Validate(cookie.Value)
}
