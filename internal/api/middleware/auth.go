package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/citynights/server/internal/api/problem"
	"github.com/citynights/server/internal/auth"
)

type claimsKey string

const authClaimsKey claimsKey = "authClaims"

var errNoClaims = errors.New("no authenticated claims")

// JWTAuth validates Bearer tokens from the Authorization header and stores
// the verified claims in the request context.
func JWTAuth(manager *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				problem.Unauthorized(w, r, auth.ErrMissingToken, env)
				return
			}

			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				problem.Unauthorized(w, r, err, env)
				return
			}

			claims, err := manager.Validate(token)
			if err != nil {
				problem.Unauthorized(w, r, err, env)
				return
			}

			ctx := ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated requests whose token role is not in the
// allowed set. Must run after JWTAuth.
func RequireRole(env string, roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				problem.Unauthorized(w, r, errNoClaims, env)
				return
			}
			if !auth.HasRole(claims.Role, roles...) {
				problem.Forbidden(w, r, nil, env)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ContextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, authClaimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) *auth.Claims {
	if claims, ok := ctx.Value(authClaimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
