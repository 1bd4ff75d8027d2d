// Package rbac gates routes on the role carried in the access token.
package rbac

import (
	"net/http"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/pkg/middleware"
	"github.com/beshgebeya/pos/pkg/response"
)

// HasRole allows only callers whose token role is one of roles.
// It must be mounted after middleware.AuthMiddleware.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok || !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Admin is HasRole(models.RoleAdmin).
func Admin(next http.Handler) http.Handler {
	return HasRole(models.RoleAdmin)(next)
}

// Guest rejects callers that already carry verified claims.
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.UserIDFromCtx(r); ok {
			response.Error(w, http.StatusConflict, "Already authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
