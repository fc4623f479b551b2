package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/user"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			role := user.Role(roleStr)
			if !user.HasPermission(role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyPermission passes when the role holds at least one of permissions.
func RequireAnyPermission(permissions ...user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err == nil {
				roleStr, _ := claims["role"].(string)
				for _, p := range permissions {
					if user.HasPermission(user.Role(roleStr), p) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}
			response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required one of %v", permissions))
		})
	}
}
