package auth

import (
	"context"
	"net/http"
	"strings"
)

// Roles assignable to a profile.
const (
	RoleAdmin  = "admin"
	RoleAgent  = "agent"
	RoleClient = "client"
)

type ctxKey string

const (
	CtxUserID ctxKey = "userID"
	CtxRole   ctxKey = "role"
)

// Middleware validates the bearer token and stores identity and role in the
// request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		claims, err := ValidateToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxRole, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests whose session role is not admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if role, _ := r.Context().Value(CtxRole).(string); role != RoleAdmin {
			http.Error(w, "forbidden (admin only)", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID extracts the session user id from the request context.
func UserID(r *http.Request) uint {
	id, _ := r.Context().Value(CtxUserID).(uint)
	return id
}

// Role extracts the session role from the request context.
func Role(r *http.Request) string {
	role, _ := r.Context().Value(CtxRole).(string)
	return role
}

// RedirectPath is the role-based landing route returned to the UI on login.
func RedirectPath(role string) string {
	if role == RoleAdmin {
		return "/admin/dashboard"
	}
	return "/dashboard"
}
