package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(42, "u-1", RoleAgent)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "u-1", claims.ProfileID)
	assert.Equal(t, RoleAgent, claims.Role)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var gotID uint
	var gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = UserID(r)
		gotRole = Role(r)
	})

	token, err := GenerateToken(7, "u-7", RoleAdmin)
	require.NoError(t, err)

	r := httptest.NewRequest("GET", "/companies", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	Middleware(next).ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), gotID)
	assert.Equal(t, RoleAdmin, gotRole)

	// No token.
	w = httptest.NewRecorder()
	Middleware(next).ServeHTTP(w, httptest.NewRequest("GET", "/companies", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := Middleware(RequireAdmin(next))

	agentToken, err := GenerateToken(1, "u-1", RoleAgent)
	require.NoError(t, err)
	r := httptest.NewRequest("DELETE", "/companies/1", nil)
	r.Header.Set("Authorization", "Bearer "+agentToken)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := GenerateToken(2, "u-2", RoleAdmin)
	require.NoError(t, err)
	r = httptest.NewRequest("DELETE", "/companies/1", nil)
	r.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRedirectPath(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", RedirectPath(RoleAdmin))
	assert.Equal(t, "/dashboard", RedirectPath(RoleClient))
	assert.Equal(t, "/dashboard", RedirectPath(RoleAgent))
}
