package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/token"
)

func echoIdentity(w http.ResponseWriter, r *http.Request) {
	respondOK(w, http.StatusOK, userIDFromContext(r.Context()), nil)
}

func TestJWTAuth_RejectsMissingHeader(t *testing.T) {
	tokens := token.NewManager("secret", time.Minute, time.Hour)
	handler := JWTAuth(tokens)(http.HandlerFunc(echoIdentity))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_RejectsRefreshTokenOnProtectedRoute(t *testing.T) {
	tokens := token.NewManager("secret", time.Minute, time.Hour)
	pair, err := tokens.GeneratePair("u1", entity.RoleCustomer)
	require.NoError(t, err)

	handler := JWTAuth(tokens)(http.HandlerFunc(echoIdentity))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_PassesIdentityToHandler(t *testing.T) {
	tokens := token.NewManager("secret", time.Minute, time.Hour)
	pair, err := tokens.GeneratePair("u1", entity.RoleCustomer)
	require.NoError(t, err)

	handler := JWTAuth(tokens)(http.HandlerFunc(echoIdentity))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "u1")
}

func TestRequireRole_BlocksOtherRoles(t *testing.T) {
	tokens := token.NewManager("secret", time.Minute, time.Hour)
	pair, err := tokens.GeneratePair("u1", entity.RoleCustomer)
	require.NoError(t, err)

	handler := JWTAuth(tokens)(RequireRole(entity.RoleVendor)(http.HandlerFunc(echoIdentity)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
