package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"propertyhub-api/pkg/jwtutil"
)

func runAuth(t *testing.T, authorization string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, AuthMiddleware(next)(c))
	return rec, c, called
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	rec, _, called := runAuth(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
	require.Contains(t, rec.Body.String(), "Access token is required")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	rec, _, called := runAuth(t, "Token abc.def.ghi")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, called)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec, _, called := runAuth(t, "Bearer not-a-real-token")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, called)
	require.Contains(t, rec.Body.String(), "Invalid or expired token")
}

func TestAuthMiddleware_ValidTokenSetsClaims(t *testing.T) {
	token, err := jwtutil.GenerateToken("64f0c1a2b3c4d5e6f7a8b9c0", "a@b.com", "seller")
	require.NoError(t, err)

	rec, c, called := runAuth(t, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
	require.Equal(t, "64f0c1a2b3c4d5e6f7a8b9c0", c.Get(UserIDKey))
	require.Equal(t, "a@b.com", c.Get(EmailKey))
	require.Equal(t, "seller", c.Get(UserTypeKey))
}
