package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub-api/pkg/config"
)

func corsPreflight(t *testing.T, origin string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	cfg := config.CORSConfig{FrontendURL: "https://propertyhub.lk"}
	h := CORSMiddleware(&cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/properties", nil)
	req.Header.Set(echo.HeaderOrigin, origin)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestCORS_AllowListedOrigin(t *testing.T) {
	rec := corsPreflight(t, "https://propertyhub.lk")
	assert.Equal(t, "https://propertyhub.lk", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORS_LocalhostCarveOut(t *testing.T) {
	for _, origin := range []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:8080"} {
		rec := corsPreflight(t, origin)
		assert.Equal(t, origin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin), origin)
	}
}

func TestCORS_UnknownOriginRejected(t *testing.T) {
	for _, origin := range []string{"https://evil.example.com", "http://localhost.evil.com:3000"} {
		rec := corsPreflight(t, origin)
		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin), origin)
	}
}
