package middleware

import (
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"propertyhub-api/pkg/config"
)

// Any localhost origin is allowed regardless of port; browser tooling and dev
// servers move ports freely.
var localOriginPattern = regexp.MustCompile(`^http://(localhost|127\.0\.0\.1):\d+$`)

// CORSMiddleware restricts cross-origin callers to the configured allow-list,
// with a carve-out for localhost origins.
func CORSMiddleware(cfg *config.CORSConfig) echo.MiddlewareFunc {
	allowed := cfg.AllowedOrigins()

	return echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			for _, o := range allowed {
				if origin == o {
					return true, nil
				}
			}
			return localOriginPattern.MatchString(origin), nil
		},
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	})
}
