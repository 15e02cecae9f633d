package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"propertyhub-api/prometheus"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "OK",
		"message":   "PropertyHub API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// MetricsHandler exposes the Prometheus metrics endpoint
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
