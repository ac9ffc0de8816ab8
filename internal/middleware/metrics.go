package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AlexGrady9/SuperShopBot/prometheus"
)

// MetricsMiddleware adds prometheus metrics to track HTTP requests
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Start timer for request duration
		start := time.Now()

		// Process request
		err := next(c)

		// Record metrics by method, route template and status
		duration := time.Since(start).Seconds()
		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		prometheus.RecordRequest(method, path, status, duration)

		return err
	}
}
