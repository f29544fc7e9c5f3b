package middleware

import (
	"net/http"
	"time"

	"academy/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latency per route template.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates the request instrumentation middleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Observe must wrap the logger middleware so the response status is final when it runs.
func (m *MetricsMiddleware) Observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		status := c.Response().Status
		if status == 0 {
			status = http.StatusOK
		}
		m.metrics.ObserveRequest(c.Request().Method, route, status, time.Since(start))

		return nil
	}
}
