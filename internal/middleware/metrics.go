package middleware

import (
	"strconv"
	"time"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/metrics"
	"github.com/labstack/echo/v4"
)

// Metrics records request count and latency per route template
func Metrics() echo.MiddlewareFunc {
	m := metrics.Get()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				// the error handler has not written yet
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = 500
				}
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			statusStr := strconv.Itoa(status)
			method := c.Request().Method
			m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
			m.HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
