package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"festivales/internal/metrics"
)

// statusOf returns the status the response will carry once err reaches
// echo's error handler.
func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func route(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return c.Request().URL.Path
}

// AccessLog writes one zap line per request. Server errors carry the
// underlying cause.
func AccessLog(l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			status := statusOf(c, err)
			fields := []zap.Field{
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", req.Method),
				zap.String("route", route(c)),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			}

			switch {
			case status >= http.StatusInternalServerError:
				var he *echo.HTTPError
				if errors.As(err, &he) && he.Internal != nil {
					fields = append(fields, zap.Error(he.Internal))
				} else if err != nil {
					fields = append(fields, zap.Error(err))
				}
				l.Error("HTTP", fields...)
			case status >= http.StatusBadRequest:
				l.Warn("HTTP", fields...)
			default:
				l.Info("HTTP", fields...)
			}
			return err
		}
	}
}

// Metrics records request counts and latency by route template.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			path := route(c)
			method := c.Request().Method
			metrics.HTTPRequests.WithLabelValues(path, method, strconv.Itoa(statusOf(c, err))).Inc()
			metrics.HTTPLatency.WithLabelValues(path, method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
