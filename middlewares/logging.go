package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailgate/internal"
)

// Logging returns middleware that logs one line per request with its
// method, path, status and duration. 5xx responses log at error level.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := http.StatusOK
			if rw, ok := c.Response().(*internal.ResponseWriter); ok {
				status = rw.Status()
			}
			if err != nil {
				if herr := internal.AsHTTPError(err); herr != nil {
					status = herr.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			c.Logger().Log(c, level, "request",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			)

			return err
		}
	}
}
