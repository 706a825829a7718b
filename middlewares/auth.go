package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/dmitrymomot/mailgate/internal"
)

// AuthConfig configures bearer-key authentication.
type AuthConfig struct {
	// APIKey is the shared secret callers present as "Bearer <key>".
	APIKey string `env:"EMAIL_SERVICE_API_KEY"`

	// Required turns the check on. When false every request passes.
	Required bool `env:"REQUIRE_AUTH" envDefault:"true"`
}

// BearerAuth returns middleware that rejects requests whose Authorization
// header is not exactly "Bearer <APIKey>".
//
// With Required set and an empty APIKey no header can match, so every
// request is rejected. Rejections are written directly as
// 401 {"error": "Unauthorized"} without going through the error handler.
func BearerAuth(cfg AuthConfig) internal.Middleware {
	want := []byte("Bearer " + cfg.APIKey)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		if !cfg.Required {
			return next
		}

		return func(c internal.Context) error {
			got := c.Header("Authorization")
			if cfg.APIKey == "" || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				c.LogWarn("unauthorized request", "path", c.Request().URL.Path)
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			return next(c)
		}
	}
}
