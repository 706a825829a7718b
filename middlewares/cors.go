package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/mailgate/internal"
)

// CORSConfig configures the CORS middleware.
// The zero value allows every origin and echoes requested headers.
type CORSConfig struct {
	// AllowOrigins is the list of allowed origins. Empty or "*" allows all.
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`

	// AllowMethods lists the methods advertised on preflight.
	AllowMethods []string `env:"CORS_ALLOW_METHODS" envDefault:"GET,HEAD,POST,OPTIONS" envSeparator:","`

	// AllowHeaders lists the allowed request headers.
	// Empty echoes Access-Control-Request-Headers back.
	AllowHeaders []string `env:"CORS_ALLOW_HEADERS" envSeparator:","`

	// AllowCredentials sets Access-Control-Allow-Credentials.
	AllowCredentials bool `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`

	// MaxAge is how long a preflight response may be cached. Zero omits the header.
	MaxAge time.Duration `env:"CORS_MAX_AGE" envDefault:"0s"`
}

var defaultCORSMethods = []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions}

// CORS returns middleware that answers preflight requests and adds
// Access-Control headers to cross-origin responses.
// Allowed origins are echoed back rather than sent as "*".
func CORS(cfg CORSConfig) internal.Middleware {
	anyOrigin := len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*")

	methods := cfg.AllowMethods
	if len(methods) == 0 {
		methods = defaultCORSMethods
	}
	allowMethods := strings.Join(methods, ", ")
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.MaxAge.Seconds()))

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			if origin == "" {
				return next(c)
			}

			h := c.Response().Header()
			h.Add("Vary", "Origin")

			// Disallowed origins get no CORS headers; the browser blocks the response.
			if !anyOrigin && !slices.Contains(cfg.AllowOrigins, origin) {
				return next(c)
			}

			h.Set("Access-Control-Allow-Origin", origin)
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}

			preflight := c.Request().Method == http.MethodOptions &&
				c.Header("Access-Control-Request-Method") != ""
			if !preflight {
				return next(c)
			}

			h.Set("Access-Control-Allow-Methods", allowMethods)
			switch {
			case allowHeaders != "":
				h.Set("Access-Control-Allow-Headers", allowHeaders)
			case c.Header("Access-Control-Request-Headers") != "":
				h.Set("Access-Control-Allow-Headers", c.Header("Access-Control-Request-Headers"))
			}
			if cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", maxAge)
			}

			return c.NoContent(http.StatusNoContent)
		}
	}
}
