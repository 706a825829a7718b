package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/internal"
	"github.com/dmitrymomot/mailgate/middlewares"
)

func runCORS(t *testing.T, cfg middlewares.CORSConfig, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	rec := httptest.NewRecorder()
	called := false
	err := middlewares.CORS(cfg)(func(c internal.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(newTestContext(rec, req))
	require.NoError(t, err)
	return rec, called
}

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("no origin leaves response untouched", func(t *testing.T) {
		t.Parallel()

		rec, called := runCORS(t, middlewares.CORSConfig{}, httptest.NewRequest(http.MethodPost, "/send", nil))
		assert.True(t, called)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("any origin is echoed", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/send", nil)
		req.Header.Set("Origin", "https://app.stockfolio.io")

		rec, called := runCORS(t, middlewares.CORSConfig{AllowOrigins: []string{"*"}}, req)
		assert.True(t, called)
		assert.Equal(t, "https://app.stockfolio.io", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("disallowed origin gets no headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/send", nil)
		req.Header.Set("Origin", "https://evil.example")

		rec, called := runCORS(t, middlewares.CORSConfig{AllowOrigins: []string{"https://app.stockfolio.io"}}, req)
		assert.True(t, called)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight echoes requested headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "/send", nil)
		req.Header.Set("Origin", "https://app.stockfolio.io")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

		rec, called := runCORS(t, middlewares.CORSConfig{MaxAge: time.Hour, AllowCredentials: true}, req)
		assert.False(t, called)
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "GET, HEAD, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Authorization, Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight with fixed headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "/send", nil)
		req.Header.Set("Origin", "https://app.stockfolio.io")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "X-Anything")

		cfg := middlewares.CORSConfig{
			AllowMethods: []string{http.MethodPost},
			AllowHeaders: []string{"Authorization", "Content-Type"},
		}
		rec, _ := runCORS(t, cfg, req)
		assert.Equal(t, "POST", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Authorization, Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Empty(t, rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("plain OPTIONS is not a preflight", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "/send", nil)
		req.Header.Set("Origin", "https://app.stockfolio.io")

		_, called := runCORS(t, middlewares.CORSConfig{}, req)
		assert.True(t, called)
	})
}
