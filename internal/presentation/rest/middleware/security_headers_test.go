package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithSecurityHeaders(t *testing.T, method, target string, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := SecurityHeadersMiddleware()(next)(c)
	return rec, err
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestSecurityHeadersMiddleware_SetsAllHeaders(t *testing.T) {
	rec, err := serveWithSecurityHeaders(t, http.MethodPost, "/create-checkout-session", okHandler)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "1; mode=block", rec.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))

	// JSON APIではスクリプトを許可しない
	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'none'")
	assert.NotContains(t, csp, "script-src")
}

func TestSecurityHeadersMiddleware_HSTS(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		wantHSTS bool
	}{
		{
			name:     "HTTPSではHSTSを設定",
			target:   "https://example.com/create-checkout-session",
			wantHSTS: true,
		},
		{
			name:     "HTTPではHSTSを設定しない",
			target:   "http://example.com/create-checkout-session",
			wantHSTS: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := serveWithSecurityHeaders(t, http.MethodPost, tt.target, okHandler)
			require.NoError(t, err)

			hsts := rec.Header().Get("Strict-Transport-Security")
			if tt.wantHSTS {
				assert.Contains(t, hsts, "max-age=31536000")
				assert.Contains(t, hsts, "includeSubDomains")
			} else {
				assert.Empty(t, hsts)
			}
		})
	}
}

func TestSecurityHeadersMiddleware_ErrorHandling(t *testing.T) {
	rec, err := serveWithSecurityHeaders(t, http.MethodGet, "/create-checkout-session", func(c echo.Context) error {
		return echo.ErrMethodNotAllowed
	})
	assert.Error(t, err)

	// エラーが発生してもセキュリティヘッダーは設定される
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestSecurityHeadersMiddleware_SwaggerPath(t *testing.T) {
	swaggerPaths := []string{"/swagger", "/swagger/index.html", "/swagger/doc.json", "/redoc", "/openapi.yaml"}

	for _, path := range swaggerPaths {
		t.Run(path, func(t *testing.T) {
			rec, err := serveWithSecurityHeaders(t, http.MethodGet, path, okHandler)
			require.NoError(t, err)

			// Swaggerパスでは外部CDNが許可されるCSPが設定される
			csp := rec.Header().Get("Content-Security-Policy")
			assert.Contains(t, csp, "https://unpkg.com")
			assert.Contains(t, csp, "https://cdn.jsdelivr.net")
			assert.Contains(t, csp, "https://fonts.googleapis.com")
		})
	}
}

func TestIsSwaggerPath(t *testing.T) {
	assert.True(t, isSwaggerPath("/swagger/index.html"))
	assert.False(t, isSwaggerPath("/swaggerish"))
	assert.False(t, isSwaggerPath("/create-checkout-session"))
}
