package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestSecurity_SetsDefaults(t *testing.T) {
	rr := httptest.NewRecorder()
	Security(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rr.Header().Get("Content-Security-Policy"), "default-src 'self'")
}

func TestSecurity_HandlerOverrides(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Security-Policy", "custom")
		w.WriteHeader(http.StatusOK)
	})
	rr := httptest.NewRecorder()
	Security(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "custom", rr.Header().Get("Content-Security-Policy"))
}

func TestForceHTTPS(t *testing.T) {
	rr := httptest.NewRecorder()
	ForceHTTPS(true, ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://api.example.com/api?x=1", nil))
	assert.Equal(t, http.StatusPermanentRedirect, rr.Code)
	assert.Equal(t, "https://api.example.com/api?x=1", rr.Header().Get("Location"))

	rr = httptest.NewRecorder()
	ForceHTTPS(true, ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://localhost:5000/api", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "http://api.example.com/api", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rr = httptest.NewRecorder()
	ForceHTTPS(true, ok).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	ForceHTTPS(false, ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://api.example.com/api", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
