package middlewares_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/portfolio-api/internal/http/middlewares"
	"github.com/geocoder89/portfolio-api/internal/observability"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantCredHdr string
	}{
		{name: "wildcard_get", allowed: []string{"*"}, method: http.MethodGet, origin: "http://site.dev", wantStatus: http.StatusOK, wantOrigin: "*"},
		{name: "wildcard_preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "http://site.dev", wantStatus: http.StatusNoContent, wantOrigin: "*"},
		{name: "listed_origin", allowed: []string{"http://site.dev"}, method: http.MethodGet, origin: "http://site.dev", wantStatus: http.StatusOK, wantOrigin: "http://site.dev", wantCredHdr: "true"},
		{name: "unlisted_origin", allowed: []string{"http://site.dev"}, method: http.MethodGet, origin: "http://evil.dev", wantStatus: http.StatusOK},
		{name: "no_origin", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(middlewares.CORSMiddleware(tt.allowed))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tt.method, "/x", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("got allow-origin %q, want %q", got, tt.wantOrigin)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCredHdr {
				t.Fatalf("got allow-credentials %q, want %q", got, tt.wantCredHdr)
			}
		})
	}
}

func TestRequireJSON(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		want        int
	}{
		{name: "post_json", method: http.MethodPost, contentType: "application/json", want: http.StatusOK},
		{name: "post_json_charset", method: http.MethodPost, contentType: "application/json; charset=utf-8", want: http.StatusOK},
		{name: "post_json_lookalike", method: http.MethodPost, contentType: "application/jsonp", want: http.StatusUnsupportedMediaType},
		{name: "post_form", method: http.MethodPost, contentType: "application/x-www-form-urlencoded", want: http.StatusUnsupportedMediaType},
		{name: "post_missing", method: http.MethodPost, want: http.StatusUnsupportedMediaType},
		{name: "get_ignored", method: http.MethodGet, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(middlewares.RequireJSON())
			r.Handle(tt.method, "/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tt.method, "/x", strings.NewReader(`{}`))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("got status %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestMaxBodyBytes(t *testing.T) {
	tests := []struct {
		name    string
		max     int64
		body    string
		wantErr bool
	}{
		{name: "under_cap", max: 16, body: `{"a":1}`},
		{name: "over_cap", max: 4, body: `{"a":1}`, wantErr: true},
		{name: "disabled", max: 0, body: strings.Repeat("x", 1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(middlewares.MaxBodyBytes(tt.max))

			var readErr error
			r.POST("/x", func(c *gin.Context) {
				_, readErr = io.ReadAll(c.Request.Body)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(tt.body)))

			var maxErr *http.MaxBytesError
			if got := errors.As(readErr, &maxErr); got != tt.wantErr {
				t.Fatalf("got MaxBytesError=%v, want %v (err=%v)", got, tt.wantErr, readErr)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.RequestID())

	var seen, fromCtx string
	r.GET("/x", func(c *gin.Context) {
		seen = c.GetString(middlewares.CtxRequestID)
		fromCtx, _ = observability.RequestIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if seen == "" || fromCtx != seen || w.Header().Get("X-Request-Id") != seen {
		t.Fatalf("generated id not propagated: ctx=%q header=%q", seen, w.Header().Get("X-Request-Id"))
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "abc-123")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if seen != "abc-123" {
		t.Fatalf("incoming id should be kept, got %q", seen)
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.SecurityHeaders())
	r.GET("/api/v1/skills", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/v1/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/docs", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/skills", nil))

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing nosniff")
	}
	if !strings.HasPrefix(w.Header().Get("Content-Security-Policy"), "default-src 'none'") {
		t.Fatalf("unexpected api csp %q", w.Header().Get("Content-Security-Policy"))
	}
	if w.Header().Get("Cache-Control") != "" {
		t.Fatalf("list responses should stay cacheable, got %q", w.Header().Get("Cache-Control"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/login", nil))

	if w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("login responses should not be stored, got %q", w.Header().Get("Cache-Control"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs", nil))

	if !strings.Contains(w.Header().Get("Content-Security-Policy"), "unpkg.com") {
		t.Fatalf("docs csp should allow swagger assets, got %q", w.Header().Get("Content-Security-Policy"))
	}
}
