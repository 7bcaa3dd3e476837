package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// TestRequestIDContext проверяет запись и чтение request ID из контекста
func TestRequestIDContext(t *testing.T) {
	ctx := SetRequestID(context.Background(), "req-123")
	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("GetRequestID = %q, want %q", got, "req-123")
	}
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID(empty ctx) = %q, want \"\"", got)
	}
	if got := GetRequestID(nil); got != "" {
		t.Errorf("GetRequestID(nil) = %q, want \"\"", got)
	}
}

// TestGinRequestIDMiddleware проверяет, что ID из заголовка доходит до
// контекста запроса и возвращается клиенту
func TestGinRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen string
	router := gin.New()
	router.Use(GinRequestIDMiddleware())
	router.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-from-client")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if seen != "req-from-client" {
		t.Errorf("handler saw request ID %q, want %q", seen, "req-from-client")
	}
	if got := rec.Header().Get("X-Request-ID"); got != "req-from-client" {
		t.Errorf("response header X-Request-ID = %q, want %q", got, "req-from-client")
	}

	// Без заголовка ID генерируется сервером
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if seen == "" || seen == "req-from-client" {
		t.Errorf("generated request ID not propagated, got %q", seen)
	}
	if rec.Header().Get("X-Request-ID") != seen {
		t.Errorf("header %q does not match context ID %q", rec.Header().Get("X-Request-ID"), seen)
	}
}
