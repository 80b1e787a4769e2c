package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/utils"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func adminRouter() *gin.Engine {
	r := gin.New()
	r.GET("/admin", AuthRequired(testSecret), AdminRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	return r
}

func doRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	adminToken, err := utils.GenerateToken("admin-1", utils.UserTypeAdmin, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	customerToken, _ := utils.GenerateToken("user-1", "customer", testSecret, time.Hour)
	foreignToken, _ := utils.GenerateToken("admin-1", utils.UserTypeAdmin, "other-secret", time.Hour)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Token " + adminToken, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreignToken, http.StatusUnauthorized},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"not admin", "Bearer " + customerToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}

	r := adminRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := doRequest(r, req)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	// Expiry is stored with second precision, so a 1ns ttl is already past.
	expired, err := utils.GenerateToken("admin-1", utils.UserTypeAdmin, testSecret, time.Nanosecond)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	if w := doRequest(adminRouter(), req); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		fromCtx, _ := c.Request.Context().Value(logger.RequestIDKey).(string)
		c.String(http.StatusOK, fromCtx)
	})

	w := doRequest(r, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	if len(generated) != 36 || w.Body.String() != generated {
		t.Fatalf("generated id %q, context id %q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	if w := doRequest(r, req); w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("incoming request id not propagated")
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://shop.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	w := doRequest(r, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://shop.example.com" {
		t.Fatalf("allowed origin not echoed: %v", w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	if w := doRequest(r, req); w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("unexpected allow origin for unlisted origin")
	}
}

func TestLoggingAndMetricsMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewLogger(&logger.Config{Level: logger.InfoLevel, Format: "json", AppName: "storefront"})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	log.SetOutput(&buf)
	m := metrics.New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggingMiddleware(log), MetricsMiddleware(m))
	r.GET("/stores/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	doRequest(r, httptest.NewRequest(http.MethodGet, "/stores/42", nil))

	out := buf.String()
	if !strings.Contains(out, `"endpoint":"/stores/:id"`) || !strings.Contains(out, `"status_code":418`) {
		t.Fatalf("log line missing route or status: %s", out)
	}
	if !strings.Contains(out, `"request_id"`) {
		t.Fatalf("log line missing request id: %s", out)
	}
	if n := testutil.CollectAndCount(m.HTTPRequestDuration); n != 1 {
		t.Fatalf("histogram series = %d, want 1", n)
	}
}
