package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hibiscus/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedVersion struct {
	version int
	err     error
}

func (f fixedVersion) CurrentPasswordVersion(context.Context) (int, error) {
	return f.version, f.err
}

type stubLimiter struct {
	allowed bool
	err     error
	calls   *int
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) {
	if s.calls != nil {
		*s.calls++
	}
	return s.allowed, s.err
}

func okHandler(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }

func TestTraceIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(TraceIDMiddleware())
	router.GET("/", okHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Header().Get(TraceHeader))
	assert.NoError(t, err)

	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, inbound)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, inbound, w.Header().Get(TraceHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(TraceHeader))
}

func guardedRouter(source PasswordVersionSource) *gin.Engine {
	router := gin.New()
	router.GET("/admin", AdminGuard([]byte("secret"), source), okHandler)
	return router
}

func TestAdminGuard(t *testing.T) {
	token, err := utils.CreateAdminToken([]byte("secret"), "admin", 2, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		source fixedVersion
		status int
	}{
		{"missing header", "", fixedVersion{version: 2}, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", fixedVersion{version: 2}, http.StatusUnauthorized},
		{"current version", "Bearer " + token, fixedVersion{version: 2}, http.StatusOK},
		{"stale version", "Bearer " + token, fixedVersion{version: 3}, http.StatusUnauthorized},
		{"no admin", "Bearer " + token, fixedVersion{err: utils.ErrAdminNotFound}, http.StatusUnauthorized},
		{"store down", "Bearer " + token, fixedVersion{err: errors.New("boom")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			guardedRouter(tt.source).ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RecoveryMiddleware(zap.NewNop()))
	router.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestInquiryRateLimit(t *testing.T) {
	cases := []struct {
		name    string
		limiter stubLimiter
		status  int
	}{
		{"allowed", stubLimiter{allowed: true}, http.StatusOK},
		{"denied", stubLimiter{allowed: false}, http.StatusTooManyRequests},
		{"limiter down", stubLimiter{err: errors.New("redis down")}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/inquiries", InquiryRateLimit(tc.limiter), okHandler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(`{"name":"Asha"}`)))
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestInquiryRateLimitSkipsMalformedBodies(t *testing.T) {
	calls := 0
	limiter := stubLimiter{allowed: false, calls: &calls}

	var seen map[string]interface{}
	router := gin.New()
	router.POST("/inquiries", InquiryRateLimit(limiter), func(c *gin.Context) {
		if err := c.ShouldBindBodyWith(&seen, binding.JSON); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for _, body := range []string{"", "{broken", `["a"]`} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Equal(t, 0, calls)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(`{"name":"Asha"}`)))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, 1, calls)
}

func TestInquiryRateLimitLeavesBodyForHandler(t *testing.T) {
	var seen map[string]interface{}
	router := gin.New()
	router.POST("/inquiries", InquiryRateLimit(stubLimiter{allowed: true}), func(c *gin.Context) {
		require.NoError(t, c.ShouldBindBodyWith(&seen, binding.JSON))
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/inquiries", strings.NewReader(`{"name":"Asha"}`)))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Asha", seen["name"])
}

func TestLoggerPassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(Logger(zap.NewNop()))
	router.GET("/", okHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
