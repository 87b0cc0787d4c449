package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/financeflow/internal/apperrors"
	"github.com/SscSPs/financeflow/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testSecret))
	r.GET("/whoami", func(c *gin.Context) {
		subject, _ := middleware.GetSubjectFromContext(c)
		c.String(http.StatusOK, subject)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   "bookkeeper",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expired := signToken(t, testSecret, jwt.RegisteredClaims{
		Subject:   "bookkeeper",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	wrongKey := signToken(t, "another-secret-another-secret-xx", jwt.RegisteredClaims{Subject: "bookkeeper"})
	noSubject := signToken(t, testSecret, jwt.RegisteredClaims{})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "bookkeeper"},
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Bearer {token}"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "Token has expired"},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized, "Invalid token"},
		{"no subject", "Bearer " + noSubject, http.StatusUnauthorized, "Invalid token claims"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthMiddleware_RecordsUnauthorizedError(t *testing.T) {
	var recorded []error
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		for _, e := range c.Errors {
			recorded = append(recorded, e.Err)
		}
	})
	r.Use(middleware.AuthMiddleware(testSecret))
	r.GET("/whoami", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())
	require.Len(t, recorded, 1)
	assert.ErrorIs(t, recorded[0], apperrors.ErrUnauthorized)

	var appErr *apperrors.AppError
	require.True(t, errors.As(recorded[0], &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	assert.Equal(t, "Invalid token", appErr.Message)
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewRateLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.RateLimit(lim))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestNewRateLimiter_InvalidFormat(t *testing.T) {
	_, err := middleware.NewRateLimiter("lots")
	assert.Error(t, err)
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(base))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Contains(t, buf.String(), "inside handler")
	assert.Contains(t, buf.String(), "Request completed")
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))
}
