package middleware

import (
	"Moments/internal/pkg/security"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(mw gin.HandlerFunc) (*gin.Engine, *uint64) {
	gin.SetMode(gin.TestMode)

	var captured uint64
	r := gin.New()
	r.GET("/me", mw, func(c *gin.Context) {
		captured = c.GetUint64("user_id")
		c.Status(http.StatusOK)
	})
	return r, &captured
}

func TestAuthOptionalMiddleware(t *testing.T) {
	r, captured := newAuthRouter(AuthOptionalMiddleware())

	// 无凭证放行，UID 为 0
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(0), *captured)

	// 有效 Token 注入 UID
	token, err := security.GenerateToken(7, "alice")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), *captured)

	// 非法 Token 回落为匿名
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(0), *captured)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r, _ := newAuthRouter(AuthMiddleware())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
