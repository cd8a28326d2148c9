package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/pkg/util"
)

const testJWTSecret = "test-secret-key"

func setupAuthTest(t *testing.T, blacklist TokenBlacklist) (*gin.Engine, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authMiddleware := NewAuthMiddleware(testJWTSecret, blacklist)
	return router, authMiddleware
}

func issueToken(t *testing.T, role string) string {
	pair, err := util.GenerateTokenPair(1, "user@example.com", role, testJWTSecret, time.Hour, 24*time.Hour)
	require.NoError(t, err)
	return pair.AccessToken
}

func TestAuthenticate_ValidToken(t *testing.T) {
	router, authMiddleware := setupAuthTest(t, nil)

	var gotUserID uint
	var gotRole model.UserRole
	router.GET("/protected", authMiddleware.Authenticate(), func(c *gin.Context) {
		gotUserID, _ = GetUserID(c)
		gotRole, _ = GetUserRole(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "client"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), gotUserID)
	assert.Equal(t, model.RoleClient, gotRole)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	router, authMiddleware := setupAuthTest(t, nil)
	router.GET("/protected", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	router, authMiddleware := setupAuthTest(t, nil)
	router.GET("/protected", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
}

func TestAuthenticate_QueryParameterToken(t *testing.T) {
	router, authMiddleware := setupAuthTest(t, nil)
	router.GET("/ws", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ws?token="+issueToken(t, "client"), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticate_RevokedToken(t *testing.T) {
	revoked := map[string]bool{}
	blacklist := func(ctx context.Context, token string) (bool, error) {
		return revoked[token], nil
	}
	router, authMiddleware := setupAuthTest(t, blacklist)
	router.GET("/protected", authMiddleware.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token := issueToken(t, "client")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// After logout the same token is rejected
	revoked[token] = true

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_REVOKED")
}

func TestRequireRole(t *testing.T) {
	router, authMiddleware := setupAuthTest(t, nil)
	router.GET("/admin", authMiddleware.Authenticate(), authMiddleware.RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "client"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "admin"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthenticate(t *testing.T) {
	router, authMiddleware := setupAuthTest(t, nil)

	router.GET("/public", authMiddleware.OptionalAuthenticate(), func(c *gin.Context) {
		if userID, ok := GetUserID(c); ok {
			c.JSON(http.StatusOK, gin.H{"user_id": userID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": nil})
	})

	// Guest
	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")

	// Authenticated
	req = httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "client"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
}
