package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestMiddleware(accessExp time.Duration) (*AuthMiddleware, *auth.JWTService) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "test",
	})
	return NewAuthMiddleware(jwtService), jwtService
}

func accessTokenFor(t *testing.T, jwtService *auth.JWTService, roleID int) string {
	t.Helper()
	token, _, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:     7,
		Email:  "pat@example.com",
		RoleID: roleID,
	})
	require.NoError(t, err)
	return token
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error.Code
}

func performRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	m, _ := newTestMiddleware(time.Hour)
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := performRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthIgnoresQueryParamToken(t *testing.T) {
	m, jwtService := newTestMiddleware(time.Hour)
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	token := accessTokenFor(t, jwtService, models.RoleUser)
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidTokenSetsContext(t *testing.T) {
	m, jwtService := newTestMiddleware(time.Hour)
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		require.True(t, ok)
		assert.Equal(t, int64(7), userID)
		assert.Equal(t, "pat@example.com", c.GetString(ContextEmail))
		assert.Equal(t, models.RoleTeacher, c.GetInt(ContextRoleID))
		c.Status(http.StatusOK)
	})

	w := performRequest(router, "Bearer "+accessTokenFor(t, jwtService, models.RoleTeacher))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	m, jwtService := newTestMiddleware(-time.Minute)
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := performRequest(router, "Bearer "+accessTokenFor(t, jwtService, models.RoleUser))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_006", errorCode(t, w.Body.Bytes()))
}

func TestJWTAuthGarbageToken(t *testing.T) {
	m, _ := newTestMiddleware(time.Hour)
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := performRequest(router, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleAtMostAllowsEqualRank(t *testing.T) {
	m, jwtService := newTestMiddleware(time.Hour)
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), m.RoleAtMost(models.RoleHOD), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(router, "Bearer "+accessTokenFor(t, jwtService, models.RoleHOD))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleAtMostRejectsLowerRank(t *testing.T) {
	m, jwtService := newTestMiddleware(time.Hour)
	router := gin.New()
	router.GET("/protected", m.JWTAuth(), m.RoleAtMost(models.RoleHOD), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(router, "Bearer "+accessTokenFor(t, jwtService, models.RoleTeacher))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleAtMostWithoutAuthRejects(t *testing.T) {
	m, _ := newTestMiddleware(time.Hour)
	router := gin.New()
	router.GET("/protected", m.RoleAtMost(models.RoleHOD), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
