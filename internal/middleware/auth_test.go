package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandmarket/internal/pkg/jwt"
	"brandmarket/internal/pkg/response"
)

// authRouter mounts JWTAuth plus any extra chain in front of a handler
// that echoes the typed claims the middleware stored.
func authRouter(jwtService *jwt.Service, chain ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(jwtService)}, chain...)
	handlers = append(handlers, func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"user_id": c.GetInt64("user_id"),
			"role":    c.GetString("role"),
		})
	})
	r.GET("/guarded", handlers...)
	return r
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_StoresTypedClaims(t *testing.T) {
	jwtService := jwt.New("brand-secret", time.Hour)
	token, err := jwtService.GenerateToken(42, "brand_owner")
	require.NoError(t, err)

	w := doAuthRequest(authRouter(jwtService), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), `"role":"brand_owner"`)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	jwtService := jwt.New("brand-secret", time.Hour)

	w := doAuthRequest(authRouter(jwtService), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_HEADER_MISSING")
}

func TestJWTAuth_NonBearerScheme(t *testing.T) {
	jwtService := jwt.New("brand-secret", time.Hour)

	w := doAuthRequest(authRouter(jwtService), "Token abc123")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestJWTAuth_WrongSecretRejected(t *testing.T) {
	token, err := jwt.New("other-secret", time.Hour).GenerateToken(1, "client")
	require.NoError(t, err)

	w := doAuthRequest(authRouter(jwt.New("brand-secret", time.Hour)), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuth_ExpiredTokenRejected(t *testing.T) {
	// same secret, token minted already expired
	token, err := jwt.New("brand-secret", -time.Minute).GenerateToken(1, "client")
	require.NoError(t, err)

	w := doAuthRequest(authRouter(jwt.New("brand-secret", time.Hour)), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuth_AdminOnlyChain(t *testing.T) {
	jwtService := jwt.New("brand-secret", time.Hour)
	r := authRouter(jwtService, AdminOnly())

	ownerToken, err := jwtService.GenerateToken(5, "brand_owner")
	require.NoError(t, err)
	w := doAuthRequest(r, "Bearer "+ownerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")

	adminToken, err := jwtService.GenerateToken(1, "admin")
	require.NoError(t, err)
	w = doAuthRequest(r, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}
