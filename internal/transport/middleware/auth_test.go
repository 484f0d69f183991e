package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/restobook/restaurant-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(t *testing.T, tm *auth.TokenManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", Authorize(tm), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"sub":  c.GetString(CtxUserID),
			"role": c.GetString(CtxUserRole),
		})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthorize_MissingHeader(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(t, tm)

	w := doRequest(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header missing")
}

func TestAuthorize_MalformedHeader(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(t, tm)

	token, err := tm.CreateAccessToken("1", "a@b.c", "staff")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "wrong scheme", header: "Basic " + token},
		{name: "scheme only", header: "Bearer"},
		{name: "three tokens", header: "Bearer " + token + " extra"},
		{name: "lowercase scheme", header: "bearer " + token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid token format")
		})
	}
}

func TestAuthorize_ExpiredToken(t *testing.T) {
	issuer := auth.NewTokenManager("test-secret", -time.Minute)
	verifier := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(t, verifier)

	token, err := issuer.CreateAccessToken("1", "a@b.c", "staff")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestAuthorize_InvalidToken(t *testing.T) {
	issuer := auth.NewTokenManager("other-secret", time.Hour)
	verifier := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(t, verifier)

	token, err := issuer.CreateAccessToken("1", "a@b.c", "staff")
	require.NoError(t, err)

	// Подпись чужим секретом дает 403, а не 401
	w := doRequest(r, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthorize_ValidTokenAttachesClaims(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", time.Hour)
	r := setupAuthRouter(t, tm)

	token, err := tm.CreateAccessToken("42", "admin@example.com", "admin")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "42", resp["sub"])
	assert.Equal(t, "admin", resp["role"])
}
