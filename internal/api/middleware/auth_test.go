package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/claim-ledger/internal/mocks"
)

var now = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

func generateKey(t *testing.T) (*rsa.PrivateKey, string) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.RegisteredClaims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newTestAuthenticator(t *testing.T, cfg AuthConfig) *Authenticator {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()

	auth, err := NewAuthenticator(cfg, clock)
	require.NoError(t, err)
	return auth
}

func TestAuthenticate_JWT(t *testing.T) {
	key, publicPEM := generateKey(t)
	auth := newTestAuthenticator(t, AuthConfig{JWTPublicKey: publicPEM, JWTIssuer: "vocab-game"})

	valid := jwt.RegisteredClaims{
		Subject:   "game-server",
		Issuer:    "vocab-game",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	t.Run("valid token", func(t *testing.T) {
		result := auth.Authenticate("Bearer " + sign(t, jwt.SigningMethodRS256, key, valid))
		require.True(t, result.Success, "%v", result.Error)
		assert.Equal(t, "jwt", result.AuthType)
		assert.Equal(t, "game-server", result.AuthSubject)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := valid
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
		result := auth.Authenticate("Bearer " + sign(t, jwt.SigningMethodRS256, key, claims))
		assert.False(t, result.Success)
		assert.ErrorIs(t, result.Error, jwt.ErrTokenExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := valid
		claims.Issuer = "someone-else"
		result := auth.Authenticate("Bearer " + sign(t, jwt.SigningMethodRS256, key, claims))
		assert.False(t, result.Success)
	})

	t.Run("hmac token is rejected", func(t *testing.T) {
		result := auth.Authenticate("Bearer " + sign(t, jwt.SigningMethodHS256, []byte(publicPEM), valid))
		assert.False(t, result.Success)
	})

	t.Run("token signed by another key", func(t *testing.T) {
		other, _ := generateKey(t)
		result := auth.Authenticate("Bearer " + sign(t, jwt.SigningMethodRS256, other, valid))
		assert.False(t, result.Success)
	})
}

func TestAuthenticate_PKCS1Key(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	publicPEM := string(pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey)}))

	auth := newTestAuthenticator(t, AuthConfig{JWTPublicKey: publicPEM})
	result := auth.Authenticate("Bearer " + sign(t, jwt.SigningMethodRS256, key, jwt.RegisteredClaims{Subject: "svc"}))
	assert.True(t, result.Success, "%v", result.Error)
}

func TestAuthenticate_APIKey(t *testing.T) {
	auth := newTestAuthenticator(t, AuthConfig{APIKeys: []string{"", "k1", "k2"}})

	tests := []struct {
		name    string
		header  string
		success bool
	}{
		{name: "first key", header: "ApiKey k1", success: true},
		{name: "second key", header: "apikey k2", success: true},
		{name: "unknown key", header: "ApiKey k3"},
		{name: "empty key", header: "ApiKey "},
		{name: "missing header", header: ""},
		{name: "no scheme", header: "k1"},
		{name: "unsupported scheme", header: "Basic k1"},
		{name: "jwt not configured", header: "Bearer abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := auth.Authenticate(tt.header)
			assert.Equal(t, tt.success, result.Success)
			if !tt.success {
				assert.Error(t, result.Error)
			}
		})
	}
}

func TestNewAuthenticator_InvalidKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := NewAuthenticator(AuthConfig{JWTPublicKey: "not a pem"}, mocks.NewMockClock(ctrl))
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := newTestAuthenticator(t, AuthConfig{APIKeys: []string{"k1"}})

	router := gin.New()
	router.Use(RequestID())
	router.POST("/scores", auth.Auth(), func(c *gin.Context) {
		authType, _ := c.Get(string(AUTH_TYPE_KEY))
		c.String(http.StatusOK, authType.(string))
	})

	t.Run("authorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/scores", nil)
		req.Header.Set("Authorization", "ApiKey k1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "apikey", w.Body.String())
		assert.NotEmpty(t, w.Header().Get(REQUEST_ID_HEADER))
	})

	t.Run("rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/scores", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("reuses a valid incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(REQUEST_ID_HEADER, "8f14e45f-ceea-467f-a8f5-5b5a4b1c3d2e")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "8f14e45f-ceea-467f-a8f5-5b5a4b1c3d2e", w.Header().Get(REQUEST_ID_HEADER))
	})

	t.Run("replaces a malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(REQUEST_ID_HEADER, "<script>")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.NotEqual(t, "<script>", w.Header().Get(REQUEST_ID_HEADER))
		assert.Len(t, w.Header().Get(REQUEST_ID_HEADER), 36)
	})
}
