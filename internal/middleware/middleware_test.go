package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func signedToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims, key interface{}) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint("user_id"),
			"email":   c.GetString("email"),
			"role":    c.GetString("role"),
		})
	})
	router.GET("/admin", AuthMiddleware(), RequireRole("admin", "doctor"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	os.Setenv("JWT_SECRET_KEY", testSecret)
	defer os.Unsetenv("JWT_SECRET_KEY")

	valid := signedToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 5, "email": "a@b.c", "role": "user", "exp": time.Now().Add(time.Hour).Unix(),
	}, []byte(testSecret))
	expired := signedToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 5, "exp": time.Now().Add(-time.Hour).Unix(),
	}, []byte(testSecret))
	wrongKey := signedToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 5}, []byte("other"))
	noUser := signedToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@b.c"}, []byte(testSecret))

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"bad format", "Token " + valid, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"missing user id", "Bearer " + noUser, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	router := setupAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"user_id":5,"email":"a@b.c","role":"user"}`, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	os.Setenv("JWT_SECRET_KEY", testSecret)
	defer os.Unsetenv("JWT_SECRET_KEY")

	router := setupAuthRouter()
	for role, expected := range map[string]int{
		"user":   http.StatusForbidden,
		"doctor": http.StatusNoContent,
		"admin":  http.StatusNoContent,
	} {
		token := signedToken(t, jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1, "role": role}, []byte(testSecret))
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, expected, w.Code, role)
	}
}
