package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/billing-console/config"
	"github.com/yourusername/billing-console/models"
)

func authRouter(handler *AuthHandler) *gin.Engine {
	router := gin.New()
	router.POST("/register", handler.Register)
	router.POST("/login", handler.Login)
	router.POST("/auth/refresh", handler.Refresh)
	return router
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTRefreshSecret: "test-refresh-secret",
	}
}

func TestRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB()
	router := authRouter(NewAuthHandler(db, testAuthConfig(), testLogger()))

	t.Run("Valid Request", func(t *testing.T) {
		w := doJSON(router, "POST", "/register", RegisterRequest{
			Email:    "owner@example.com",
			Password: "correct-horse",
			Name:     "Owner",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "correct-horse")
		assert.NotContains(t, w.Body.String(), "password")

		var user models.User
		db.Where("email = ?", "owner@example.com").First(&user)
		assert.Equal(t, "user", user.Role)
		assert.NotEqual(t, "correct-horse", user.PasswordHash)
		assert.NotEmpty(t, user.PasswordHash)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		w := doJSON(router, "POST", "/register", RegisterRequest{
			Email:    "owner@example.com",
			Password: "another-password",
			Name:     "Impostor",
		})

		assert.Equal(t, http.StatusConflict, w.Code)

		// First registration is untouched.
		var user models.User
		db.Where("email = ?", "owner@example.com").First(&user)
		assert.Equal(t, "Owner", user.Name)

		var count int64
		db.Model(&models.User{}).Where("email = ?", "owner@example.com").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Short Password", func(t *testing.T) {
		w := doJSON(router, "POST", "/register", RegisterRequest{
			Email:    "short@example.com",
			Password: "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid Role", func(t *testing.T) {
		w := doJSON(router, "POST", "/register", map[string]string{
			"email":    "role@example.com",
			"password": "long-enough",
			"role":     "superuser",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB()
	router := authRouter(NewAuthHandler(db, testAuthConfig(), testLogger()))

	w := doJSON(router, "POST", "/register", RegisterRequest{
		Email:    "login@example.com",
		Password: "correct-horse",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	t.Run("Valid Credentials", func(t *testing.T) {
		w := doJSON(router, "POST", "/login", LoginRequest{
			Email:    "login@example.com",
			Password: "correct-horse",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["access_token"])
		assert.NotEmpty(t, resp["refresh_token"])
	})

	t.Run("Wrong Password", func(t *testing.T) {
		w := doJSON(router, "POST", "/login", LoginRequest{
			Email:    "login@example.com",
			Password: "wrong-horse",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		w := doJSON(router, "POST", "/login", LoginRequest{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRefresh(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB()
	router := authRouter(NewAuthHandler(db, testAuthConfig(), testLogger()))

	w := doJSON(router, "POST", "/register", RegisterRequest{
		Email:    "refresh@example.com",
		Password: "correct-horse",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, "POST", "/login", LoginRequest{
		Email:    "refresh@example.com",
		Password: "correct-horse",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var loginResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	refreshToken, _ := loginResp["refresh_token"].(string)

	t.Run("Valid Refresh Token", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/refresh", RefreshTokenRequest{
			RefreshToken: refreshToken,
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["access_token"])
		assert.NotEmpty(t, resp["refresh_token"])
	})

	t.Run("Garbage Token", func(t *testing.T) {
		w := doJSON(router, "POST", "/auth/refresh", RefreshTokenRequest{
			RefreshToken: "not.a.token",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
