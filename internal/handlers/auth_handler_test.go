package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-api/internal/handlers"
	"github.com/learnhub/learnhub-api/internal/models"
	"github.com/learnhub/learnhub-api/internal/services"
	"github.com/learnhub/learnhub-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)

	_ = logger.Initialize(logger.Config{
		Level:       "info",
		Environment: "test",
	})
}

func setupLoginRouter(svc services.AuthServiceInterface) *gin.Engine {
	router := gin.New()
	handler := handlers.NewAuthHandler(svc)
	router.POST("/api/v1/admin/login", handler.Login)
	return router
}

func postLogin(router *gin.Engine, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/admin/login", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, "admin", "password").Return(&models.LoginResponse{
		Message:  "Login successful",
		Username: "admin",
		Token:    "signed.jwt.token",
	}, nil)

	router := setupLoginRouter(svc)
	w := postLogin(router, gin.H{"username": "admin", "password": "password"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, "admin", resp.Username)
	assert.Equal(t, "signed.jwt.token", resp.Token)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, "admin", "wrong").
		Return(nil, services.ErrInvalidCredentials)

	router := setupLoginRouter(svc)
	w := postLogin(router, gin.H{"username": "admin", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid username or password"}`, w.Body.String())
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	svc := new(mockAuthService)
	router := setupLoginRouter(svc)

	w := postLogin(router, gin.H{"username": "admin"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Login")
}

func TestAuthHandler_Login_ServiceError(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, "admin", "password").
		Return(nil, assert.AnError)

	router := setupLoginRouter(svc)
	w := postLogin(router, gin.H{"username": "admin", "password": "password"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error while logging in"}`, w.Body.String())
}
