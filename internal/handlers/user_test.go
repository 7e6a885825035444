package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard-service/internal/mocks"
	"jobboard-service/internal/models"
)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/users", handler.CreateUser)
	return r
}

func TestCreateUserSuccess(t *testing.T) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewUserHandler(userRepo)
	router := setupUserRouter(handler)

	name := "Alice"
	userRepo.On("Create", mock.Anything, &name, "alice@example.com", models.RoleJobSeeker, true).
		Return(models.User{ID: 1, Email: "alice@example.com", Role: models.RoleJobSeeker}, nil).Once()

	body := bytes.NewBufferString(`{"fullName":"Alice","email":"alice@example.com","role":"JOB_SEEKER"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestCreateUserMissingFields(t *testing.T) {
	handler := NewUserHandler(new(mocks.UserRepositoryMock))
	router := setupUserRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(`{"fullName":"Alice"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "email and role are required", resp["error"])
}

func TestCreateUserInvalidRole(t *testing.T) {
	handler := NewUserHandler(new(mocks.UserRepositoryMock))
	router := setupUserRouter(handler)

	body := bytes.NewBufferString(`{"email":"x@example.com","role":"WIZARD"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
