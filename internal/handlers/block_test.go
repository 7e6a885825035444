package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard-service/internal/mocks"
	"jobboard-service/internal/models"
	"jobboard-service/internal/repositories"
)

func setupBlockRouter(handler *BlockHandler, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	r.POST("/blocks", handler.CreateBlock)
	r.DELETE("/blocks/:block_id", handler.RevokeBlock)
	return r
}

func TestCreateBlockSuccess(t *testing.T) {
	blockRepo := new(mocks.BlockRepositoryMock)
	handler := NewBlockHandler(blockRepo, nil)
	router := setupBlockRouter(handler, 10)

	blockRepo.On("Create", mock.Anything, 10, 20, (*string)(nil)).
		Return(models.ContactBlock{ID: 3, BlockerID: 10, BlockedID: 20}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/blocks", bytes.NewBufferString(`{"blockedId":20}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	blockRepo.AssertExpectations(t)
}

func TestCreateBlockSelf(t *testing.T) {
	handler := NewBlockHandler(new(mocks.BlockRepositoryMock), nil)
	router := setupBlockRouter(handler, 10)

	req := httptest.NewRequest(http.MethodPost, "/blocks", bytes.NewBufferString(`{"blockedId":10}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRevokeBlockSuccess(t *testing.T) {
	blockRepo := new(mocks.BlockRepositoryMock)
	handler := NewBlockHandler(blockRepo, nil)
	router := setupBlockRouter(handler, 10)

	blockRepo.On("Revoke", mock.Anything, 3, 10).Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/blocks/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	blockRepo.AssertExpectations(t)
}

func TestRevokeBlockNotFound(t *testing.T) {
	blockRepo := new(mocks.BlockRepositoryMock)
	handler := NewBlockHandler(blockRepo, nil)
	router := setupBlockRouter(handler, 10)

	blockRepo.On("Revoke", mock.Anything, 99, 10).Return(repositories.ErrBlockNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/blocks/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
