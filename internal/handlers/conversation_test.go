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

func setupConversationRouter(handler *ConversationHandler, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	r.POST("/conversations", handler.CreateConversation)
	r.GET("/conversations", handler.ListConversations)
	r.GET("/conversations/:conversation_id/messages", handler.GetConversationMessages)
	return r
}

func TestCreateConversationCreated(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewConversationHandler(convRepo, new(mocks.MessageRepositoryMock), nil)
	router := setupConversationRouter(handler, 10)

	convRepo.On("CreateOrGet", mock.Anything, 3, 10, 20, (*int)(nil)).
		Return(models.Conversation{ID: 7, JobSeekerID: 10, RecruiterID: 20}, true, nil).Once()

	body := bytes.NewBufferString(`{"jobPostingId":3,"jobSeekerId":10,"recruiterId":20}`)
	req := httptest.NewRequest(http.MethodPost, "/conversations", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	convRepo.AssertExpectations(t)
}

func TestCreateConversationIdempotent(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewConversationHandler(convRepo, new(mocks.MessageRepositoryMock), nil)
	router := setupConversationRouter(handler, 10)

	existing := models.Conversation{ID: 7, JobSeekerID: 10, RecruiterID: 20}
	convRepo.On("CreateOrGet", mock.Anything, 3, 10, 20, (*int)(nil)).
		Return(existing, false, nil).Twice()

	payload := `{"jobPostingId":3,"jobSeekerId":10,"recruiterId":20}`
	var ids []int
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/conversations", bytes.NewBufferString(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.Conversation
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		ids = append(ids, resp.ID)
	}

	assert.Equal(t, ids[0], ids[1])
	convRepo.AssertExpectations(t)
}

func TestCreateConversationMissingFields(t *testing.T) {
	handler := NewConversationHandler(new(mocks.ConversationRepositoryMock), new(mocks.MessageRepositoryMock), nil)
	router := setupConversationRouter(handler, 10)

	req := httptest.NewRequest(http.MethodPost, "/conversations", bytes.NewBufferString(`{"jobPostingId":3}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListConversations(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewConversationHandler(convRepo, new(mocks.MessageRepositoryMock), nil)
	router := setupConversationRouter(handler, 10)

	convRepo.On("ListForUser", mock.Anything, 10).
		Return([]models.Conversation{{ID: 1}, {ID: 2}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	convRepo.AssertExpectations(t)
}

func TestGetConversationMessagesSuccess(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	msgRepo := new(mocks.MessageRepositoryMock)
	handler := NewConversationHandler(convRepo, msgRepo, nil)
	router := setupConversationRouter(handler, 10)

	convRepo.On("IsParticipant", mock.Anything, 5, 10).Return(true, nil).Once()
	msgRepo.On("ListByConversation", mock.Anything, 5).
		Return([]models.Message{{ID: 1, ConversationID: 5}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations/5/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	convRepo.AssertExpectations(t)
	msgRepo.AssertExpectations(t)
}

func TestGetConversationMessagesNonParticipant(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewConversationHandler(convRepo, new(mocks.MessageRepositoryMock), nil)
	router := setupConversationRouter(handler, 33)

	convRepo.On("IsParticipant", mock.Anything, 5, 33).Return(false, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations/5/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	convRepo.AssertExpectations(t)
}

func TestGetConversationMessagesInvalidID(t *testing.T) {
	handler := NewConversationHandler(new(mocks.ConversationRepositoryMock), new(mocks.MessageRepositoryMock), nil)
	router := setupConversationRouter(handler, 10)

	req := httptest.NewRequest(http.MethodGet, "/conversations/abc/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
