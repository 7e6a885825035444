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

	"jobboard-service/internal/chat"
	"jobboard-service/internal/mocks"
	"jobboard-service/internal/models"
	"jobboard-service/internal/repositories"
	"jobboard-service/internal/ws"
)

func setupMessageRouter(handler *MessageHandler, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	r.POST("/messages", handler.PostMessage)
	return r
}

func activeContext(conversationID, seekerID, recruiterID int) models.ConversationContext {
	return models.ConversationContext{
		Conversation: models.Conversation{
			ID:          conversationID,
			JobSeekerID: seekerID,
			RecruiterID: recruiterID,
			Status:      models.ConversationActive,
		},
	}
}

func TestPostMessageSuccess(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	msgRepo := new(mocks.MessageRepositoryMock)
	blockRepo := new(mocks.BlockRepositoryMock)
	handler := NewMessageHandler(convRepo, msgRepo, blockRepo, ws.NewHub(), nil)
	router := setupMessageRouter(handler, 10)

	convRepo.On("GetContext", mock.Anything, 5).Return(activeContext(5, 10, 20), nil).Once()
	blockRepo.On("IsBlockedBetween", mock.Anything, 10, 20).Return(false, nil).Once()
	msgRepo.On("Insert", mock.Anything, 5, 10, "hello").Return(models.Message{ID: 99, ConversationID: 5, SenderID: 10}, nil).Once()
	convRepo.On("UpdateLastMessage", mock.Anything, 5, 99).Return(nil).Once()

	body := bytes.NewBufferString(`{"conversationId":5,"senderId":10,"text":"  hello "}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 99, resp.ID)

	convRepo.AssertExpectations(t)
	msgRepo.AssertExpectations(t)
	blockRepo.AssertExpectations(t)
}

func TestPostMessageWhitespaceOnly(t *testing.T) {
	handler := NewMessageHandler(new(mocks.ConversationRepositoryMock), new(mocks.MessageRepositoryMock), new(mocks.BlockRepositoryMock), ws.NewHub(), nil)
	router := setupMessageRouter(handler, 10)

	body := bytes.NewBufferString(`{"conversationId":5,"senderId":10,"text":"   "}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "message must not be empty", resp["error"])
}

func TestPostMessageMissingIDs(t *testing.T) {
	handler := NewMessageHandler(new(mocks.ConversationRepositoryMock), new(mocks.MessageRepositoryMock), new(mocks.BlockRepositoryMock), ws.NewHub(), nil)
	router := setupMessageRouter(handler, 0)

	body := bytes.NewBufferString(`{"text":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostMessageSenderMismatch(t *testing.T) {
	handler := NewMessageHandler(new(mocks.ConversationRepositoryMock), new(mocks.MessageRepositoryMock), new(mocks.BlockRepositoryMock), ws.NewHub(), nil)
	router := setupMessageRouter(handler, 7)

	body := bytes.NewBufferString(`{"conversationId":5,"senderId":10,"text":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPostMessageConversationNotFound(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewMessageHandler(convRepo, new(mocks.MessageRepositoryMock), new(mocks.BlockRepositoryMock), ws.NewHub(), nil)
	router := setupMessageRouter(handler, 10)

	convRepo.On("GetContext", mock.Anything, 404).Return(models.ConversationContext{}, repositories.ErrConversationNotFound).Once()

	body := bytes.NewBufferString(`{"conversationId":404,"senderId":10,"text":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	convRepo.AssertExpectations(t)
}

func TestPostMessageNonParticipant(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewMessageHandler(convRepo, new(mocks.MessageRepositoryMock), new(mocks.BlockRepositoryMock), ws.NewHub(), nil)
	router := setupMessageRouter(handler, 33)

	convRepo.On("GetContext", mock.Anything, 5).Return(activeContext(5, 10, 20), nil).Once()

	body := bytes.NewBufferString(`{"conversationId":5,"senderId":33,"text":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	convRepo.AssertExpectations(t)
}

func TestPostMessageDeniedByClosedJob(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	msgRepo := new(mocks.MessageRepositoryMock)
	blockRepo := new(mocks.BlockRepositoryMock)
	handler := NewMessageHandler(convRepo, msgRepo, blockRepo, ws.NewHub(), nil)
	router := setupMessageRouter(handler, 10)

	cc := activeContext(5, 10, 20)
	closed := models.JobStatusClosed
	cc.JobPostingStatus = &closed
	convRepo.On("GetContext", mock.Anything, 5).Return(cc, nil).Once()
	blockRepo.On("IsBlockedBetween", mock.Anything, 10, 20).Return(false, nil).Once()

	body := bytes.NewBufferString(`{"conversationId":5,"senderId":10,"text":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, chat.ReasonJobClosed, resp["error"])

	msgRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostMessageDeniedByBlock(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	blockRepo := new(mocks.BlockRepositoryMock)
	handler := NewMessageHandler(convRepo, new(mocks.MessageRepositoryMock), blockRepo, ws.NewHub(), nil)
	router := setupMessageRouter(handler, 20)

	convRepo.On("GetContext", mock.Anything, 5).Return(activeContext(5, 10, 20), nil).Once()
	blockRepo.On("IsBlockedBetween", mock.Anything, 20, 10).Return(true, nil).Once()

	body := bytes.NewBufferString(`{"conversationId":5,"senderId":20,"text":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, chat.ReasonContactBlocked, resp["error"])
}

func TestPostMessageInsertFailure(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	msgRepo := new(mocks.MessageRepositoryMock)
	blockRepo := new(mocks.BlockRepositoryMock)
	handler := NewMessageHandler(convRepo, msgRepo, blockRepo, ws.NewHub(), nil)
	router := setupMessageRouter(handler, 10)

	convRepo.On("GetContext", mock.Anything, 5).Return(activeContext(5, 10, 20), nil).Once()
	blockRepo.On("IsBlockedBetween", mock.Anything, 10, 20).Return(false, nil).Once()
	msgRepo.On("Insert", mock.Anything, 5, 10, "hi").Return(models.Message{}, assert.AnError).Once()

	body := bytes.NewBufferString(`{"conversationId":5,"senderId":10,"text":"hi"}`)
	req := httptest.NewRequest(http.MethodPost, "/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "message failed to send, try again later", resp["error"])
}
