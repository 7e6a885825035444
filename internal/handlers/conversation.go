package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobboard-service/internal/repositories"
	"jobboard-service/internal/telemetry"
)

// ConversationHandler manages conversation endpoints.
type ConversationHandler struct {
	conversationRepo repositories.ConversationRepository
	messageRepo      repositories.MessageRepository
	audit            *telemetry.AuditEmitter
}

// NewConversationHandler builds a ConversationHandler.
func NewConversationHandler(conversationRepo repositories.ConversationRepository, messageRepo repositories.MessageRepository, audit *telemetry.AuditEmitter) *ConversationHandler {
	return &ConversationHandler{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		audit:            audit,
	}
}

// CreateConversation creates or returns the conversation for a
// (posting, seeker, recruiter) triple. Idempotent: repeating the call
// returns the existing row.
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	var req struct {
		JobPostingID     int  `json:"jobPostingId"`
		JobSeekerID      int  `json:"jobSeekerId"`
		RecruiterID      int  `json:"recruiterId"`
		JobApplicationID *int `json:"jobApplicationId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if req.JobPostingID == 0 || req.JobSeekerID == 0 || req.RecruiterID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "jobPostingId, jobSeekerId and recruiterId are required"})
		return
	}

	conv, created, err := h.conversationRepo.CreateOrGet(c.Request.Context(), req.JobPostingID, req.JobSeekerID, req.RecruiterID, req.JobApplicationID)
	if err != nil {
		h.audit.Emit(c.Request.Context(), "ERROR", "conversation create failed", requestIDFromContext(c), userIDFromContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create conversation"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, conv)
}

// ListConversations returns the caller's conversations, most recent
// activity first.
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	userID := c.GetInt("userID")

	convs, err := h.conversationRepo.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// GetConversationMessages returns a conversation's messages in creation
// order.
func (h *ConversationHandler) GetConversationMessages(c *gin.Context) {
	conversationID, err := strconv.Atoi(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	userID := c.GetInt("userID")
	member, err := h.conversationRepo.IsParticipant(c.Request.Context(), conversationID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify membership"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a conversation participant"})
		return
	}

	msgs, err := h.messageRepo.ListByConversation(c.Request.Context(), conversationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
