package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"jobboard-service/internal/chat"
	"jobboard-service/internal/observability"
	"jobboard-service/internal/repositories"
	"jobboard-service/internal/telemetry"
	"jobboard-service/internal/ws"
)

// MessageHandler is the authoritative ingest endpoint for chat messages. It
// re-derives the send gate from its own rows on every request; whatever the
// client checked before posting is advisory only.
type MessageHandler struct {
	conversationRepo repositories.ConversationRepository
	messageRepo      repositories.MessageRepository
	blockRepo        repositories.BlockRepository
	hub              *ws.Hub
	audit            *telemetry.AuditEmitter
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(conversationRepo repositories.ConversationRepository, messageRepo repositories.MessageRepository, blockRepo repositories.BlockRepository, hub *ws.Hub, audit *telemetry.AuditEmitter) *MessageHandler {
	return &MessageHandler{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		blockRepo:        blockRepo,
		hub:              hub,
		audit:            audit,
	}
}

// PostMessage validates, gates and persists one outbound message, then fans
// it out to the conversation's websocket subscribers.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	var req struct {
		ConversationID int    `json:"conversationId"`
		SenderID       int    `json:"senderId"`
		Text           string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	trimmed := strings.TrimSpace(req.Text)
	if trimmed == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
		return
	}
	if req.ConversationID == 0 || req.SenderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId and senderId are required"})
		return
	}

	if authID := c.GetInt("userID"); authID != 0 && authID != req.SenderID {
		c.JSON(http.StatusForbidden, gin.H{"error": "sender does not match authenticated user"})
		return
	}

	cc, err := h.conversationRepo.GetContext(c.Request.Context(), req.ConversationID)
	if err != nil {
		if errors.Is(err, repositories.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversation"})
		return
	}

	counterpart, ok := cc.Counterpart(req.SenderID)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a conversation participant"})
		return
	}

	blocked, err := h.blockRepo.IsBlockedBetween(c.Request.Context(), req.SenderID, counterpart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check contact blocks"})
		return
	}

	if v := chat.CanSend(cc.Conversation, cc.JobPostingStatus, cc.ApplicationStatus, blocked); !v.Allowed {
		observability.IncSendDenied(v.Reason)
		h.emitAudit(c, "WARN", "message rejected by gate: "+v.Reason)
		c.JSON(http.StatusBadRequest, gin.H{"error": v.Reason})
		return
	}

	msg, err := h.messageRepo.Insert(c.Request.Context(), req.ConversationID, req.SenderID, trimmed)
	if err != nil {
		h.emitAudit(c, "ERROR", "message insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "message failed to send, try again later"})
		return
	}

	// Denormalized convenience pointer; the message itself is already safe.
	if err := h.conversationRepo.UpdateLastMessage(c.Request.Context(), req.ConversationID, msg.ID); err != nil {
		log.Warn().Err(err).Int("conversation_id", req.ConversationID).Msg("last message pointer update failed")
	}

	h.hub.BroadcastMessage(req.ConversationID, msg)
	observability.IncMessageSent()
	h.emitAudit(c, "INFO", "message sent")

	c.JSON(http.StatusCreated, msg)
}

func (h *MessageHandler) emitAudit(c *gin.Context, level, text string) {
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}
