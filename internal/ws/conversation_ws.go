package ws

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	"jobboard-service/internal/middleware"
	"jobboard-service/internal/models"
	"jobboard-service/internal/observability"
	"jobboard-service/internal/repositories"
)

// ConversationWebSocketHandler handles conversation websocket connections.
type ConversationWebSocketHandler struct {
	hub              *Hub
	conversationRepo repositories.ConversationRepository
	jwtSecret        string
}

// NewConversationWebSocketHandler constructs a ConversationWebSocketHandler.
func NewConversationWebSocketHandler(hub *Hub, conversationRepo repositories.ConversationRepository, jwtSecret string) *ConversationWebSocketHandler {
	return &ConversationWebSocketHandler{hub: hub, conversationRepo: conversationRepo, jwtSecret: jwtSecret}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection, registers the client in the conversation
// room, and relays inbound typing frames to the other participants. Typing
// frames are never persisted.
func (h *ConversationWebSocketHandler) Handle(c *gin.Context) {
	conversationID, err := strconv.Atoi(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	ctx, span := otel.Tracer("jobboard-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	token := middleware.BearerToken(c)
	userID, err := middleware.ParseToken(h.jwtSecret, token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	member, err := h.conversationRepo.IsParticipant(c.Request.Context(), conversationID, userID)
	if err != nil || !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized for conversation"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      uuid.NewString(),
		UserID:      userID,
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	h.hub.AddClient(conversationID, conn, info)

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	h.publishConnEvent(ctx, conversationID, info, "ws_connect", "")

	// The read loop outlives the HTTP handler, so it gets its own context.
	go h.readLoop(context.Background(), conversationID, userID, conn, info)
}

func (h *ConversationWebSocketHandler) readLoop(ctx context.Context, conversationID, userID int, conn *websocket.Conn, info ConnInfo) {
	var closeReason string
	defer func() {
		h.hub.RemoveClient(conversationID, conn)
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		h.publishConnEvent(ctx, conversationID, info, "ws_disconnect", closeReason)
		conn.Close()
	}()

	for {
		var evt models.ChatEvent
		if err := conn.ReadJSON(&evt); err != nil {
			closeReason = err.Error()
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
				h.publishConnEvent(ctx, conversationID, info, "ws_error", closeReason)
			}
			return
		}

		// Only typing signals flow client-to-server; the sender id on the
		// frame is replaced with the authenticated one.
		if evt.Type == models.EventTyping {
			h.hub.BroadcastTyping(conversationID, userID, conn)
			observability.IncWSEvent("typing")
		}
	}
}

func (h *ConversationWebSocketHandler) publishConnEvent(ctx context.Context, conversationID int, info ConnInfo, event, reason string) {
	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	err := observability.PublishEvent(ctx, "ws_events.conversations", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Payload: observability.WSEventPayload(conversationID, event, info.ConnID,
			time.Since(info.ConnectedAt).Milliseconds(), reason,
			info.UserID, info.DeviceID, info.IP),
	}, headers)
	if err != nil {
		log.Debug().Err(err).Str("event", event).Msg("ws event publish failed")
	}
}
