package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"jobboard-service/internal/models"
	"jobboard-service/internal/observability"
)

// Hub maintains active websocket rooms, one per conversation.
type Hub struct {
	rooms    map[int]map[*websocket.Conn]bool
	connInfo map[int]map[*websocket.Conn]ConnInfo
	mu       sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms:    make(map[int]map[*websocket.Conn]bool),
		connInfo: make(map[int]map[*websocket.Conn]ConnInfo),
	}
}

// AddClient registers a websocket connection to a conversation room.
func (h *Hub) AddClient(conversationID int, conn *websocket.Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[conversationID]; !ok {
		h.rooms[conversationID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[conversationID][conn] = true
	if _, ok := h.connInfo[conversationID]; !ok {
		h.connInfo[conversationID] = make(map[*websocket.Conn]ConnInfo)
	}
	h.connInfo[conversationID][conn] = info
}

// RemoveClient removes a conversation websocket connection.
func (h *Hub) RemoveClient(conversationID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[conversationID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, conversationID)
		}
	}
	if infos, ok := h.connInfo[conversationID]; ok {
		delete(infos, conn)
		if len(infos) == 0 {
			delete(h.connInfo, conversationID)
		}
	}
}

// BroadcastMessage pushes a persisted message to every client subscribed to
// the conversation, the sender's own connections included; clients dedup by
// message id.
func (h *Hub) BroadcastMessage(conversationID int, msg models.Message) {
	event := models.ChatEvent{Type: models.EventMessage, Message: &msg}
	h.broadcast(conversationID, event, nil)
}

// BroadcastTyping relays a typing signal to the conversation's other
// clients. Typing events are fire-and-forget; the origin connection is
// skipped and no delivery confirmation exists.
func (h *Hub) BroadcastTyping(conversationID, senderID int, origin *websocket.Conn) {
	event := models.ChatEvent{Type: models.EventTyping, SenderID: senderID}
	h.broadcast(conversationID, event, origin)
}

func (h *Hub) broadcast(conversationID int, event models.ChatEvent, skip *websocket.Conn) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.rooms[conversationID]))
	for conn := range h.rooms[conversationID] {
		if conn != skip {
			conns = append(conns, conn)
		}
	}
	h.mu.RUnlock()

	payload, _ := json.Marshal(event)
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Warn().Err(err).Int("conversation_id", conversationID).Msg("websocket write error")
			conn.Close()
			h.RemoveClient(conversationID, conn)
			h.publishWSError(conversationID, conn, err)
		}
	}
}

func (h *Hub) publishWSError(conversationID int, conn *websocket.Conn, err error) {
	info, ok := h.getConnInfo(conversationID, conn)
	if !ok {
		return
	}

	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	_ = observability.PublishEvent(context.Background(), "ws_events.conversations", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: "ws_error",
		Payload: observability.WSEventPayload(conversationID, "ws_error", info.ConnID,
			time.Since(info.ConnectedAt).Milliseconds(), err.Error(),
			info.UserID, info.DeviceID, info.IP),
	}, headers)
	observability.IncWSEvent("ws_error")
}

func (h *Hub) getConnInfo(conversationID int, conn *websocket.Conn) (ConnInfo, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if infos, ok := h.connInfo[conversationID]; ok {
		info, exists := infos[conn]
		return info, exists
	}
	return ConnInfo{}, false
}
