package models

import "time"

// Message lifecycle statuses.
const (
	MessagePending   = "PENDING"
	MessageSent      = "SENT"
	MessageDelivered = "DELIVERED"
	MessageRead      = "READ"
	MessageFailed    = "FAILED"
)

// Message is one chat message. Server-persisted rows carry a serial id;
// locally synthesized FAILED messages carry a client-generated id that is
// never sent to the server.
type Message struct {
	ID             int        `db:"id" json:"id"`
	ConversationID int        `db:"conversation_id" json:"conversation_id"`
	SenderID       int        `db:"sender_id" json:"sender_id"`
	Body           *string    `db:"body" json:"body"`
	Status         string     `db:"status" json:"status"`
	FailedReason   *string    `db:"failed_reason" json:"failed_reason"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	SentAt         *time.Time `db:"sent_at" json:"sent_at"`
	DeliveredAt    *time.Time `db:"delivered_at" json:"delivered_at"`
	ReadAt         *time.Time `db:"read_at" json:"read_at"`
}

// ChatEvent is the frame exchanged over a conversation websocket. "message"
// events carry a persisted row; "typing" events carry only the sender id and
// are never persisted.
type ChatEvent struct {
	Type     string   `json:"type"`
	Message  *Message `json:"message,omitempty"`
	SenderID int      `json:"sender_id,omitempty"`
}

// Event types for ChatEvent.
const (
	EventMessage = "message"
	EventTyping  = "typing"
)
