package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"jobboard-service/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageRepository defines interactions for conversation messages.
type MessageRepository interface {
	Insert(ctx context.Context, conversationID, senderID int, body string) (models.Message, error)
	ListByConversation(ctx context.Context, conversationID int) ([]models.Message, error)
	GetByID(ctx context.Context, messageID int) (models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

const messageColumns = `id, conversation_id, sender_id, body, status, failed_reason, created_at, sent_at, delivered_at, read_at`

// Insert persists one message with status SENT and a server-assigned id and
// sent timestamp.
func (r *MessageRepo) Insert(ctx context.Context, conversationID, senderID int, body string) (models.Message, error) {
	var msg models.Message
	err := r.db.GetContext(ctx, &msg,
		`INSERT INTO messages (conversation_id, sender_id, body, status, sent_at)
         VALUES ($1, $2, $3, 'SENT', NOW())
         RETURNING `+messageColumns,
		conversationID, senderID, body)
	return msg, err
}

// ListByConversation returns the conversation's messages in display order,
// creation timestamp ascending.
func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT `+messageColumns+` FROM messages WHERE conversation_id=$1 ORDER BY created_at ASC, id ASC`,
		conversationID)
	return msgs, err
}

// GetByID retrieves a single message.
func (r *MessageRepo) GetByID(ctx context.Context, messageID int) (models.Message, error) {
	var msg models.Message
	err := r.db.GetContext(ctx, &msg,
		`SELECT `+messageColumns+` FROM messages WHERE id=$1`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	return msg, err
}
