package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"jobboard-service/internal/models"
)

var ErrConversationNotFound = errors.New("conversation not found")

// ConversationRepository abstracts conversation persistence.
type ConversationRepository interface {
	CreateOrGet(ctx context.Context, jobPostingID, jobSeekerID, recruiterID int, jobApplicationID *int) (models.Conversation, bool, error)
	GetByID(ctx context.Context, conversationID int) (models.Conversation, error)
	GetContext(ctx context.Context, conversationID int) (models.ConversationContext, error)
	ListForUser(ctx context.Context, userID int) ([]models.Conversation, error)
	IsParticipant(ctx context.Context, conversationID, userID int) (bool, error)
	UpdateLastMessage(ctx context.Context, conversationID, messageID int) error
}

// ConversationRepo is a sqlx implementation of ConversationRepository.
type ConversationRepo struct {
	db *sqlx.DB
}

// NewConversationRepo constructs a ConversationRepo.
func NewConversationRepo(db *sqlx.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

const conversationColumns = `id, job_seeker_id, recruiter_id, job_posting_id, job_application_id, status, last_message_id, last_message_at, created_at`

// CreateOrGet returns the conversation for the (posting, seeker, recruiter)
// triple, creating it with status ACTIVE when absent. The second result is
// true when a row was created.
func (r *ConversationRepo) CreateOrGet(ctx context.Context, jobPostingID, jobSeekerID, recruiterID int, jobApplicationID *int) (models.Conversation, bool, error) {
	var conv models.Conversation
	err := r.db.GetContext(ctx, &conv,
		`SELECT `+conversationColumns+` FROM conversations
         WHERE job_posting_id=$1 AND job_seeker_id=$2 AND recruiter_id=$3`,
		jobPostingID, jobSeekerID, recruiterID)
	if err == nil {
		return conv, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, false, err
	}

	err = r.db.GetContext(ctx, &conv,
		`INSERT INTO conversations (job_posting_id, job_seeker_id, recruiter_id, job_application_id, status)
         VALUES ($1, $2, $3, $4, 'ACTIVE')
         ON CONFLICT (job_posting_id, job_seeker_id, recruiter_id) DO UPDATE SET status = conversations.status
         RETURNING `+conversationColumns,
		jobPostingID, jobSeekerID, recruiterID, jobApplicationID)
	if err != nil {
		return models.Conversation{}, false, err
	}
	return conv, true, nil
}

// GetByID fetches a conversation.
func (r *ConversationRepo) GetByID(ctx context.Context, conversationID int) (models.Conversation, error) {
	var conv models.Conversation
	err := r.db.GetContext(ctx, &conv,
		`SELECT `+conversationColumns+` FROM conversations WHERE id=$1`, conversationID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Conversation{}, ErrConversationNotFound
	}
	return conv, err
}

// GetContext fetches a conversation joined with the statuses of its linked
// job posting and application, so the send gate runs against authoritative
// rows in one lookup.
func (r *ConversationRepo) GetContext(ctx context.Context, conversationID int) (models.ConversationContext, error) {
	var cc models.ConversationContext
	query := `SELECT c.id, c.job_seeker_id, c.recruiter_id, c.job_posting_id, c.job_application_id,
            c.status, c.last_message_id, c.last_message_at, c.created_at,
            jp.status AS job_posting_status, ja.status AS application_status
        FROM conversations c
        LEFT JOIN job_postings jp ON jp.id = c.job_posting_id
        LEFT JOIN job_applications ja ON ja.id = c.job_application_id
        WHERE c.id=$1`
	err := r.db.GetContext(ctx, &cc, query, conversationID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ConversationContext{}, ErrConversationNotFound
	}
	return cc, err
}

// ListForUser returns the user's conversations, most recent activity first.
func (r *ConversationRepo) ListForUser(ctx context.Context, userID int) ([]models.Conversation, error) {
	var convs []models.Conversation
	query := `SELECT ` + conversationColumns + ` FROM conversations
        WHERE job_seeker_id=$1 OR recruiter_id=$1
        ORDER BY last_message_at DESC NULLS LAST, created_at DESC`
	err := r.db.SelectContext(ctx, &convs, query, userID)
	return convs, err
}

// IsParticipant checks whether the user belongs to the conversation.
func (r *ConversationRepo) IsParticipant(ctx context.Context, conversationID, userID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM conversations WHERE id=$1 AND (job_seeker_id=$2 OR recruiter_id=$2))`,
		conversationID, userID)
	return exists, err
}

// UpdateLastMessage moves the denormalized last-message pointer. Callers
// treat a failure here as non-fatal; the message row itself is already
// persisted.
func (r *ConversationRepo) UpdateLastMessage(ctx context.Context, conversationID, messageID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE conversations
         SET last_message_id=$2,
             last_message_at=(SELECT created_at FROM messages WHERE id=$2)
         WHERE id=$1`,
		conversationID, messageID)
	return err
}
