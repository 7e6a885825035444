package models

import "time"

// Conversation statuses.
const (
	ConversationActive             = "ACTIVE"
	ConversationJobClosed          = "JOB_CLOSED"
	ConversationApplicationExpired = "APPLICATION_EXPIRED"
	ConversationBlocked            = "BLOCKED"
	ConversationArchived           = "ARCHIVED"
)

// Conversation is a recruiter/job-seeker thread anchored to a job posting.
// At most one conversation exists per (posting, seeker, recruiter) triple.
type Conversation struct {
	ID               int        `db:"id" json:"id"`
	JobSeekerID      int        `db:"job_seeker_id" json:"job_seeker_id"`
	RecruiterID      int        `db:"recruiter_id" json:"recruiter_id"`
	JobPostingID     *int       `db:"job_posting_id" json:"job_posting_id"`
	JobApplicationID *int       `db:"job_application_id" json:"job_application_id"`
	Status           string     `db:"status" json:"status"`
	LastMessageID    *int       `db:"last_message_id" json:"last_message_id"`
	LastMessageAt    *time.Time `db:"last_message_at" json:"last_message_at"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// Counterpart returns the participant who is not userID. The second result
// is false when userID is not a participant at all.
func (c Conversation) Counterpart(userID int) (int, bool) {
	switch userID {
	case c.JobSeekerID:
		return c.RecruiterID, true
	case c.RecruiterID:
		return c.JobSeekerID, true
	}
	return 0, false
}

// IsParticipant reports whether userID belongs to the conversation.
func (c Conversation) IsParticipant(userID int) bool {
	return userID == c.JobSeekerID || userID == c.RecruiterID
}

// ConversationContext carries a conversation together with the statuses of
// its linked job posting and application, joined in one lookup so the send
// gate is always derived from authoritative rows.
type ConversationContext struct {
	Conversation
	JobPostingStatus  *string `db:"job_posting_status" json:"job_posting_status"`
	ApplicationStatus *string `db:"application_status" json:"application_status"`
}
