package chat

import "jobboard-service/internal/models"

// Gate denial reasons surfaced to the user.
const (
	ReasonConversationClosed = "conversation unavailable for new messages"
	ReasonJobClosed          = "conversation unavailable because the job posting is closed"
	ReasonApplicationExpired = "conversation unavailable because the application has expired"
	ReasonContactBlocked     = "cannot message this contact"
)

// Verdict is the outcome of the send gate.
type Verdict struct {
	Allowed bool
	Reason  string
}

// Allow is the verdict for an unrestricted conversation.
var Allow = Verdict{Allowed: true}

func deny(reason string) Verdict {
	return Verdict{Reason: reason}
}

// CanSend decides whether a new message may enter the conversation. The same
// function runs on both sides: advisorily in the send pipeline and
// authoritatively in the ingest handler, which re-derives every input from
// its own rows. Precedence: conversation status, then job posting status,
// then application status, then contact blocks.
func CanSend(conv models.Conversation, jobPostingStatus, applicationStatus *string, blocked bool) Verdict {
	switch conv.Status {
	case models.ConversationJobClosed, models.ConversationApplicationExpired, models.ConversationBlocked:
		return deny(ReasonConversationClosed)
	}

	if jobPostingStatus != nil && *jobPostingStatus == models.JobStatusClosed {
		return deny(ReasonJobClosed)
	}

	if applicationStatus != nil && *applicationStatus == models.ApplicationStatusExpired {
		return deny(ReasonApplicationExpired)
	}

	if blocked {
		return deny(ReasonContactBlocked)
	}

	return Allow
}
