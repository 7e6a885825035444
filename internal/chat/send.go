package chat

import (
	"context"
	"errors"
	"strings"

	"jobboard-service/internal/models"
)

// Pipeline validation errors. These fail fast before any network call and do
// not produce a failed-message bubble.
var (
	ErrEmptyMessage = errors.New("message must not be empty")
	ErrNotSignedIn  = errors.New("must be signed in to send")
)

// GenericSendFailure is shown when the server gives no usable error text.
const GenericSendFailure = "message failed to send, try again later"

// DeniedError reports a send blocked by the advisory gate.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string { return e.Reason }

// ServerError carries the ingest endpoint's status and error text.
type ServerError struct {
	Status int
	Reason string
}

func (e *ServerError) Error() string { return e.Reason }

// Sender issues the authoritative write for one message.
type Sender interface {
	SendMessage(ctx context.Context, conversationID, senderID int, body string) (models.Message, error)
}

// GateFunc supplies the current advisory verdict for the open conversation,
// evaluated from the client's last-known conversation state.
type GateFunc func() Verdict

// Pipeline orchestrates one message submission: advisory gate, validation,
// the server write, and merging the outcome into the store. A failure is
// terminal per attempt; the user resubmits by hand.
type Pipeline struct {
	store  *Store
	sender Sender
	gate   GateFunc
}

// NewPipeline wires a send pipeline to its store and transport. gate may be
// nil when no advisory restriction is known.
func NewPipeline(store *Store, sender Sender, gate GateFunc) *Pipeline {
	return &Pipeline{store: store, sender: sender, gate: gate}
}

// Send submits one message. On success the returned message is the
// authoritative server row, already merged into the store. On a server
// failure the returned message is the synthetic FAILED bubble and err
// describes the cause. Validation failures return only an error.
func (p *Pipeline) Send(ctx context.Context, conversationID, senderID int, body string) (models.Message, error) {
	if p.gate != nil {
		if v := p.gate(); !v.Allowed {
			return models.Message{}, &DeniedError{Reason: v.Reason}
		}
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return models.Message{}, ErrEmptyMessage
	}
	if senderID == 0 {
		return models.Message{}, ErrNotSignedIn
	}

	msg, err := p.sender.SendMessage(ctx, conversationID, senderID, trimmed)
	if err != nil {
		reason := GenericSendFailure
		var serverErr *ServerError
		if errors.As(err, &serverErr) && serverErr.Reason != "" {
			reason = serverErr.Reason
		}
		failed := p.store.ApplySendFailure(conversationID, senderID, trimmed, reason)
		return failed, err
	}

	p.store.ApplySendSuccess(msg)
	return msg, nil
}
