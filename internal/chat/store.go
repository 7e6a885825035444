package chat

import (
	"sort"
	"sync"
	"time"

	"jobboard-service/internal/models"
)

// Store holds the messages of one open conversation on the client side. It
// merges the initial load, realtime inserts and send results into a single
// collection keyed by message id: a message is never inserted twice and never
// dropped, regardless of the order in which the HTTP response and the
// realtime push for the same send arrive.
type Store struct {
	mu   sync.Mutex
	byID map[int]models.Message

	// now is swapped in tests to pin synthetic failed-message ids.
	now func() time.Time
}

// NewStore creates an empty message store.
func NewStore() *Store {
	return &Store{
		byID: make(map[int]models.Message),
		now:  time.Now,
	}
}

// Load seeds the store from the initial conversation fetch.
func (s *Store) Load(msgs []models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range msgs {
		if _, ok := s.byID[m.ID]; !ok {
			s.byID[m.ID] = m
		}
	}
}

// ApplyRealtimeInsert merges a row pushed over the realtime channel. A no-op
// when the id is already present, which covers the race with the send
// pipeline's own HTTP response.
func (s *Store) ApplyRealtimeInsert(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[msg.ID]; ok {
		return
	}
	s.byID[msg.ID] = msg
}

// ApplySendSuccess merges the authoritative row returned by the ingest
// endpoint, replacing any earlier copy with the same id.
func (s *Store) ApplySendSuccess(msg models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[msg.ID] = msg
}

// ApplySendFailure synthesizes a FAILED message so the sender sees the
// attempt inline. The id is derived from the synthesis time and exists only
// for local display; the server never learns about it.
func (s *Store) ApplySendFailure(conversationID, senderID int, body, reason string) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	msg := models.Message{
		ID:             int(now.UnixMilli()),
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           &body,
		Status:         models.MessageFailed,
		FailedReason:   &reason,
		CreatedAt:      now,
		SentAt:         &now,
	}

	// Extremely unlikely, but two failures inside the same millisecond must
	// not collapse into one bubble.
	for {
		if _, ok := s.byID[msg.ID]; !ok {
			break
		}
		msg.ID++
	}

	s.byID[msg.ID] = msg
	return msg
}

// Messages returns the conversation in display order: created timestamp
// ascending, id as tiebreaker. Arrival order is irrelevant.
func (s *Store) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := make([]models.Message, 0, len(s.byID))
	for _, m := range s.byID {
		msgs = append(msgs, m)
	}
	sort.Slice(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].ID < msgs[j].ID
		}
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs
}

// Len reports the number of distinct messages held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
