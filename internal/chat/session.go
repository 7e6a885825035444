package chat

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"jobboard-service/internal/models"
)

// Channel is the conversation's realtime subscription: a websocket carrying
// "message" row inserts and fire-and-forget "typing" broadcasts.
type Channel interface {
	ReadEvent() (models.ChatEvent, error)
	WriteEvent(models.ChatEvent) error
	Close() error
}

type wsChannel struct {
	conn *websocket.Conn
}

func (c *wsChannel) ReadEvent() (models.ChatEvent, error) {
	var evt models.ChatEvent
	err := c.conn.ReadJSON(&evt)
	return evt, err
}

func (c *wsChannel) WriteEvent(evt models.ChatEvent) error {
	return c.conn.WriteJSON(evt)
}

func (c *wsChannel) Close() error {
	return c.conn.Close()
}

// Session owns the client-side state of one open conversation: the message
// store, the typing tracker and the realtime subscription feeding both.
type Session struct {
	ConversationID int
	UserID         int
	Store          *Store
	Typing         *TypingTracker
	Pipeline       *Pipeline

	channel Channel
	cancel  context.CancelFunc
}

// NewSession assembles a session over an established channel. gate supplies
// the advisory verdict for the send pipeline; sender performs the
// authoritative write.
func NewSession(conversationID, userID int, channel Channel, sender Sender, gate GateFunc) *Session {
	store := NewStore()
	s := &Session{
		ConversationID: conversationID,
		UserID:         userID,
		Store:          store,
		Pipeline:       NewPipeline(store, sender, gate),
		channel:        channel,
	}
	s.Typing = NewTypingTracker(userID, func(senderID int) {
		if err := channel.WriteEvent(models.ChatEvent{Type: models.EventTyping, SenderID: senderID}); err != nil {
			log.Warn().Err(err).Int("conversation_id", conversationID).Msg("typing broadcast failed")
		}
	})
	return s
}

// DialSession connects the conversation websocket and assembles a session
// around it.
func DialSession(ctx context.Context, wsURL, token string, conversationID, userID int, sender Sender, gate GateFunc) (*Session, error) {
	url := wsURL
	if token != "" {
		url += "?token=" + token
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return NewSession(conversationID, userID, &wsChannel{conn: conn}, sender, gate), nil
}

// Start launches the read loop and the typing sweep. Both stop when the
// session closes.
func (s *Session) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.Typing.Run(ctx)
	go func() {
		defer cancel()
		for {
			evt, err := s.channel.ReadEvent()
			if err != nil {
				if ctx.Err() == nil {
					log.Debug().Err(err).Int("conversation_id", s.ConversationID).Msg("realtime channel closed")
				}
				return
			}
			s.dispatch(evt)
		}
	}()
}

func (s *Session) dispatch(evt models.ChatEvent) {
	switch evt.Type {
	case models.EventMessage:
		if evt.Message != nil {
			s.Store.ApplyRealtimeInsert(*evt.Message)
		}
	case models.EventTyping:
		s.Typing.Observe(evt.SenderID, time.Now())
	}
}

// Close detaches the realtime subscription and stops the typing sweep. An
// in-flight send is not cancelled; its result is simply dropped with the
// session.
func (s *Session) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	return s.channel.Close()
}
