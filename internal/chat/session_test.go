package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobboard-service/internal/models"
)

type fakeChannel struct {
	incoming chan models.ChatEvent
	outgoing []models.ChatEvent
	closed   bool
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{incoming: make(chan models.ChatEvent, 8)}
}

func (c *fakeChannel) ReadEvent() (models.ChatEvent, error) {
	evt, ok := <-c.incoming
	if !ok {
		return models.ChatEvent{}, assertAnError{}
	}
	return evt, nil
}

func (c *fakeChannel) WriteEvent(evt models.ChatEvent) error {
	c.outgoing = append(c.outgoing, evt)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestSessionDispatchMessageEvent(t *testing.T) {
	channel := newFakeChannel()
	session := NewSession(5, 10, channel, &stubSender{}, nil)

	body := "hi"
	session.dispatch(models.ChatEvent{
		Type:    models.EventMessage,
		Message: &models.Message{ID: 3, ConversationID: 5, SenderID: 2, Body: &body, Status: models.MessageSent, CreatedAt: time.Now()},
	})

	assert.Equal(t, 1, session.Store.Len())
}

func TestSessionDispatchTypingEvent(t *testing.T) {
	channel := newFakeChannel()
	session := NewSession(5, 10, channel, &stubSender{}, nil)

	session.dispatch(models.ChatEvent{Type: models.EventTyping, SenderID: 2})
	assert.Equal(t, []int{2}, session.Typing.ActiveTypers(time.Now()))

	// Self-echo is ignored.
	session.dispatch(models.ChatEvent{Type: models.EventTyping, SenderID: 10})
	assert.Equal(t, []int{2}, session.Typing.ActiveTypers(time.Now()))
}

func TestSessionTypingSignalWritesToChannel(t *testing.T) {
	channel := newFakeChannel()
	session := NewSession(5, 10, channel, &stubSender{}, nil)

	session.Typing.Signal()
	session.Typing.Signal() // throttled

	assert.Len(t, channel.outgoing, 1)
	assert.Equal(t, models.EventTyping, channel.outgoing[0].Type)
	assert.Equal(t, 10, channel.outgoing[0].SenderID)
}

func TestSessionCloseDetachesChannel(t *testing.T) {
	channel := newFakeChannel()
	session := NewSession(5, 10, channel, &stubSender{}, nil)
	session.Start()

	assert.NoError(t, session.Close())
	assert.True(t, channel.closed)
	close(channel.incoming)
}
