package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-service/internal/models"
)

func msgAt(id int, at time.Time) models.Message {
	body := "hello"
	return models.Message{
		ID:        id,
		Body:      &body,
		Status:    models.MessageSent,
		CreatedAt: at,
	}
}

func TestStoreRealtimeInsertDedup(t *testing.T) {
	store := NewStore()
	at := time.Now()

	store.ApplyRealtimeInsert(msgAt(1, at))
	store.ApplyRealtimeInsert(msgAt(1, at))

	assert.Equal(t, 1, store.Len())
}

func TestStoreSendResultThenRealtimePush(t *testing.T) {
	// The HTTP response and the realtime push for the same send race each
	// other; whichever arrives second must be a no-op.
	store := NewStore()
	at := time.Now()

	store.ApplySendSuccess(msgAt(7, at))
	store.ApplyRealtimeInsert(msgAt(7, at))
	assert.Equal(t, 1, store.Len())

	store2 := NewStore()
	store2.ApplyRealtimeInsert(msgAt(7, at))
	store2.ApplySendSuccess(msgAt(7, at))
	assert.Equal(t, 1, store2.Len())
}

func TestStoreLostResponseRecoveredByPush(t *testing.T) {
	// Send succeeds server-side but the response is dropped client-side; the
	// later realtime push still leaves exactly one copy.
	store := NewStore()
	store.ApplyRealtimeInsert(msgAt(42, time.Now()))
	require.Equal(t, 1, store.Len())
	store.ApplyRealtimeInsert(msgAt(42, time.Now().Add(time.Second)))
	assert.Equal(t, 1, store.Len())
}

func TestStoreMessagesSortedByCreatedAt(t *testing.T) {
	store := NewStore()
	base := time.Now()

	// Inserted out of creation order.
	store.ApplyRealtimeInsert(msgAt(3, base.Add(2*time.Second)))
	store.ApplyRealtimeInsert(msgAt(1, base))
	store.ApplyRealtimeInsert(msgAt(2, base.Add(time.Second)))

	msgs := store.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{msgs[0].ID, msgs[1].ID, msgs[2].ID})
}

func TestStoreLoadSkipsDuplicates(t *testing.T) {
	store := NewStore()
	at := time.Now()
	store.ApplyRealtimeInsert(msgAt(5, at))

	store.Load([]models.Message{msgAt(5, at), msgAt(6, at.Add(time.Second))})
	assert.Equal(t, 2, store.Len())
}

func TestStoreSendFailureSynthesizesFailedMessage(t *testing.T) {
	store := NewStore()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	msg := store.ApplySendFailure(5, 10, "hi there", "cannot message this contact")

	assert.Equal(t, int(fixed.UnixMilli()), msg.ID)
	assert.Equal(t, models.MessageFailed, msg.Status)
	require.NotNil(t, msg.FailedReason)
	assert.Equal(t, "cannot message this contact", *msg.FailedReason)
	require.NotNil(t, msg.Body)
	assert.Equal(t, "hi there", *msg.Body)
	assert.Equal(t, 1, store.Len())
}

func TestStoreSendFailureSameMillisecondDoesNotCollide(t *testing.T) {
	store := NewStore()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	first := store.ApplySendFailure(5, 10, "a", "x")
	second := store.ApplySendFailure(5, 10, "b", "x")

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, store.Len())
}

func TestStoreNeverLosesMessages(t *testing.T) {
	store := NewStore()
	base := time.Now()
	for i := 1; i <= 50; i++ {
		store.ApplyRealtimeInsert(msgAt(i, base.Add(time.Duration(i)*time.Millisecond)))
	}
	store.ApplySendFailure(1, 2, "x", "y")
	assert.Equal(t, 51, store.Len())
}
