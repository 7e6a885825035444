package chat

import (
	"context"
	"sort"
	"sync"
	"time"
)

const (
	// typingTTL is how long a peer counts as typing after their last signal.
	// There is no "stopped typing" event on the wire; expiry is the only way
	// an indicator clears.
	typingTTL = 3 * time.Second
	// sweepInterval is how often stale entries are pruned.
	sweepInterval = time.Second
	// signalThrottle bounds the local user's outgoing typing broadcasts.
	signalThrottle = time.Second
)

// TypingTracker keeps the ephemeral per-sender last-seen-typing map for one
// conversation. It is independent of the message store: its lifecycle is tied
// to the conversation being open, not to any message activity.
type TypingTracker struct {
	mu         sync.Mutex
	selfID     int
	seen       map[int]time.Time
	lastSignal time.Time

	broadcast func(senderID int)
	now       func() time.Time
}

// NewTypingTracker creates a tracker for the local user selfID. broadcast is
// invoked (throttled) to push the user's own typing signal onto the realtime
// channel; it may be nil for receive-only use.
func NewTypingTracker(selfID int, broadcast func(senderID int)) *TypingTracker {
	return &TypingTracker{
		selfID:    selfID,
		seen:      make(map[int]time.Time),
		broadcast: broadcast,
		now:       time.Now,
	}
}

// Signal records local typing activity. The outbound broadcast fires at most
// once per second no matter how often the caller invokes this.
func (t *TypingTracker) Signal() {
	t.mu.Lock()
	now := t.now()
	if now.Sub(t.lastSignal) < signalThrottle {
		t.mu.Unlock()
		return
	}
	t.lastSignal = now
	broadcast := t.broadcast
	t.mu.Unlock()

	if broadcast != nil {
		broadcast(t.selfID)
	}
}

// Observe records a remote typing broadcast. Self-echoes are ignored;
// duplicates just refresh the timestamp.
func (t *TypingTracker) Observe(senderID int, at time.Time) {
	if senderID == t.selfID {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seen[senderID] = at
}

// ActiveTypers returns the senders observed typing within the last three
// seconds, in ascending id order.
func (t *TypingTracker) ActiveTypers(now time.Time) []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]int, 0, len(t.seen))
	for id, at := range t.seen {
		if now.Sub(at) < typingTTL {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Run prunes stale entries once per second until ctx is cancelled. Closing a
// conversation cancels this loop together with its realtime subscription.
func (t *TypingTracker) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.sweep(t.now())
		}
	}
}

func (t *TypingTracker) sweep(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, at := range t.seen {
		if now.Sub(at) >= typingTTL {
			delete(t.seen, id)
		}
	}
}
