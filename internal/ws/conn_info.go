package ws

import "time"

// ConnInfo identifies one websocket connection for observability events.
type ConnInfo struct {
	ConnID      string
	UserID      int
	DeviceID    string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}
