package observability

type EventEnvelope struct {
	EventType string      `json:"event_type"`
	EventName string      `json:"event_name"`
	Payload   interface{} `json:"payload"`
}

func BuildHeaders(requestID, traceID string) map[string]string {
	headers := map[string]string{}
	if requestID != "" {
		headers["x-request-id"] = requestID
	}
	if traceID != "" {
		headers["trace_id"] = traceID
	}
	return headers
}

// WSEventPayload builds the envelope payload for conversation websocket
// lifecycle events.
func WSEventPayload(conversationID int, event, connID string, durationMS int64, reason string, userID int, deviceID, ip string) map[string]interface{} {
	return map[string]interface{}{
		"ws": map[string]interface{}{
			"conversation_id": conversationID,
			"event":           event,
			"conn_id":         connID,
			"duration_ms":     durationMS,
			"reason":          reason,
		},
		"identity": map[string]interface{}{
			"user_id":   userID,
			"device_id": deviceID,
			"ip":        ip,
		},
	}
}
