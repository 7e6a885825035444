package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"jobboard-service/internal/models"
)

// HTTPSender posts messages to the ingest endpoint.
type HTTPSender struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

// NewHTTPSender builds a sender against baseURL; token is attached as a
// bearer credential when non-empty.
func NewHTTPSender(baseURL, token string) *HTTPSender {
	return &HTTPSender{BaseURL: baseURL, Token: token, Client: http.DefaultClient}
}

type sendRequest struct {
	ConversationID int    `json:"conversationId"`
	SenderID       int    `json:"senderId"`
	Text           string `json:"text"`
}

// SendMessage issues POST /messages and decodes the persisted row. Non-2xx
// responses become a ServerError carrying the server's error text so the
// pipeline can surface it inline.
func (s *HTTPSender) SendMessage(ctx context.Context, conversationID, senderID int, body string) (models.Message, error) {
	payload, err := json.Marshal(sendRequest{
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           body,
	})
	if err != nil {
		return models.Message{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return models.Message{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return models.Message{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return models.Message{}, &ServerError{Status: resp.StatusCode, Reason: errBody.Error}
	}

	var msg models.Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return models.Message{}, fmt.Errorf("decode message: %w", err)
	}
	return msg, nil
}
