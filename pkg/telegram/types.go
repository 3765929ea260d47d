package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Update is an incoming webhook payload. Fields not used by the services
// are omitted.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message is a chat message.
type Message struct {
	MessageID int64  `json:"message_id"`
	Chat      *Chat  `json:"chat,omitempty"`
	Text      string `json:"text,omitempty"`
}

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID   ChatID `json:"id"`
	Type string `json:"type,omitempty"`
}

// ChatID identifies a chat. It holds either a numeric id or a channel
// username such as "@boomerverse"; the Bot API accepts both.
type ChatID string

// UnmarshalJSON accepts a JSON number or string.
func (id *ChatID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ChatID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("telegram: chat id must be a number or string: %w", err)
	}
	*id = ChatID(n.String())
	return nil
}

// MarshalJSON writes integer ids as numbers and anything else as a string.
func (id ChatID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// empty reports whether id names no chat. A numeric zero counts as empty.
func (id ChatID) empty() bool {
	if id == "" {
		return true
	}
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && n == 0
}

// ChatID returns the chat the update's message was sent in. The second
// result is false when the update carries no message or chat, or the
// chat id is empty or zero.
func (u Update) ChatID() (ChatID, bool) {
	if u.Message == nil || u.Message.Chat == nil || u.Message.Chat.ID.empty() {
		return "", false
	}
	return u.Message.Chat.ID, true
}

// WebhookInfo describes the currently registered webhook.
type WebhookInfo struct {
	URL                  string `json:"url"`
	PendingUpdateCount   int    `json:"pending_update_count"`
	LastErrorDate        int64  `json:"last_error_date,omitempty"`
	LastErrorMessage     string `json:"last_error_message,omitempty"`
	MaxConnections       int    `json:"max_connections,omitempty"`
	HasCustomCertificate bool   `json:"has_custom_certificate"`
}

type sendMessageRequest struct {
	ChatID ChatID `json:"chat_id"`
	Text   string `json:"text"`
}

type setWebhookRequest struct {
	URL         string `json:"url"`
	SecretToken string `json:"secret_token,omitempty"`
}

// apiResponse is the envelope of every Bot API response.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
}
