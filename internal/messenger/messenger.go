// Package messenger sends chat replies without reporting the outcome to
// the caller. Send failures are logged.
package messenger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/boomerverse/boomer/pkg/telegram"
	"github.com/rs/zerolog"
)

// Sender delivers a text message to a chat
type Sender interface {
	SendMessage(ctx context.Context, chatID telegram.ChatID, text string) error
}

// Notifier replies to a chat with a fixed text
type Notifier struct {
	sender Sender
	text   string
	logger zerolog.Logger
}

// New creates a Notifier that sends text through sender
func New(sender Sender, text string, logger zerolog.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		text:   text,
		logger: logger.With().Str("component", "messenger").Logger(),
	}
}

// NewTelegram creates a Notifier backed by the Telegram Bot API
func NewTelegram(token, apiBase string, httpClient *http.Client, text string, logger zerolog.Logger) (*Notifier, error) {
	client, err := telegram.NewClient(telegram.Config{
		Token:      token,
		BaseURL:    apiBase,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	return New(client, text, logger), nil
}

// Notify sends the reply to chatID
func (n *Notifier) Notify(ctx context.Context, chatID telegram.ChatID) {
	if err := n.sender.SendMessage(ctx, chatID, n.text); err != nil {
		n.logger.Warn().Err(err).Str("chat_id", string(chatID)).Msg("Failed to send reply")
		return
	}
	n.logger.Debug().Str("chat_id", string(chatID)).Msg("Reply sent")
}
