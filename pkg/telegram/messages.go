package telegram

import (
	"context"
	"fmt"
)

// SendMessage sends a plain text message to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID ChatID, text string) error {
	if text == "" {
		return fmt.Errorf("telegram: message text is required")
	}
	return c.call(ctx, "sendMessage", sendMessageRequest{ChatID: chatID, Text: text}, nil)
}

// SetWebhook registers url as the bot's webhook. secretToken, when set, is
// echoed by Telegram in the X-Telegram-Bot-Api-Secret-Token header.
func (c *Client) SetWebhook(ctx context.Context, url, secretToken string) error {
	if url == "" {
		return fmt.Errorf("telegram: webhook url is required")
	}
	return c.call(ctx, "setWebhook", setWebhookRequest{URL: url, SecretToken: secretToken}, nil)
}

// GetWebhookInfo returns the current webhook registration.
func (c *Client) GetWebhookInfo(ctx context.Context) (*WebhookInfo, error) {
	var info WebhookInfo
	if err := c.call(ctx, "getWebhookInfo", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
