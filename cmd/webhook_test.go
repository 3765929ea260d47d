package cmd

import "testing"

func TestWebhookEndpoint(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://lore.example.com", "https://lore.example.com/telegram"},
		{"https://lore.example.com/", "https://lore.example.com/telegram"},
		{"https://lore.example.com/telegram", "https://lore.example.com/telegram"},
		{"https://lore.example.com/telegram/", "https://lore.example.com/telegram"},
	}

	for _, tt := range tests {
		if got := webhookEndpoint(tt.input); got != tt.expected {
			t.Errorf("webhookEndpoint(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
