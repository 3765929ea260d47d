package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/boomerverse/boomer/internal/config"
	"github.com/boomerverse/boomer/pkg/telegram"
	"github.com/spf13/cobra"
)

var webhookURL string

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage the Telegram webhook of the lore bot",
	Long: `Register or inspect the Telegram webhook that delivers bot updates to
the lore service.

Telegram only calls the lore service's /telegram endpoint after the
webhook has been registered with 'boomer webhook set'. The bot token is
read from TELEGRAM_TOKEN.`,
}

var webhookSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Point the bot's webhook at a lore deployment",
	Long: `Register a webhook URL with Telegram.

--url may be the full endpoint or the base URL of the lore service, in
which case /telegram is appended.`,
	RunE: runWebhookSet,
}

var webhookInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the bot's current webhook status",
	RunE:  runWebhookInfo,
}

func init() {
	rootCmd.AddCommand(webhookCmd)
	webhookCmd.AddCommand(webhookSetCmd)
	webhookCmd.AddCommand(webhookInfoCmd)

	webhookSetCmd.Flags().StringVar(&webhookURL, "url", "", "Public URL of the lore service (required)")
	_ = webhookSetCmd.MarkFlagRequired("url")
}

func newTelegramClient() (*telegram.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("Telegram token not configured. Set TELEGRAM_TOKEN first")
	}

	client, err := telegram.NewClient(telegram.Config{
		Token:   cfg.Telegram.Token,
		BaseURL: cfg.Telegram.APIBase,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	return client, nil
}

// webhookEndpoint appends /telegram to a base URL
func webhookEndpoint(u string) string {
	u = strings.TrimRight(u, "/")
	if strings.HasSuffix(u, "/telegram") {
		return u
	}
	return u + "/telegram"
}

func runWebhookSet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := newTelegramClient()
	if err != nil {
		return err
	}

	endpoint := webhookEndpoint(webhookURL)
	if !strings.HasPrefix(endpoint, "https://") {
		return fmt.Errorf("telegram requires an https webhook URL, got %s", endpoint)
	}

	if err := client.SetWebhook(ctx, endpoint, ""); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	fmt.Printf("✓ Webhook set to %s\n", endpoint)
	fmt.Println("\nCheck delivery status with:")
	fmt.Println("  boomer webhook info")
	return nil
}

func runWebhookInfo(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := newTelegramClient()
	if err != nil {
		return err
	}

	info, err := client.GetWebhookInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to get webhook info: %w", err)
	}

	if info.URL == "" {
		fmt.Println("No webhook registered. Run 'boomer webhook set --url <lore URL>'")
		return nil
	}

	fmt.Printf("URL:             %s\n", info.URL)
	fmt.Printf("Pending updates: %d\n", info.PendingUpdateCount)
	if info.LastErrorMessage != "" {
		fmt.Printf("Last error:      %s (%s)\n", info.LastErrorMessage, time.Unix(info.LastErrorDate, 0).Format(time.RFC3339))
	}
	return nil
}
