package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/boomerverse/boomer/internal/config"
	"github.com/boomerverse/boomer/internal/lore"
	"github.com/boomerverse/boomer/internal/messenger"
	"github.com/boomerverse/boomer/internal/picker"
	"github.com/boomerverse/boomer/internal/radio"
	"github.com/boomerverse/boomer/internal/roulette"
	"github.com/boomerverse/boomer/internal/server"
	"github.com/boomerverse/boomer/pkg/cloudinary"
	"github.com/boomerverse/boomer/pkg/radioking"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// services lists what 'boomer serve' can run
var services = []string{"radio", "lore", "roulette"}

var (
	serveAddr     string
	serveLogFile  string
	serveLogLevel string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:       "serve <radio|lore|roulette>",
	Short:     "Run one of the web services",
	ValidArgs: services,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Long: `Run one of the Boomerverse web services in the foreground.

  radio     needs no secrets
  lore      needs CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_API_SECRET
            and TELEGRAM_TOKEN for webhook replies
  roulette  needs CLOUDINARY_CLOUD_NAME, CONTENTBOB_CLOUDINARY_API_KEY and
            CONTENTBOB_CLOUDINARY_API_SECRET

The server shuts down gracefully on SIGINT/SIGTERM. It logs to stderr by
default; use --log-file to log to a file (useful under systemd).`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "Log file path (default: stderr)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	logger := setupLogger(serveLogFile, serveLogLevel)

	logger.Info().
		Str("version", version).
		Str("service", name).
		Msg("Starting boomer")

	handler, cleanup, err := buildService(name, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error().Err(err).Msg("Error during shutdown")
		}
	}()

	srv := server.New(server.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, name, handler, logger)

	if err := srv.Run(context.Background()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info().Msg("Server stopped")
	return nil
}

// buildService wires the handler for the named service. cleanup releases
// anything the handler holds open.
func buildService(name string, cfg *config.Config, logger zerolog.Logger) (http.Handler, func() error, error) {
	noop := func() error { return nil }
	httpClient := &http.Client{Timeout: cfg.Upstream.Timeout}

	switch name {
	case "radio":
		client, err := radioking.NewClient(radioking.Config{
			Slug:       cfg.Radio.Slug,
			BaseURL:    cfg.Radio.APIBase,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create radioking client: %w", err)
		}
		limits := radio.Limits{
			Next:   cfg.Radio.NextLimit,
			Recent: cfg.Radio.RecentLimit,
			Top:    cfg.Radio.TopLimit,
		}
		agg := radio.NewAggregator(client, cfg.Radio.StreamURL, limits, logger)
		return radio.NewHandler(agg, logger), noop, nil

	case "lore":
		client, err := newCloudinaryClient(cfg, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, httpClient, logger)
		if err != nil {
			return nil, nil, err
		}

		var notifier lore.Notifier
		if cfg.Telegram.Token == "" {
			logger.Warn().Msg("TELEGRAM_TOKEN not set, webhook updates will not be answered")
		} else {
			n, err := messenger.NewTelegram(cfg.Telegram.Token, cfg.Telegram.APIBase, httpClient, cfg.Lore.ReplyText, logger)
			if err != nil {
				return nil, nil, err
			}
			notifier = n
		}

		h, err := lore.NewHandler(client.Search(), notifier, cfg.Lore.PageSize, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create lore handler: %w", err)
		}
		return h, noop, nil

	case "roulette":
		client, err := newCloudinaryClient(cfg, cfg.Roulette.APIKey, cfg.Roulette.APISecret, httpClient, logger)
		if err != nil {
			return nil, nil, err
		}

		history, cleanup, err := newHistory(cfg.Roulette, logger)
		if err != nil {
			return nil, nil, err
		}

		h := roulette.NewHandler(
			client.Search(),
			client,
			picker.New(history),
			roulette.NewDataURLFetcher(httpClient),
			cfg.Roulette.PageSize,
			logger,
		)
		return h, cleanup, nil
	}

	return nil, nil, fmt.Errorf("unknown service %q (want one of %v)", name, services)
}

func newCloudinaryClient(cfg *config.Config, apiKey, apiSecret string, httpClient *http.Client, logger zerolog.Logger) (*cloudinary.Client, error) {
	client, err := cloudinary.NewClient(cloudinary.Config{
		CloudName:  cfg.Cloudinary.CloudName,
		APIKey:     apiKey,
		APISecret:  apiSecret,
		BaseURL:    cfg.Cloudinary.APIBase,
		HTTPClient: httpClient,
		Logger:     zerologAdapter{logger.With().Str("component", "cloudinary").Logger()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return client, nil
}

// newHistory returns the roulette's recently shown store: SQLite when a
// database path is configured, memory otherwise.
func newHistory(cfg config.RouletteConfig, logger zerolog.Logger) (picker.History, func() error, error) {
	if cfg.HistoryDB == "" {
		return picker.NewMemoryHistory(cfg.HistorySize), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.HistoryDB), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	history, err := picker.NewSQLiteHistory(cfg.HistoryDB, cfg.HistorySize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history database: %w", err)
	}

	logger.Info().Str("history_db", cfg.HistoryDB).Msg("Using persistent image history")
	return history, history.Close, nil
}

// zerologAdapter satisfies the SDK Logger interfaces
type zerologAdapter struct {
	logger zerolog.Logger
}

func (a zerologAdapter) Debugf(format string, args ...interface{}) {
	a.logger.Debug().Msgf(format, args...)
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	// Parse log level
	level := zerolog.InfoLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}
