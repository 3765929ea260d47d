package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Output format template for the now command
	// Default: "{{.Artist}} - {{.Title}}"
	OutputFormat string

	// Fixed output width for the now command (0 = disabled)
	OutputWidth int

	// Marquee scrolling for the now command
	MarqueeEnabled   bool
	MarqueeSpeed     int
	MarqueeSeparator string

	Server     ServerConfig
	Upstream   UpstreamConfig
	Radio      RadioConfig
	Cloudinary CloudinaryConfig
	Lore       LoreConfig
	Roulette   RouletteConfig
	Telegram   TelegramConfig
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// UpstreamConfig holds settings shared by outbound API clients
type UpstreamConfig struct {
	// Timeout for a single upstream request (0 = no client timeout)
	Timeout time.Duration
}

// RadioConfig holds RadioKing station settings
type RadioConfig struct {
	APIBase     string
	Slug        string
	StreamURL   string
	NextLimit   int
	RecentLimit int
	TopLimit    int
}

// CloudinaryConfig holds the shared Cloudinary account credentials
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	APIBase   string
}

// LoreConfig holds lore site settings
type LoreConfig struct {
	PageSize  int
	ReplyText string
}

// RouletteConfig holds image roulette settings. The roulette uses its
// own Cloudinary key pair on the shared cloud.
type RouletteConfig struct {
	APIKey      string
	APISecret   string
	PageSize    int
	HistorySize int
	// Optional SQLite path; when empty the recently shown set lives in memory
	HistoryDB string
}

// TelegramConfig holds Bot API settings
type TelegramConfig struct {
	Token   string
	APIBase string
}

// envBindings maps config keys to the secret names used by the deployed
// workers, so existing .env files keep working.
var envBindings = map[string]string{
	"cloudinary.cloud_name": "CLOUDINARY_CLOUD_NAME",
	"cloudinary.api_key":    "CLOUDINARY_API_KEY",
	"cloudinary.api_secret": "CLOUDINARY_API_SECRET",
	"roulette.api_key":      "CONTENTBOB_CLOUDINARY_API_KEY",
	"roulette.api_secret":   "CONTENTBOB_CLOUDINARY_API_SECRET",
	"telegram.token":        "TELEGRAM_TOKEN",
}

// Load reads configuration from .env, the config file and environment
func Load() (*Config, error) {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables: BOOMER_SERVER_ADDR etc.
	v.SetEnvPrefix("BOOMER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envBindings {
		// BOOMER_-prefixed variable first, then the legacy name
		_ = v.BindEnv(key, "BOOMER_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output_format", "{{.Artist}} - {{.Title}}")
	v.SetDefault("output_width", 0)
	v.SetDefault("marquee_enabled", false)
	v.SetDefault("marquee_speed", 2)
	v.SetDefault("marquee_separator", " • ")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("upstream.timeout", time.Duration(0))

	v.SetDefault("radio.api_base", "https://api.radioking.io")
	v.SetDefault("radio.slug", "boomerfm-web3")
	v.SetDefault("radio.stream_url", "https://api.radioking.io/radio/736730/listen.m3u")
	v.SetDefault("radio.next_limit", 1)
	v.SetDefault("radio.recent_limit", 3)
	v.SetDefault("radio.top_limit", 5)

	v.SetDefault("cloudinary.api_base", "https://api.cloudinary.com/v1_1")

	v.SetDefault("lore.page_size", 100)
	v.SetDefault("lore.reply_text", "Hello from Boomerverse Lore!")

	v.SetDefault("roulette.page_size", 500)
	v.SetDefault("roulette.history_size", 55)
	v.SetDefault("roulette.history_db", "")

	v.SetDefault("telegram.api_base", "https://api.telegram.org")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		OutputFormat:     v.GetString("output_format"),
		OutputWidth:      v.GetInt("output_width"),
		MarqueeEnabled:   v.GetBool("marquee_enabled"),
		MarqueeSpeed:     v.GetInt("marquee_speed"),
		MarqueeSeparator: v.GetString("marquee_separator"),
		Server: ServerConfig{
			Addr:         v.GetString("server.addr"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Upstream: UpstreamConfig{
			Timeout: v.GetDuration("upstream.timeout"),
		},
		Radio: RadioConfig{
			APIBase:     v.GetString("radio.api_base"),
			Slug:        v.GetString("radio.slug"),
			StreamURL:   v.GetString("radio.stream_url"),
			NextLimit:   v.GetInt("radio.next_limit"),
			RecentLimit: v.GetInt("radio.recent_limit"),
			TopLimit:    v.GetInt("radio.top_limit"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: v.GetString("cloudinary.cloud_name"),
			APIKey:    v.GetString("cloudinary.api_key"),
			APISecret: v.GetString("cloudinary.api_secret"),
			APIBase:   v.GetString("cloudinary.api_base"),
		},
		Lore: LoreConfig{
			PageSize:  v.GetInt("lore.page_size"),
			ReplyText: v.GetString("lore.reply_text"),
		},
		Roulette: RouletteConfig{
			APIKey:      v.GetString("roulette.api_key"),
			APISecret:   v.GetString("roulette.api_secret"),
			PageSize:    v.GetInt("roulette.page_size"),
			HistorySize: v.GetInt("roulette.history_size"),
			HistoryDB:   v.GetString("roulette.history_db"),
		},
		Telegram: TelegramConfig{
			Token:   v.GetString("telegram.token"),
			APIBase: v.GetString("telegram.api_base"),
		},
	}
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(homeDir, ".config", "boomer")
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// GetDataDir returns the directory for local state such as the roulette
// history database
func GetDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".local", "share", "boomer")
}
