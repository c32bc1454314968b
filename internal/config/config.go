// Package config handles application configuration from environment variables
// and an optional YAML file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	StaticMode       bool          `yaml:"static_mode"`
	APIBaseURL       string        `yaml:"api_base_url"`
	SnapshotSource   string        `yaml:"snapshot_source"`
	ListenAddr       string        `yaml:"listen_addr"`
	PublicURL        string        `yaml:"public_url"`
	LogLevel         string        `yaml:"log_level"`
	HTTPTimeout      time.Duration `yaml:"http_timeout"`
	TelegramBotToken string        `yaml:"telegram_bot_token"`
	AllowedUsers     []int64       `yaml:"allowed_users"`
	S3Region         string        `yaml:"s3_region"`
	S3UsePathStyle   bool          `yaml:"s3_use_path_style"`
}

func defaults() *Config {
	return &Config{
		APIBaseURL:     "http://localhost:8000",
		SnapshotSource: "./public",
		ListenAddr:     ":8080",
		LogLevel:       "info",
		HTTPTimeout:    10 * time.Second,
	}
}

// Load reads configuration. Values from the YAML file named by BRIEFING_CONFIG
// are applied first; non-empty environment variables override them.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("BRIEFING_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	if raw := os.Getenv("STATIC_MODE"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid STATIC_MODE %q: %w", raw, err)
		}
		c.StaticMode = v
	}
	if raw := os.Getenv("S3_USE_PATH_STYLE"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid S3_USE_PATH_STYLE %q: %w", raw, err)
		}
		c.S3UsePathStyle = v
	}
	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", raw, err)
		}
		c.HTTPTimeout = d
	}

	setString(&c.APIBaseURL, "API_BASE_URL")
	setString(&c.SnapshotSource, "SNAPSHOT_SOURCE")
	setString(&c.ListenAddr, "LISTEN_ADDR")
	setString(&c.PublicURL, "PUBLIC_URL")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.TelegramBotToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.S3Region, "S3_REGION")

	if raw := os.Getenv("ALLOWED_USERS"); raw != "" {
		var allowedUsers []int64
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			uid, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user ID %q in ALLOWED_USERS: %w", s, err)
			}
			allowedUsers = append(allowedUsers, uid)
		}
		c.AllowedUsers = allowedUsers
	}
	return nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q, use: debug, info, warn, error", c.LogLevel)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.StaticMode && c.SnapshotSource == "" {
		return fmt.Errorf("SNAPSHOT_SOURCE is required in static mode")
	}
	if !c.StaticMode && c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required in live mode")
	}
	if c.PublicURL != "" {
		u, err := url.Parse(c.PublicURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid PUBLIC_URL %q, want an absolute http(s) URL", c.PublicURL)
		}
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// BotEnabled reports whether a Telegram token is configured.
func (c *Config) BotEnabled() bool {
	return c.TelegramBotToken != ""
}

// IsUserAllowed checks whether a user ID is in the allow list.
// Returns true if the allow list is empty (all users permitted).
func (c *Config) IsUserAllowed(userID int64) bool {
	if len(c.AllowedUsers) == 0 {
		return true
	}
	for _, id := range c.AllowedUsers {
		if id == userID {
			return true
		}
	}
	return false
}
