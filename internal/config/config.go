package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config keeps runtime settings for the service.
type Config struct {
	ListenAddr    string `yaml:"listen_addr"`
	DatabaseURL   string `yaml:"database_url"`
	TelegramToken string `yaml:"telegram_token"`
	ReminderTime  string `yaml:"reminder_time"` // HH:MM local time, empty disables the reminder
}

// Load reads configuration from an optional YAML file named by
// CONFIG_FILE, then lets environment variables override it, and fills
// in sane defaults. TELEGRAM_TOKEN is optional: without it,
// notifications are recorded and logged but not delivered to chat.
func Load() (Config, error) {
	var cfg Config

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.DatabaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")); v != "" {
		cfg.TelegramToken = v
	}
	if v := strings.TrimSpace(os.Getenv("REMINDER_TIME")); v != "" {
		cfg.ReminderTime = v
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "dayplan.db"
	}

	return cfg, nil
}
