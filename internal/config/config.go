package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the web app.
type Config struct {
	Addr                 string        `env:"TASKBOARD_ADDR" envDefault:":8000"`
	DatabaseURL          string        `env:"DATABASE_URL" envDefault:"taskboard.db"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"336h"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1h"`
	SecureCookies        bool          `env:"COOKIE_SECURE" envDefault:"false"`
	TelegramToken        string        `env:"TELEGRAM_TOKEN"`
	DigestTime           string        `env:"DIGEST_TIME" envDefault:"08:00"`
	GinMode              string        `env:"GIN_MODE" envDefault:"release"`
}

// Load reads an optional .env file and then environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads configuration from environment variables with sane defaults.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.TelegramToken = strings.TrimSpace(cfg.TelegramToken)
	cfg.DigestTime = strings.TrimSpace(cfg.DigestTime)

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "taskboard.db"
	}
	if cfg.SessionTTL <= 0 {
		return cfg, fmt.Errorf("SESSION_TTL must be positive")
	}
	if cfg.SessionSweepInterval <= 0 {
		return cfg, fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if !validClock(cfg.DigestTime) {
		return cfg, fmt.Errorf("DIGEST_TIME %q must be HH:MM", cfg.DigestTime)
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return cfg, fmt.Errorf("GIN_MODE %q must be debug, release or test", cfg.GinMode)
	}

	return cfg, nil
}

// DigestEnabled reports whether Telegram digests should be scheduled.
func (c Config) DigestEnabled() bool {
	return c.TelegramToken != ""
}

func validClock(raw string) bool {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	minute, err := strconv.Atoi(parts[1])
	return err == nil && minute >= 0 && minute <= 59
}
