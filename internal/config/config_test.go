package config

import (
	"os"
	"testing"
	"time"
)

var configVars = []string{
	"TASKBOARD_ADDR",
	"DATABASE_URL",
	"SESSION_TTL",
	"SESSION_SWEEP_INTERVAL",
	"COOKIE_SECURE",
	"TELEGRAM_TOKEN",
	"DIGEST_TIME",
	"GIN_MODE",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Addr != ":8000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DatabaseURL != "taskboard.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.SessionTTL != 14*24*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.SessionSweepInterval != time.Hour {
		t.Errorf("SessionSweepInterval = %v", cfg.SessionSweepInterval)
	}
	if cfg.SecureCookies {
		t.Error("SecureCookies should default to false")
	}
	if cfg.DigestTime != "08:00" {
		t.Errorf("DigestTime = %q", cfg.DigestTime)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q", cfg.GinMode)
	}
	if cfg.DigestEnabled() {
		t.Error("digests should be disabled without a token")
	}
}

func TestParseOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TASKBOARD_ADDR", " 127.0.0.1:9000 ")
	t.Setenv("DATABASE_URL", "/var/lib/taskboard/app.db")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("DIGEST_TIME", "21:30")
	t.Setenv("GIN_MODE", "debug")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q, want trimmed", cfg.Addr)
	}
	if cfg.DatabaseURL != "/var/lib/taskboard/app.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if !cfg.SecureCookies {
		t.Error("SecureCookies should be true")
	}
	if !cfg.DigestEnabled() || cfg.DigestTime != "21:30" {
		t.Errorf("digest not configured: %+v", cfg)
	}
	if cfg.GinMode != "debug" {
		t.Errorf("GinMode = %q", cfg.GinMode)
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"zero ttl":        {"SESSION_TTL": "0s"},
		"negative sweep":  {"SESSION_SWEEP_INTERVAL": "-1m"},
		"bad duration":    {"SESSION_TTL": "two weeks"},
		"bad digest time": {"DIGEST_TIME": "8am"},
		"bad hour":        {"DIGEST_TIME": "24:00"},
		"bad gin mode":    {"GIN_MODE": "production"},
		"bad bool":        {"COOKIE_SECURE": "maybe"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}
			if _, err := Parse(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidClock(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]bool{
		"00:00": true,
		"8:05":  true,
		"23:59": true,
		"24:00": false,
		"12:60": false,
		"12":    false,
		"ab:cd": false,
		"":      false,
	} {
		if got := validClock(raw); got != want {
			t.Errorf("validClock(%q) = %v, want %v", raw, got, want)
		}
	}
}
