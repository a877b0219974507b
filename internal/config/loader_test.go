package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wanderbot/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const minimalConfig = `
telegram:
  token: "12345:test-token"
  admin_id: 42
`

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Telegram.Token != "12345:test-token" || cfg.Telegram.AdminUserID != 42 {
		t.Errorf("telegram section not loaded: %+v", cfg.Telegram)
	}
	if cfg.Travel.TriggerLock != time.Minute {
		t.Errorf("trigger lock default = %v, expected 1m", cfg.Travel.TriggerLock)
	}
	if cfg.Travel.FailureCooldown != 10*time.Minute {
		t.Errorf("failure cooldown default = %v, expected 10m", cfg.Travel.FailureCooldown)
	}
	if cfg.Travel.RetentionDays != 365 {
		t.Errorf("retention default = %d, expected 365", cfg.Travel.RetentionDays)
	}
	if cfg.Render.OutputMode != "image" {
		t.Errorf("output mode default = %q", cfg.Render.OutputMode)
	}
	if cfg.Messages.TravelTemplate == "" {
		t.Error("travel template default missing")
	}
	if len(cfg.Scheduler.Tasks) == 0 {
		t.Error("default scheduled tasks missing")
	}
	if task, ok := cfg.Scheduler.Tasks["cache_reset"]; !ok || task.Schedule == "" {
		t.Errorf("cache_reset task not configured: %+v", task)
	}
}

func TestLoadConfigDeprecatedFieldsAccepted(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
travel:
  legacy_trigger_word: "wakeup"
render:
  legacy_quality: 85
`)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("deprecated fields must not fail loading: %v", err)
	}
	if cfg.Travel.LegacyTriggerWord != "wakeup" {
		t.Errorf("deprecated field should still parse, got %q", cfg.Travel.LegacyTriggerWord)
	}
}

func TestLoadConfigMissingFileIsTolerated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	// With no file and no env overrides, loading must get past the read
	// step and fail on validation of the empty token instead.
	_, err := config.LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error with no configuration sources")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("missing config file should not fail the read step, got: %v", err)
	}
}

func TestLoadConfigMissingToken(t *testing.T) {
	path := writeConfig(t, `
telegram:
  admin_id: 42
`)

	if _, err := config.LoadConfig(path); err == nil {
		t.Fatal("expected validation error for missing token")
	}
}

func TestLoadConfigDynamicRequiresAPIKey(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
travel:
  dynamic_enabled: true
`)

	if _, err := config.LoadConfig(path); err == nil {
		t.Fatal("dynamic generation without an API key should fail validation")
	}
}

func TestLoadConfigCacheRequiresUploadURL(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
cache:
  enabled: true
`)

	if _, err := config.LoadConfig(path); err == nil {
		t.Fatal("cache without an upload URL should fail validation")
	}
}

func TestIsAdmin(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Telegram.AdminUserID = 42
	if !cfg.IsAdmin(42) {
		t.Error("admin ID should be recognized")
	}
	if cfg.IsAdmin(7) {
		t.Error("non-admin ID should be rejected")
	}
}
