package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("Expected development environment, got %s", cfg.Environment)
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("Expected 1s tick, got %s", cfg.TickInterval)
	}
	if cfg.FeedbackDelay != 2*time.Second {
		t.Errorf("Expected 2s feedback delay, got %s", cfg.FeedbackDelay)
	}
	if !cfg.CaptureEnabled {
		t.Error("Expected capture to be enabled by default")
	}
	if cfg.ImageDelay != 2*time.Second {
		t.Errorf("Expected 2s image delay, got %s", cfg.ImageDelay)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GROOMIFY_PORT", "9090")
	t.Setenv("GROOMIFY_ENV", "production")
	t.Setenv("GROOMIFY_FEEDBACK_DELAY", "500ms")
	t.Setenv("GROOMIFY_CAPTURE_ENABLED", "false")
	t.Setenv("GROOMIFY_IMAGE_DELAY", "0s")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Errorf("Expected production environment, got %s", cfg.Environment)
	}
	if cfg.FeedbackDelay != 500*time.Millisecond {
		t.Errorf("Expected 500ms feedback delay, got %s", cfg.FeedbackDelay)
	}
	if cfg.CaptureEnabled {
		t.Error("Expected capture to be disabled")
	}
	if cfg.ImageDelay != 0 {
		t.Errorf("Expected no image delay, got %s", cfg.ImageDelay)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("GROOMIFY_SESSION_DURATION", "forever")
	t.Setenv("GROOMIFY_CAPTURE_ENABLED", "maybe")

	cfg := Load()

	if cfg.SessionDuration != 24*time.Hour {
		t.Errorf("Expected fallback session duration 24h, got %s", cfg.SessionDuration)
	}
	if !cfg.CaptureEnabled {
		t.Error("Expected fallback capture enabled")
	}
}
