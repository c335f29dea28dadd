package bootstrap

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validConfig() AppConfig {
	return AppConfig{
		APIBaseURL:          "http://localhost:8080/api",
		APITimeout:          30 * time.Second,
		SessionKey:          devSessionKey,
		SessionName:         "attendhub-session",
		SessionMaxAge:       24 * time.Hour,
		CSRFKey:             devCSRFKey,
		Timezone:            "UTC",
		WorkStart:           "09:00",
		RecentActivityLimit: 5,
	}
}

func TestValidateAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"defaults", func(*AppConfig) {}, ""},
		{"https base", func(c *AppConfig) { c.APIBaseURL = "https://api.example.com" }, ""},
		{"relative base", func(c *AppConfig) { c.APIBaseURL = "/api" }, "api_base_url"},
		{"ftp base", func(c *AppConfig) { c.APIBaseURL = "ftp://example.com" }, "api_base_url"},
		{"zero timeout", func(c *AppConfig) { c.APITimeout = 0 }, "api_timeout"},
		{"no session key", func(c *AppConfig) { c.SessionKey = "" }, "session_key"},
		{"bad encrypt key", func(c *AppConfig) { c.SessionEncryptKey = "short" }, "session_encrypt_key"},
		{"good encrypt key", func(c *AppConfig) { c.SessionEncryptKey = strings.Repeat("k", 32) }, ""},
		{"short csrf key", func(c *AppConfig) { c.CSRFKey = "too-short" }, "csrf_key"},
		{"negative limit", func(c *AppConfig) { c.RecentActivityLimit = -1 }, "recent_activity_limit"},
		{"unknown timezone", func(c *AppConfig) { c.Timezone = "Mars/Olympus" }, "timezone"},
		{"local timezone", func(c *AppConfig) { c.Timezone = "Local" }, ""},
		{"bad work start", func(c *AppConfig) { c.WorkStart = "9am" }, "work_start"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := validateAppConfig(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("got %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateConfig_ProductionRejectsDevKeys(t *testing.T) {
	prod := &config.CoreConfig{Env: "prod"}

	if err := ValidateConfig(prod, validConfig(), zap.NewNop()); err == nil {
		t.Fatal("expected dev session key to be rejected in production")
	}

	cfg := validConfig()
	cfg.SessionKey = strings.Repeat("s", 40)
	if err := ValidateConfig(prod, cfg, zap.NewNop()); err == nil || !strings.Contains(err.Error(), "csrf_key") {
		t.Fatalf("expected dev csrf key to be rejected, got %v", err)
	}

	cfg.CSRFKey = strings.Repeat("c", 32)
	if err := ValidateConfig(prod, cfg, zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dev := &config.CoreConfig{Env: "dev"}
	if err := ValidateConfig(dev, validConfig(), zap.NewNop()); err != nil {
		t.Fatalf("dev keys should be accepted outside production: %v", err)
	}
}

func TestPolicy(t *testing.T) {
	cfg := validConfig()
	cfg.Timezone = "America/New_York"
	cfg.WorkStart = "08:30"

	p, err := cfg.policy()
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	if p.Location.String() != "America/New_York" {
		t.Errorf("Location: got %s", p.Location)
	}
	if p.WorkStart.Hour != 8 || p.WorkStart.Minute != 30 {
		t.Errorf("WorkStart: got %+v", p.WorkStart)
	}

	cfg.WorkStart = ""
	p, _ = cfg.policy()
	if p.WorkStart.Hour != 9 || p.WorkStart.Minute != 0 {
		t.Errorf("default WorkStart: got %+v", p.WorkStart)
	}
}

func TestConnectDB(t *testing.T) {
	deps, err := ConnectDB(context.Background(), nil, validConfig(), zap.NewNop())
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	if deps.API == nil || deps.API.BaseURL() != "http://localhost:8080/api" {
		t.Fatalf("unexpected client: %+v", deps.API)
	}
	if err := Shutdown(context.Background(), nil, validConfig(), deps, zap.NewNop()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	cfg := validConfig()
	cfg.APIBaseURL = "localhost:8080"
	if _, err := ConnectDB(context.Background(), nil, cfg, zap.NewNop()); err == nil {
		t.Fatal("expected an error for a base URL without scheme")
	}
}
