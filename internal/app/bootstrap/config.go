// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"time"

	dashboardfeature "github.com/dalemusser/attendhub/internal/app/features/dashboard"
	metricsstore "github.com/dalemusser/attendhub/internal/app/store/metrics"
	"github.com/dalemusser/attendhub/internal/app/system/timezones"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

const (
	devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"
	devCSRFKey    = "dev-only-csrf-key-0123456789ABCDEF"
	csrfKeyLen    = 32
)

// appConfigKeys defines the configuration keys for AttendHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: ATTENDHUB_API_BASE_URL, ATTENDHUB_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:8080/api", Desc: "Attendance API base URL"},
	{Name: "api_timeout", Default: "30s", Desc: "Per-request ceiling for API calls (e.g., 30s, 1m)"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_encrypt_key", Default: "", Desc: "Optional session encryption key (16, 24 or 32 bytes)"},
	{Name: "session_name", Default: "attendhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},

	{Name: "csrf_key", Default: devCSRFKey, Desc: "CSRF authentication key (32+ bytes)"},

	{Name: "timezone", Default: "Local", Desc: "IANA time zone the console computes days in"},
	{Name: "work_start", Default: "09:00", Desc: "Time of day (HH:MM) after which a check-in is late"},
	{Name: "recent_activity_limit", Default: dashboardfeature.DefaultRecentLimit, Desc: "Rows in the dashboard's recent activity table"},

	{Name: "site_name", Default: "AttendHub", Desc: "Site name shown in the header"},
	{Name: "footer_html", Default: "", Desc: "Footer HTML (sanitized)"},
	{Name: "maps_url", Default: "https://maps.google.com/maps", Desc: "Map search page for the office location link"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, ATTENDHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ATTENDHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: appValues.String("api_base_url"),
		APITimeout: appValues.Duration("api_timeout", 30*time.Second),

		SessionKey:        appValues.String("session_key"),
		SessionEncryptKey: appValues.String("session_encrypt_key"),
		SessionName:       appValues.String("session_name"),
		SessionDomain:     appValues.String("session_domain"),
		SessionMaxAge:     appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		Timezone:            appValues.String("timezone"),
		WorkStart:           appValues.String("work_start"),
		RecentActivityLimit: appValues.Int("recent_activity_limit"),

		SiteName:   appValues.String("site_name"),
		FooterHTML: appValues.String("footer_html"),
		MapsURL:    appValues.String("maps_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Production refuses the built-in development keys.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateAppConfig(appCfg); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}

	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.SessionKey == devSessionKey {
			return fmt.Errorf("session_key must be set in production")
		}
		if appCfg.CSRFKey == devCSRFKey {
			return fmt.Errorf("csrf_key must be set in production")
		}
	}
	return nil
}

func validateAppConfig(appCfg AppConfig) error {
	u, err := url.Parse(appCfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url %q must be an absolute http(s) URL", appCfg.APIBaseURL)
	}
	if appCfg.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive")
	}
	if appCfg.SessionKey == "" {
		return fmt.Errorf("session_key is required")
	}
	switch len(appCfg.SessionEncryptKey) {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("session_encrypt_key must be 16, 24 or 32 bytes, got %d", len(appCfg.SessionEncryptKey))
	}
	if len(appCfg.CSRFKey) < csrfKeyLen {
		return fmt.Errorf("csrf_key must be at least %d bytes", csrfKeyLen)
	}
	if appCfg.RecentActivityLimit < 0 {
		return fmt.Errorf("recent_activity_limit must not be negative")
	}
	if _, err := appCfg.policy(); err != nil {
		return err
	}
	return nil
}

// policy resolves the configured calendar.
func (c AppConfig) policy() (metricsstore.Policy, error) {
	loc, err := timezones.Resolve(c.Timezone)
	if err != nil {
		return metricsstore.Policy{}, fmt.Errorf("timezone: %w", err)
	}
	start := metricsstore.DefaultWorkStart
	if c.WorkStart != "" {
		if start, err = timezones.ParseClock(c.WorkStart); err != nil {
			return metricsstore.Policy{}, fmt.Errorf("work_start: %w", err)
		}
	}
	return metricsstore.Policy{Location: loc, WorkStart: start}, nil
}
