// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework side (ports, TLS, logging, CORS); everything the console itself
// needs lives here and is passed to every lifecycle hook.
type AppConfig struct {
	// Attendance API
	APIBaseURL string        // API root, e.g. http://localhost:8080/api
	APITimeout time.Duration // overall per-request ceiling of the HTTP client

	// Session cookie
	SessionKey        string        // signing key (32+ chars in production)
	SessionEncryptKey string        // optional AES key (16, 24 or 32 bytes); blank leaves the cookie signed only
	SessionName       string        // cookie name (default: attendhub-session)
	SessionDomain     string        // cookie domain (blank means current host)
	SessionMaxAge     time.Duration // cookie lifetime

	// CSRF protection for every form
	CSRFKey string // at least 32 bytes; the first 32 are used

	// Calendar the console computes days and lateness in
	Timezone  string // IANA name, or "Local"
	WorkStart string // HH:MM after which a check-in is late

	// Dashboard
	RecentActivityLimit int

	// Branding
	SiteName   string
	FooterHTML string // sanitized before display

	// Map search page for the settings "View on Maps" link
	MapsURL string
}
