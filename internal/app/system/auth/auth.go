// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// The session cookie holds exactly the two values the console persists:
// the bearer token and the cached profile. expires_at is informational.
const (
	tokenKey     = "token"
	userKey      = "user"
	expiresAtKey = "expires_at"
)

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the session cookie and the lifecycle of the
// *models.Session handed to every API call: Establish at login, Clear at
// logout or when the API rejects the token.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	maxAge time.Duration
	log    *zap.Logger
}

// NewSessionManager creates a cookie-backed session manager.
//
// In production (secure=true) cookies are Secure + SameSite=None.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "attendhub-session"
	}
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts
	store.MaxAge(opts.MaxAge)

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{store: store, name: name, maxAge: maxAge, log: logger}, nil
}

// EnableEncryption encrypts the cookie payload with AES in addition to
// signing it, so the bearer token is not readable in the browser.
// blockKey must be 16, 24 or 32 bytes.
func (sm *SessionManager) EnableEncryption(hashKey, blockKey string) error {
	switch len(blockKey) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("session encryption key must be 16, 24 or 32 bytes, got %d", len(blockKey))
	}
	sm.store.Codecs = securecookie.CodecsFromPairs([]byte(hashKey), []byte(blockKey))
	sm.store.MaxAge(int(sm.maxAge.Seconds()))
	return nil
}

// Store exposes the underlying cookie store (logout copies its options).
func (sm *SessionManager) Store() *sessions.CookieStore {
	return sm.store
}

// Name returns the cookie name.
func (sm *SessionManager) Name() string {
	return sm.name
}

// GetSession returns the raw gorilla session. On a decode error a fresh
// session is returned together with the error.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Lifecycle                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// Establish stores a successful login in the session cookie.
func (sm *SessionManager) Establish(w http.ResponseWriter, r *http.Request, data models.AuthData) error {
	if data.Token == "" {
		return fmt.Errorf("establish session: empty token")
	}
	sess, err := sm.GetSession(r)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			sm.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			sm.log.Error("session store error during login, using fresh session", zap.Error(err))
		}
	}

	userJSON, err := json.Marshal(data.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}

	var expiresAt int64
	if data.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(data.ExpiresIn) * time.Second).Unix()
	} else if exp, ok := TokenExpiry(data.Token); ok {
		expiresAt = exp.Unix()
	}

	sess.Values[tokenKey] = data.Token
	sess.Values[userKey] = string(userJSON)
	sess.Values[expiresAtKey] = expiresAt

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes both session keys by expiring the cookie.
func (sm *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Warn("session decode failed during clear", zap.Error(err))
	}
	delete(sess.Values, tokenKey)
	delete(sess.Values, userKey)
	delete(sess.Values, expiresAtKey)

	opts := sm.store.Options
	if opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1

	return sess.Save(r, w)
}

// ForceLogin tears the session down and sends the browser to /login.
// It is the response to any 401 from the API, whichever endpoint produced it.
func (sm *SessionManager) ForceLogin(w http.ResponseWriter, r *http.Request) {
	if err := sm.Clear(w, r); err != nil {
		sm.log.Error("force login: clear session", zap.Error(err))
	}

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// IsAuthenticated is a pure presence check on the stored token.
// It does not look at expiry and does not ask the API.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	sess, err := sm.GetSession(r)
	if err != nil {
		return false
	}
	tok, _ := sess.Values[tokenKey].(string)
	return tok != ""
}

/*─────────────────────────────────────────────────────────────────────────────*
| Current-session helpers                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const currentSessionKey ctxKey = "currentSession"

// CurrentSession returns the session loaded by LoadSession.
func CurrentSession(r *http.Request) (*models.Session, bool) {
	s, ok := r.Context().Value(currentSessionKey).(*models.Session)
	return s, ok && s != nil
}

// WithTestSession injects a session into the request context.
// Intended for handler tests.
func WithTestSession(r *http.Request, s *models.Session) *http.Request {
	return withSession(r, s)
}

// LoadSession injects the session into context if a token is stored.
func (sm *SessionManager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sm.GetSession(r)
		if s := decodeSession(sess, sm.log); s != nil {
			r = withSession(r, s)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a session in context (set by LoadSession).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentSession(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		ret := url.QueryEscape(currentURI(r))

		if r.Header.Get("HX-Request") == "true" {
			w.Header().Set("HX-Redirect", "/login?return="+ret)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if wantsHTML(r) {
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// helpers

func decodeSession(sess *sessions.Session, log *zap.Logger) *models.Session {
	if sess == nil {
		return nil
	}
	tok, _ := sess.Values[tokenKey].(string)
	if tok == "" {
		return nil
	}
	s := &models.Session{Token: tok}
	if raw, ok := sess.Values[userKey].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &s.User); err != nil {
			log.Warn("cached session user unreadable", zap.Error(err))
		}
	}
	if exp, ok := sess.Values[expiresAtKey].(int64); ok && exp > 0 {
		s.ExpiresAt = time.Unix(exp, 0)
	}
	return s
}

func withSession(r *http.Request, s *models.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentSessionKey, s))
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
