// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/attendhub/internal/app/system/apiclient"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// NetworkErrorMessage is shown whenever the API could not be reached.
const NetworkErrorMessage = "Network error occurred"

// ErrorLogger logs handler failures and renders the matching response.
// Every API error goes through it so that a 401 from any endpoint ends
// the session the same way.
type ErrorLogger struct {
	Log      *zap.Logger
	Sessions *auth.SessionManager
}

// NewErrorLogger constructs an ErrorLogger. sm may be nil in tests that do
// not exercise 401 handling; the session is then left alone.
func NewErrorLogger(logger *zap.Logger, sm *auth.SessionManager) *ErrorLogger {
	return &ErrorLogger{Log: logger, Sessions: sm}
}

// UserMessage is the text shown for err: the network message for transport
// failures, the API's own message when it sent one, else fallback.
func UserMessage(err error, fallback string) string {
	if apiclient.IsNetwork(err) {
		return NetworkErrorMessage
	}
	return apiclient.Message(err, fallback)
}

// HandleUnauthorized ends the session and redirects to /login when err is a
// 401. It reports whether it wrote the response.
func (e *ErrorLogger) HandleUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if !apiclient.IsUnauthorized(err) {
		return false
	}
	e.Log.Info("api rejected session; signing out", zap.String("path", r.URL.Path))
	if e.Sessions != nil {
		e.Sessions.ForceLogin(w, r)
		return true
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

// HandleAPIError renders the failure page for an API error, or forces a new
// login for a 401.
func (e *ErrorLogger) HandleAPIError(w http.ResponseWriter, r *http.Request, msg string, err error, fallback, backURL string) {
	if e.HandleUnauthorized(w, r, err) {
		return
	}
	e.Log.Warn(msg, zap.Error(err), zap.String("path", r.URL.Path))
	status := http.StatusBadGateway
	if apiclient.IsNotFound(err) {
		status = http.StatusNotFound
	}
	RenderError(w, r, status, UserMessage(err, fallback), backURL)
}

// LogServerError logs err and renders a 500 page with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	RenderError(w, r, http.StatusInternalServerError, userMsg, backURL)
}

// LogBadRequest logs err and renders a 400 page with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, zap.Error(err), zap.String("path", r.URL.Path))
	RenderError(w, r, http.StatusBadRequest, userMsg, backURL)
}

// HTMXLogServerError is LogServerError for HTMX fragments: plain text body.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	http.Error(w, userMsg, http.StatusInternalServerError)
}
