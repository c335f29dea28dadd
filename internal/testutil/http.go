package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminSession returns a signed-in administrator session carrying the
// fake API's token.
func AdminSession() *models.Session {
	return &models.Session{
		Token: FakeToken,
		User: models.AuthUser{
			ID:         1,
			EmployeeID: "ADMIN001",
			Name:       "Test Admin",
			Email:      "admin@test.com",
			Role:       string(models.RoleAdmin),
		},
	}
}

// WithSession adds a session to the request context for testing handlers.
// This bypasses the cookie middleware and injects the session directly.
func WithSession(r *http.Request, s *models.Session) *http.Request {
	return auth.WithTestSession(r, s)
}

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewAuthenticatedRequest creates a request carrying AdminSession.
func NewAuthenticatedRequest(method, target string) *http.Request {
	return WithSession(httptest.NewRequest(method, target, nil), AdminSession())
}

// NewFormRequest creates an authenticated urlencoded POST.
func NewFormRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return WithSession(req, AdminSession())
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	if location := r.Header().Get("Location"); location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// Serve runs h, absorbing a panic from rendering without a booted template
// engine. Status and headers written before rendering stay observable.
func Serve(h http.HandlerFunc, w http.ResponseWriter, r *http.Request) {
	defer func() { _ = recover() }()
	h(w, r)
}

// NewSessionManager returns a cookie session manager suitable for tests.
func NewSessionManager(t interface{ Fatalf(string, ...any) }) *auth.SessionManager {
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-32b", "test-session", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}
