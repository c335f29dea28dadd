package logout_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/attendhub/internal/app/features/logout"
	"github.com/dalemusser/attendhub/internal/testutil"
	"go.uber.org/zap"
)

func TestServeLogout_RedirectsToLogin(t *testing.T) {
	h := logout.NewHandler(testutil.NewSessionManager(t), zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeLogout(rec, testutil.NewAuthenticatedRequest("POST", "/logout"))

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location: got %q, want %q", loc, "/login")
	}
}

func TestServeLogout_ExpiresCookie(t *testing.T) {
	h := logout.NewHandler(testutil.NewSessionManager(t), zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeLogout(rec, httptest.NewRequest("GET", "/logout", nil))

	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "test-session=") || !strings.Contains(cookie, "Max-Age=0") {
		t.Errorf("expected expired session cookie, got %q", cookie)
	}
}

func TestServeLogout_HTMX(t *testing.T) {
	h := logout.NewHandler(testutil.NewSessionManager(t), zap.NewNop())

	req := httptest.NewRequest("POST", "/logout", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeLogout(rec, req)

	if rec.Header().Get("HX-Redirect") != "/login" {
		t.Errorf("HX-Redirect: got %q", rec.Header().Get("HX-Redirect"))
	}
}
