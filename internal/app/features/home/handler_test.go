package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/attendhub/internal/app/features/home"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/dalemusser/attendhub/internal/testutil"
	"go.uber.org/zap"
)

func TestServeRoot_Anonymous(t *testing.T) {
	h := home.NewHandler(testutil.NewSessionManager(t), zap.NewNop())
	rec := testutil.NewRecorder()
	h.ServeRoot(rec, httptest.NewRequest("GET", "/", nil))
	rec.AssertRedirect(t, "/login")
}

func TestServeRoot_SignedIn(t *testing.T) {
	sm := testutil.NewSessionManager(t)
	h := home.NewHandler(sm, zap.NewNop())

	login := httptest.NewRecorder()
	if err := sm.Establish(login, httptest.NewRequest("POST", "/login", nil), models.AuthData{Token: "tok"}); err != nil {
		t.Fatalf("Establish: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := testutil.NewRecorder()
	h.ServeRoot(rec, req)
	rec.AssertRedirect(t, "/dashboard")
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d", rec.Code)
	}
}
