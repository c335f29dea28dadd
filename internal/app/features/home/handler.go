package home

import (
	"net/http"

	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler sends the root path to the right entry page.
type Handler struct {
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{SessionMgr: sessionMgr, Log: logger}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – entry redirect                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot redirects to /dashboard with a stored token, else to /login.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	if h.SessionMgr.IsAuthenticated(r) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
