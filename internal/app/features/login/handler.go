// internal/app/features/login/handler.go
package login

import (
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	identitystore "github.com/dalemusser/attendhub/internal/app/store/identity"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/ratelimit"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// Handler serves the sign-in page and exchanges credentials with the API.
type Handler struct {
	Identity   *identitystore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger

	// Limiter throttles attempts; nil disables throttling.
	Limiter *ratelimit.LoginLimiter
}

func NewHandler(identity *identitystore.Store, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Identity:   identity,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error      string
	EmployeeID string // what the user typed, redisplayed after a failure
	ReturnURL  string
}

const loginFailed = "Login failed"

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := urlutil.SafeReturn(query.Get(r, "return"), "", "")
	if h.SessionMgr.IsAuthenticated(r) {
		http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/dashboard"), http.StatusSeeOther)
		return
	}
	h.renderForm(w, r, http.StatusOK, loginFormData{ReturnURL: ret})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	form := loginFormData{
		EmployeeID: strings.TrimSpace(r.PostFormValue("employeeId")),
		ReturnURL:  urlutil.SafeReturn(strings.TrimSpace(r.PostFormValue("return")), "", ""),
	}
	password := r.PostFormValue("password")

	if form.EmployeeID == "" || password == "" {
		form.Error = "Employee ID and password are required"
		h.renderForm(w, r, http.StatusBadRequest, form)
		return
	}

	if h.Limiter != nil {
		if ok, msg := h.Limiter.Check(r, form.EmployeeID); !ok {
			h.Log.Warn("login throttled",
				zap.String("employee_id", form.EmployeeID),
				zap.String("ip", ratelimit.ClientIP(r)))
			form.Error = msg
			h.renderForm(w, r, http.StatusTooManyRequests, form)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	data, err := h.Identity.Login(ctx, form.EmployeeID, password)
	if err != nil {
		h.Log.Info("login rejected", zap.String("employee_id", form.EmployeeID), zap.Error(err))
		form.Error = uierrors.UserMessage(err, loginFailed)
		h.renderForm(w, r, http.StatusUnauthorized, form)
		return
	}

	if err := h.SessionMgr.Establish(w, r, data); err != nil {
		h.ErrLog.LogServerError(w, r, "establish session failed", err, "Could not start your session.", "/login")
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetAccount(form.EmployeeID)
	}
	h.Log.Info("admin signed in", zap.String("employee_id", data.User.EmployeeID))
	http.Redirect(w, r, urlutil.SafeReturn(form.ReturnURL, "", "/dashboard"), http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, data loginFormData) {
	data.BaseVM = viewdata.NewBaseVM(w, r, "Sign in", "/")
	w.WriteHeader(status)
	templates.Render(w, r, "login_form", data)
}
