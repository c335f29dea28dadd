// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	attendancefeature "github.com/dalemusser/attendhub/internal/app/features/attendance"
	dashboardfeature "github.com/dalemusser/attendhub/internal/app/features/dashboard"
	employeesfeature "github.com/dalemusser/attendhub/internal/app/features/employees"
	errorsfeature "github.com/dalemusser/attendhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/attendhub/internal/app/features/health"
	homefeature "github.com/dalemusser/attendhub/internal/app/features/home"
	loginfeature "github.com/dalemusser/attendhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/attendhub/internal/app/features/logout"
	settingsfeature "github.com/dalemusser/attendhub/internal/app/features/settings"
	attendancestore "github.com/dalemusser/attendhub/internal/app/store/attendance"
	employeestore "github.com/dalemusser/attendhub/internal/app/store/employees"
	identitystore "github.com/dalemusser/attendhub/internal/app/store/identity"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/ratelimit"
	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, the API client and the Startup hook
// are ready. AttendHub initializes the template engine, applies the session
// and CSRF middleware, and mounts the feature routers: login, dashboard,
// employees, attendance and settings.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	policy, err := appCfg.policy()
	if err != nil {
		return nil, err
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	if appCfg.SessionEncryptKey != "" {
		if err := sessionMgr.EnableEncryption(appCfg.SessionKey, appCfg.SessionEncryptKey); err != nil {
			logger.Error("session encryption init failed", zap.Error(err))
			return nil, err
		}
	}

	viewdata.Init(viewdata.Site{Name: appCfg.SiteName, FooterHTML: appCfg.FooterHTML}, sessionMgr)

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger, sessionMgr)

	identity := identitystore.New(deps.API)
	employees := employeestore.New(deps.API)
	attendance := attendancestore.New(deps.API)

	r := chi.NewRouter()

	// Health check endpoint for load balancers; outside CSRF and sessions.
	healthHandler := healthfeature.NewHandler(deps.API, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Group(func(app chi.Router) {
		if !secure {
			app.Use(plaintextHTTP)
		}
		app.Use(csrfProtect(appCfg.CSRFKey, secure, logger))

		// Global session middleware: puts the signed-in session into the
		// request context for auth.CurrentSession(r).
		app.Use(sessionMgr.LoadSession)

		homeHandler := homefeature.NewHandler(sessionMgr, logger)
		app.Mount("/", homefeature.Routes(homeHandler))

		// Authentication
		loginHandler := loginfeature.NewHandler(identity, sessionMgr, errLog, logger)
		loginHandler.Limiter = ratelimit.NewLoginLimiter()
		app.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
		app.Mount("/logout", logoutfeature.Routes(logoutHandler))

		// Error pages
		errorsHandler := errorsfeature.NewHandler()
		app.Get("/forbidden", errorsHandler.Forbidden)
		app.Get("/unauthorized", errorsHandler.Unauthorized)

		dashboardHandler := dashboardfeature.NewHandler(employees, attendance, policy, appCfg.RecentActivityLimit, errLog, logger)
		app.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

		employeesHandler := employeesfeature.NewHandler(employees, sessionMgr, errLog, logger)
		app.Mount("/employees", employeesfeature.Routes(employeesHandler, sessionMgr))

		attendanceHandler := attendancefeature.NewHandler(attendance, employees, policy.Location, sessionMgr, errLog, logger)
		app.Mount("/attendance", attendancefeature.Routes(attendanceHandler, sessionMgr))

		settingsHandler := settingsfeature.NewHandler(attendance, identity, appCfg.MapsURL, policy.Location, sessionMgr, errLog, logger)
		app.Mount("/settings", settingsfeature.Routes(settingsHandler, sessionMgr))
	})

	logger.Info("routes mounted",
		zap.String("timezone", policy.Location.String()),
		zap.String("work_start", policy.WorkStart.String()))
	return r, nil
}

// csrfProtect guards every form POST. A rejected token renders the
// forbidden page rather than gorilla's plain-text 403.
func csrfProtect(key string, secure bool, logger *zap.Logger) func(http.Handler) http.Handler {
	return csrf.Protect([]byte(key)[:csrfKeyLen],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("csrf check failed",
				zap.String("path", r.URL.Path),
				zap.Error(csrf.FailureReason(r)))
			errorsfeature.RenderForbidden(w, r, "Your form has expired. Please go back, reload the page and try again.", "/")
		})),
	)
}

// plaintextHTTP marks requests as plain HTTP so gorilla/csrf skips its
// HTTPS-only referer check during local development.
func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
