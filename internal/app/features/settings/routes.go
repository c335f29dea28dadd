// internal/app/features/settings/routes.go
package settings

import (
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the settings page and the GPS form handler.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeSettings)
		pr.Post("/gps", h.HandleGPS)
	})
	return r
}
