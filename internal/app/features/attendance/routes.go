// internal/app/features/attendance/routes.go
package attendance

import (
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts attendance routes under the path where the caller mounts it.
// Typically: r.Mount("/attendance", attendance.Routes(handler, sessionMgr))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/export.csv", h.ServeExportCSV)
		pr.Get("/export.xlsx", h.ServeExportXLSX)

		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)

		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
