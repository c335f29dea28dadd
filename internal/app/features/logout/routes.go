// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

// Routes does not require a session: signing out twice is harmless.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogout)
	r.Post("/", h.ServeLogout)
	return r
}
