// internal/app/features/content/routes.go
package content

import (
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the content library under "/content".
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)
	r.Get("/{id}/download", h.ServeDownload)

	r.Group(func(ar chi.Router) {
		ar.Use(sm.RequireRole("admin"))
		ar.Post("/", h.HandleCreate)
		ar.Put("/{id}", h.HandleEdit)
		ar.Delete("/{id}", h.HandleDelete)
	})
	return r
}
