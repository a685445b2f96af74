// internal/app/features/videos/routes.go
package videos

import (
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the video catalog under "/videos".
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)
	r.Post("/{id}/views", h.HandleRecordView)
	r.Get("/{id}/download", h.ServeDownload)

	r.With(sm.RequireRole("admin", "staff")).Post("/", h.HandleCreate)
	r.With(sm.RequireRole("admin")).Delete("/{id}", h.HandleDelete)
	return r
}
