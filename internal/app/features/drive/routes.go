// internal/app/features/drive/routes.go
package drive

import (
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the drive under "/drive". Entry-level checks use the
// permission lists of each entry; creating entries is limited to staff and
// admins.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/{id}/download", h.ServeDownload)
	r.Post("/{id}/star", h.HandleToggleStar)
	r.Post("/{id}/share", h.HandleToggleShare)
	r.Patch("/{id}", h.HandleRename)
	r.Delete("/{id}", h.HandleDelete)

	r.Group(func(sr chi.Router) {
		sr.Use(sm.RequireRole("admin", "staff"))
		sr.Post("/folders", h.HandleCreateFolder)
		sr.Post("/files", h.HandleAddFile)
	})
	return r
}
