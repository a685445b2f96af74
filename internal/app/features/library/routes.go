// internal/app/features/library/routes.go
package library

import (
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the library under "/library".
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.ServeList)
	r.Get("/calendar", h.ServeCalendar)
	r.Get("/mine", h.ServeMine)
	return r
}
