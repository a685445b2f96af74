// internal/app/features/systemusers/routes.go
package systemusers

import (
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the account routes under the path where this router is
// mounted (typically "/users" from bootstrap).
//
// Example mount from bootstrap:
//
//	h := systemusers.NewHandler(db, errLog, audit, logger)
//	r.Mount("/users", systemusers.Routes(h, sessionMgr))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// Staff read the player roster; admins see every account.
		pr.With(sm.RequireRole("admin", "staff")).Get("/", h.ServeList)

		pr.Group(func(ar chi.Router) {
			ar.Use(sm.RequireRole("admin"))
			ar.Post("/", h.HandleCreate)
			ar.Get("/{id}", h.ServeView)
			ar.Put("/{id}", h.HandleEdit)
			ar.Post("/{id}/status", h.HandleStatus)
			ar.Delete("/{id}", h.HandleDelete)
		})
	})

	return r
}
