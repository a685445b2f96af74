// internal/app/features/login/routes.go
package login

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)

	limit := h.AttemptsPerMinute
	if limit <= 0 {
		limit = DefaultAttemptsPerMinute
	}
	r.With(httprate.Limit(limit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))).
		Post("/", h.HandleLoginPost)
	return r
}
