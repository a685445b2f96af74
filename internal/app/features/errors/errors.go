// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
)

// Handler serves the fallback error endpoints that middleware redirects
// browsers to. It needs no dependencies.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden handles GET /forbidden.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	_, name, _, signedIn := authz.UserCtx(r)
	msg := "You don't have permission to view this page."
	if signedIn && name != "" {
		msg = "Sorry " + name + ", you don't have permission to view this page."
	}
	RenderForbidden(w, r, msg)
}

// Unauthorized handles GET /unauthorized.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	RenderUnauthorized(w, r)
}

// NotFound is installed as the router's NotFound handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r, "Not found.")
}

// MethodNotAllowed is installed as the router's MethodNotAllowed handler.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusMethodNotAllowed, "Method not allowed.")
}
