// internal/app/features/errors/render.go
package errors

import (
	"encoding/json"
	"net/http"
)

// Body is the JSON shape of every error response.
type Body struct {
	Error   string `json:"error"`
	Status  int    `json:"status"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func render(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Body{Error: msg, Status: status})
}

// RenderBadRequest writes a 400 with msg.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render(w, http.StatusBadRequest, msg)
}

// RenderValidation writes a 422 carrying per-field details.
func RenderValidation(w http.ResponseWriter, r *http.Request, msg string, details any) {
	WriteJSON(w, http.StatusUnprocessableEntity, Body{Error: msg, Status: http.StatusUnprocessableEntity, Details: details})
}

// RenderUnauthorized writes a 401.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusUnauthorized, "Please sign in to continue.")
}

// RenderForbidden writes a 403 with msg.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = "You don't have access to this resource."
	}
	render(w, http.StatusForbidden, msg)
}

// RenderNotFound writes a 404 with msg.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg string) {
	render(w, http.StatusNotFound, msg)
}

// RenderConflict writes a 409 with msg.
func RenderConflict(w http.ResponseWriter, r *http.Request, msg string) {
	render(w, http.StatusConflict, msg)
}

// RenderServerError writes a 500 with msg.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg string) {
	render(w, http.StatusInternalServerError, msg)
}
