package systemusers

import (
	"context"
	"net/http"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	userstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/users"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/normalize"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeList handles GET /users.
//
// Query parameters: search (name, username, or role), role, status.
// Staff always get the player roster whatever role they ask for.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := userstore.ListFilter{
		Role:   normalize.QueryParam(q.Get("role")),
		Status: normalize.QueryParam(q.Get("status")),
		Search: q.Get("search"),
	}
	if !authz.IsAdmin(r) {
		f.Role = models.RolePlayer
		f.Status = models.StatusActive
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx, f)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing users", err, "A database error occurred.")
		return
	}

	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, toRow(u))
	}
	uierrors.WriteJSON(w, http.StatusOK, listResponse{Users: rows, Total: len(rows)})
}

// ServeView handles GET /users/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, r, "User not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading user", err, "A database error occurred.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, toRow(*u))
}

func parseID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Invalid user id.")
		return primitive.NilObjectID, false
	}
	return id, true
}
