package systemusers

import (
	"context"
	"net/http"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /users/{id}. Admins cannot delete themselves.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if id == actorID {
		uierrors.RenderForbidden(w, r, "You cannot delete your own account.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error deleting user", err, "A database error occurred.")
		return
	}
	if n == 0 {
		uierrors.RenderNotFound(w, r, "User not found.")
		return
	}

	h.AuditLog.UserDeleted(ctx, r, actorID, id)
	h.Log.Info("user deleted", zap.String("user_id", id.Hex()))
	w.WriteHeader(http.StatusNoContent)
}
