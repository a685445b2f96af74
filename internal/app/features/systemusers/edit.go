package systemusers

import (
	"context"
	"net/http"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	userstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/users"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/inputval"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/jsonutil"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /users/{id}                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleEdit rewrites the editable fields of an account. An empty password
// keeps the current one.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var in userInput
	if err := jsonutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode user body failed", err, "Invalid request body.")
		return
	}
	in.trim()
	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.RenderValidation(w, r, res.First(), res.Errors)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Admins cannot demote themselves.
	if id == actorID && in.Role != models.RoleAdmin {
		uierrors.RenderForbidden(w, r, "You cannot remove your own admin role.")
		return
	}

	err := h.Users.Update(ctx, id, userstore.Update{
		FullName:       in.FullName,
		Username:       in.Username,
		Role:           in.Role,
		Position:       in.Position,
		JerseyNumber:   in.JerseyNumber,
		ProfilePhoto:   in.ProfilePhoto,
		DriveFolderURL: in.DriveFolderURL,
		GoogleEmail:    in.googleEmail(),
		Password:       in.Password,
	})
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, r, "User not found.")
		return
	}
	if h.storeError(w, r, "update user", err) {
		return
	}

	fields := "profile"
	if in.Password != "" {
		fields = "profile,password"
	}
	h.AuditLog.UserUpdated(ctx, r, actorID, id, fields)

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error reloading user", err, "A database error occurred.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, toRow(*u))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /users/{id}/status                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var in statusInput
	if err := jsonutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode status body failed", err, "Invalid request body.")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.RenderValidation(w, r, res.First(), res.Errors)
		return
	}
	if id == actorID && in.Status != models.StatusActive {
		uierrors.RenderForbidden(w, r, "You cannot deactivate your own account.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Users.SetStatus(ctx, id, in.Status)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, r, "User not found.")
		return
	}
	if h.storeError(w, r, "set user status", err) {
		return
	}

	h.AuditLog.UserStatusChanged(ctx, r, actorID, id, in.Status)
	uierrors.WriteJSON(w, http.StatusOK, map[string]string{"id": id.Hex(), "status": in.Status})
}
