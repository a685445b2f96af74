package systemusers

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	userstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/users"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/inputval"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/jsonutil"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /users                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

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
	if in.Password == "" {
		uierrors.RenderValidation(w, r, "Password is required.", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		FullName:       in.FullName,
		Username:       in.Username,
		Role:           in.Role,
		Position:       in.Position,
		JerseyNumber:   in.JerseyNumber,
		ProfilePhoto:   in.ProfilePhoto,
		DriveFolderURL: in.DriveFolderURL,
		GoogleEmail:    in.googleEmail(),
	}, in.Password)
	if h.storeError(w, r, "create user", err) {
		return
	}

	h.AuditLog.UserCreated(ctx, r, actorID, u.ID, u.Role)
	h.Log.Info("user created", zap.String("user_id", u.ID.Hex()), zap.String("role", u.Role))
	uierrors.WriteJSON(w, http.StatusCreated, toRow(u))
}

// storeError maps user store errors to responses. It reports whether err
// was handled.
func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, userstore.ErrDuplicateUsername), errors.Is(err, userstore.ErrDuplicateGoogleEmail):
		uierrors.RenderConflict(w, r, err.Error())
	case userstore.IsValidation(err):
		uierrors.RenderValidation(w, r, err.Error(), nil)
	default:
		h.ErrLog.LogServerError(w, r, "database error: "+op, err, "A database error occurred.")
	}
	return true
}
