package drive

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/drivepolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/audit"
	drivefilestore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/drivefiles"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/htmlsanitize"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/inputval"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/jsonutil"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drive/folders                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreateFolder(w http.ResponseWriter, r *http.Request) {
	_, name, actorID, _ := authz.UserCtx(r)

	var in folderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode folder body failed", err, "Invalid request body.")
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	in.ParentID = strings.TrimSpace(in.ParentID)
	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.RenderValidation(w, r, res.First(), res.Errors)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	parentID, ok := h.checkParent(ctx, w, r, in.ParentID)
	if !ok {
		return
	}
	f, err := h.Files.CreateFolder(ctx, in.Name, parentID, name, &actorID)
	if h.storeError(w, r, "create folder", err) {
		return
	}

	h.AuditLog.ContentEvent(ctx, r, audit.EventDriveCreated, actorID, f.ID.Hex(), f.Name)
	uierrors.WriteJSON(w, http.StatusCreated, toRow(authz.Principal(r), f))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drive/files                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleAddFile records a link to an externally hosted file.
func (h *Handler) HandleAddFile(w http.ResponseWriter, r *http.Request) {
	_, name, actorID, _ := authz.UserCtx(r)

	var in fileInput
	if err := jsonutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode file body failed", err, "Invalid request body.")
		return
	}
	in.trim()
	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.RenderValidation(w, r, res.First(), res.Errors)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	parentID, ok := h.checkParent(ctx, w, r, in.ParentID)
	if !ok {
		return
	}
	f, err := h.Files.AddFile(ctx, models.DriveFile{
		Name:         in.Name,
		Type:         in.Type,
		Size:         in.Size,
		Owner:        name,
		URL:          in.URL,
		ThumbnailURL: in.ThumbnailURL,
		Description:  htmlsanitize.Sanitize(in.Description),
		ParentID:     parentID,
		Permissions:  in.permissions(in.Type),
		CreatedByID:  &actorID,
	})
	if h.storeError(w, r, "add file", err) {
		return
	}

	h.AuditLog.ContentEvent(ctx, r, audit.EventDriveCreated, actorID, f.ID.Hex(), f.Name)
	uierrors.WriteJSON(w, http.StatusCreated, toRow(authz.Principal(r), f))
}

// checkParent resolves the optional parent folder and makes sure the caller
// can see it.
func (h *Handler) checkParent(ctx context.Context, w http.ResponseWriter, r *http.Request, raw string) (*primitive.ObjectID, bool) {
	if raw == "" {
		return nil, true
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Invalid folder id.")
		return nil, false
	}
	parent, err := h.Files.GetByID(ctx, oid)
	if err != nil || !parent.IsFolder() {
		uierrors.RenderValidation(w, r, drivefilestore.ErrParentNotFound.Error(), nil)
		return nil, false
	}
	if !drivepolicy.CanView(authz.Principal(r), *parent) {
		h.ErrLog.LogForbidden(w, r, "drive parent access denied", "You do not have access to this folder.")
		return nil, false
	}
	return &oid, true
}

// storeError maps drive store errors to responses. It reports whether err
// was handled.
func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) bool {
	switch {
	case err == nil:
		return false
	case err == mongo.ErrNoDocuments:
		uierrors.RenderNotFound(w, r, "File not found.")
	case errors.Is(err, drivefilestore.ErrFolderNotEmpty):
		uierrors.RenderConflict(w, r, "Folder is not empty. Delete its contents first.")
	case errors.Is(err, drivefilestore.ErrParentNotFound),
		errors.Is(err, drivefilestore.ErrBadName),
		errors.Is(err, drivefilestore.ErrBadType):
		uierrors.RenderValidation(w, r, err.Error(), nil)
	default:
		h.ErrLog.LogServerError(w, r, "database error: "+op, err, "A database error occurred.")
	}
	return true
}
