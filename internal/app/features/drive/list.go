package drive

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/drivepolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /drive?parent=<id>&search=<q>                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList returns the visible children of a folder, or of the root when no
// parent is given. Folders come first, then files by name.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	p := authz.Principal(r)
	q := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	resp := listResponse{Breadcrumb: []string{}, Items: []entryRow{}}

	var parentID *primitive.ObjectID
	if raw := strings.TrimSpace(q.Get("parent")); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			uierrors.RenderBadRequest(w, r, "Invalid folder id.")
			return
		}
		folder, err := h.Files.GetByID(ctx, oid)
		if err == mongo.ErrNoDocuments || (err == nil && !folder.IsFolder()) {
			uierrors.RenderNotFound(w, r, "Folder not found.")
			return
		}
		if err != nil {
			h.ErrLog.LogServerError(w, r, "database error loading folder", err, "A database error occurred.")
			return
		}
		if !drivepolicy.CanView(p, *folder) {
			h.ErrLog.LogForbidden(w, r, "drive folder access denied", "You do not have access to this folder.")
			return
		}
		row := toRow(p, *folder)
		resp.Folder = &row
		resp.Breadcrumb = append(append(resp.Breadcrumb, folder.Path...), folder.Name)
		parentID = &oid
	}

	children, err := h.Files.ListChildren(ctx, parentID, q.Get("search"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing drive", err, "A database error occurred.")
		return
	}
	for _, f := range drivepolicy.FilterVisible(p, children) {
		resp.Items = append(resp.Items, toRow(p, f))
	}
	uierrors.WriteJSON(w, http.StatusOK, resp)
}

// loadEntry fetches the entry named in the URL and checks it with allow.
// It writes 400, 404, or 403 itself.
func (h *Handler) loadEntry(w http.ResponseWriter, r *http.Request, allow func(*models.DriveFile) bool, denied string) (*models.DriveFile, bool) {
	oid, ok := parseID(w, r)
	if !ok {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	f, err := h.Files.GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, r, "File not found.")
		return nil, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading drive entry", err, "A database error occurred.")
		return nil, false
	}
	if !allow(f) {
		h.ErrLog.LogForbidden(w, r, "drive entry access denied", denied)
		return nil, false
	}
	return f, true
}
