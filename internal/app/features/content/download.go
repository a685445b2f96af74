package content

import (
	"errors"
	"mime"
	"net/http"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/contentpolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/audit"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/catalog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/filestore"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /content/{id}/download                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeDownload streams an uploaded file, or redirects to the external URL.
// Google Drive sharing links are rewritten to their direct download form.
func (h *Handler) ServeDownload(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadVisible(w, r)
	if !ok {
		return
	}
	p := authz.Principal(r)
	if !contentpolicy.CanUserDownload(p, *c) {
		h.ErrLog.LogForbidden(w, r, "content download denied", "You are not allowed to download this content.")
		return
	}

	_, _, actorID, _ := authz.UserCtx(r)
	h.AuditLog.ContentEvent(r.Context(), r, audit.EventContentDownloaded, actorID, c.ID, c.Title)

	if !c.HasFile() {
		if c.URL == "" {
			uierrors.RenderNotFound(w, r, "This content has nothing to download.")
			return
		}
		http.Redirect(w, r, catalog.DirectDownloadURL(c.URL), http.StatusFound)
		return
	}

	f, err := h.Storage.Open(c.FilePath)
	if errors.Is(err, filestore.ErrNotFound) {
		h.Log.Warn("stored file missing", zap.String("content_id", c.ID), zap.String("key", c.FilePath))
		uierrors.RenderNotFound(w, r, "The file for this content is missing.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "open stored file", err, "Unable to read the file.")
		return
	}
	defer f.Close()

	if c.ContentType != "" {
		w.Header().Set("Content-Type", c.ContentType)
	}
	name := c.FileName
	if name == "" {
		name = filestore.SafeName(c.Title)
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	http.ServeContent(w, r, name, c.CreatedAt, f)
}
