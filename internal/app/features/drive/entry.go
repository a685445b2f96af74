package drive

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/drivepolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/audit"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/catalog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/inputval"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/jsonutil"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) canEdit(r *http.Request) func(*models.DriveFile) bool {
	p := authz.Principal(r)
	return func(f *models.DriveFile) bool { return drivepolicy.CanEdit(p, *f) }
}

func (h *Handler) canView(r *http.Request) func(*models.DriveFile) bool {
	p := authz.Principal(r)
	return func(f *models.DriveFile) bool { return drivepolicy.CanView(p, *f) }
}

// PATCH /drive/{id}
func (h *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	f, ok := h.loadEntry(w, r, h.canEdit(r), "You cannot edit this file.")
	if !ok {
		return
	}

	var in renameInput
	if err := jsonutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode rename body failed", err, "Invalid request body.")
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.RenderValidation(w, r, res.First(), res.Errors)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Files.Rename(ctx, f.ID, in.Name); h.storeError(w, r, "rename drive entry", err) {
		return
	}
	_, _, actorID, _ := authz.UserCtx(r)
	h.AuditLog.ContentEvent(ctx, r, audit.EventDriveUpdated, actorID, f.ID.Hex(), in.Name)

	f.Name = in.Name
	uierrors.WriteJSON(w, http.StatusOK, toRow(authz.Principal(r), *f))
}

// POST /drive/{id}/star. Starring is open to anyone who can see the entry.
func (h *Handler) HandleToggleStar(w http.ResponseWriter, r *http.Request) {
	f, ok := h.loadEntry(w, r, h.canView(r), "You do not have access to this file.")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	starred, err := h.Files.ToggleStar(ctx, f.ID)
	if h.storeError(w, r, "toggle star", err) {
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"id": f.ID.Hex(), "starred": starred})
}

// POST /drive/{id}/share
func (h *Handler) HandleToggleShare(w http.ResponseWriter, r *http.Request) {
	f, ok := h.loadEntry(w, r, h.canEdit(r), "You cannot edit this file.")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	shared, err := h.Files.ToggleShare(ctx, f.ID)
	if h.storeError(w, r, "toggle share", err) {
		return
	}
	_, _, actorID, _ := authz.UserCtx(r)
	h.AuditLog.ContentEvent(ctx, r, audit.EventDriveUpdated, actorID, f.ID.Hex(), f.Name)
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"id": f.ID.Hex(), "shared": shared})
}

// DELETE /drive/{id}. Folders must be empty.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	f, ok := h.loadEntry(w, r, h.canEdit(r), "You cannot delete this file.")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Files.Delete(ctx, f.ID); h.storeError(w, r, "delete drive entry", err) {
		return
	}
	_, _, actorID, _ := authz.UserCtx(r)
	h.AuditLog.ContentEvent(ctx, r, audit.EventDriveDeleted, actorID, f.ID.Hex(), f.Name)
	w.WriteHeader(http.StatusNoContent)
}

// GET /drive/{id}/download redirects to the hosted file.
func (h *Handler) ServeDownload(w http.ResponseWriter, r *http.Request) {
	p := authz.Principal(r)
	f, ok := h.loadEntry(w, r, func(f *models.DriveFile) bool {
		return drivepolicy.CanDownload(p, *f)
	}, "You are not allowed to download this file.")
	if !ok {
		return
	}
	if f.URL == "" {
		uierrors.RenderNotFound(w, r, "This file has no download link.")
		return
	}
	http.Redirect(w, r, catalog.DirectDownloadURL(f.URL), http.StatusFound)
}

func parseID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Invalid file id.")
		return primitive.NilObjectID, false
	}
	return oid, true
}
