package content

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/audit"
	contentstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/content"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/catalog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/inputval"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/jsonutil"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /content                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleCreate adds an item. A JSON body links external content; a
// multipart body may carry the file itself in the "file" field.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	in, file, header, ok := h.readInput(w, r, true)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}
	if file == nil && in.URL == "" {
		uierrors.RenderValidation(w, r, "Either a URL or a file is required.", nil)
		return
	}

	item := in.item()
	creator := actorID.Hex()
	item.CreatedBy = &creator

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Upload())
	defer cancel()

	if file != nil {
		info, err := h.Storage.Put(ctx, "content", header.Filename, file)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "store uploaded file", err, "Failed to upload file. Please try again.")
			return
		}
		item.FilePath = info.Key
		item.FileName = header.Filename
		item.FileSize = info.Size
		item.ContentType = header.Header.Get("Content-Type")
		if item.ContentType == "" {
			item.ContentType = "application/octet-stream"
		}
		if item.Size == "" {
			item.Size = humanSize(info.Size)
		}
	}

	created, err := h.Content.Create(ctx, item)
	if err != nil {
		if item.FilePath != "" {
			if derr := h.Storage.Delete(item.FilePath); derr != nil {
				h.Log.Warn("remove orphaned upload", zap.Error(derr), zap.String("key", item.FilePath))
			}
		}
		h.storeError(w, r, "create content", err)
		return
	}

	h.AuditLog.ContentEvent(ctx, r, audit.EventContentCreated, actorID, created.ID, created.Title)
	h.Log.Info("content created", zap.String("content_id", created.ID), zap.Bool("upload", created.HasFile()))
	uierrors.WriteJSON(w, http.StatusCreated, catalog.Decorate(authz.Principal(r), created))
}

/*─────────────────────────────────────────────────────────────────────────────*
| PUT /content/{id}                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleEdit rewrites the descriptive and access fields. The stored file,
// if any, is kept.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)
	id := chi.URLParam(r, "id")

	in, file, _, ok := h.readInput(w, r, false)
	if !ok {
		return
	}
	if file != nil {
		file.Close()
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Content.Update(ctx, id, in.item())
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, r, "Content not found.")
		return
	}
	if err != nil {
		h.storeError(w, r, "update content", err)
		return
	}

	h.AuditLog.ContentEvent(ctx, r, audit.EventContentUpdated, actorID, updated.ID, updated.Title)
	uierrors.WriteJSON(w, http.StatusOK, catalog.Decorate(authz.Principal(r), *updated))
}

/*─────────────────────────────────────────────────────────────────────────────*
| DELETE /content/{id}                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	c, err := h.Content.Delete(ctx, chi.URLParam(r, "id"))
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, r, "Content not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error deleting content", err, "A database error occurred.")
		return
	}

	if c.HasFile() {
		if err := h.Storage.Delete(c.FilePath); err != nil {
			// The record is gone; a leftover file is only logged.
			h.Log.Warn("delete stored file failed", zap.Error(err), zap.String("key", c.FilePath))
		}
	}

	h.AuditLog.ContentEvent(ctx, r, audit.EventContentDeleted, actorID, c.ID, c.Title)
	w.WriteHeader(http.StatusNoContent)
}

// readInput decodes and validates a create or edit body. The returned file
// is nil unless allowFile is set and a non-empty file was sent; the caller
// closes it.
func (h *Handler) readInput(w http.ResponseWriter, r *http.Request, allowFile bool) (contentInput, multipart.File, *multipart.FileHeader, bool) {
	var in contentInput
	var file multipart.File
	var header *multipart.FileHeader

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data or file too large.")
			return in, nil, nil, false
		}
		in = contentInput{
			Title:           r.FormValue("title"),
			Type:            r.FormValue("type"),
			Date:            r.FormValue("date"),
			URL:             r.FormValue("url"),
			IsExternal:      formBool(r.FormValue("is_external")),
			Size:            r.FormValue("size"),
			Description:     r.FormValue("description"),
			MatchNumber:     r.FormValue("match_number"),
			Category:        r.FormValue("category"),
			PlayerName:      r.FormValue("player_name"),
			Thumbnail:       r.FormValue("thumbnail"),
			AssignedTo:      r.FormValue("assigned_to"),
			IsPrivate:       formBool(r.FormValue("is_private")),
			AuthorizedUsers: r.FormValue("authorized_users"),
		}
		if allowFile {
			f, fh, err := r.FormFile("file")
			if err == nil && fh != nil && fh.Size > 0 {
				file, header = f, fh
			} else if f != nil {
				f.Close()
			}
		}
	} else if err := jsonutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode content body failed", err, "Invalid request body.")
		return in, nil, nil, false
	}

	in.trim()
	if res := inputval.Validate(in); res.HasErrors() {
		if file != nil {
			file.Close()
		}
		uierrors.RenderValidation(w, r, res.First(), res.Errors)
		return in, nil, nil, false
	}
	if !in.IsPrivate && in.AssignedTo == "" {
		if file != nil {
			file.Close()
		}
		uierrors.RenderValidation(w, r, "Assigned to is required unless the content is private.", nil)
		return in, nil, nil, false
	}
	return in, file, header, true
}

func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if contentstore.IsValidation(err) {
		uierrors.RenderValidation(w, r, err.Error(), nil)
		return
	}
	h.ErrLog.LogServerError(w, r, "database error: "+op, err, "A database error occurred.")
}

func formBool(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b || s == "on"
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(n)/float64(div), 'f', 1, 64) + " " + string("KMGT"[exp]) + "B"
}
