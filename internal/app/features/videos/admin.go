package videos

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/audit"
	videostore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/videos"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/htmlsanitize"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/inputval"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/jsonutil"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleCreate handles POST /videos (staff and admin).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, name, actorID, _ := authz.UserCtx(r)

	var in videoInput
	if err := jsonutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode video body failed", err, "Invalid request body.")
		return
	}
	in.trim()
	if res := inputval.Validate(in); res.HasErrors() {
		uierrors.RenderValidation(w, r, res.First(), res.Errors)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	v, err := h.Videos.Create(ctx, models.Video{
		Title:           in.Title,
		Description:     htmlsanitize.Sanitize(in.Description),
		EmbedURL:        in.EmbedURL,
		ThumbnailURL:    in.ThumbnailURL,
		Duration:        in.Duration,
		UploadDate:      in.UploadDate,
		Month:           in.Month,
		Privacy:         in.Privacy,
		DownloadEnabled: in.DownloadEnabled,
		Owner:           name,
		AssignedTo:      in.AssignedTo,
		Tags:            in.Tags,
		Quality:         in.Quality,
		Size:            in.Size,
		CreatedByID:     &actorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, videostore.ErrBadTitle), errors.Is(err, videostore.ErrBadEmbedURL),
			errors.Is(err, videostore.ErrBadDate), errors.Is(err, videostore.ErrBadPrivacy),
			errors.Is(err, videostore.ErrBadMonth):
			uierrors.RenderValidation(w, r, err.Error(), nil)
		default:
			h.ErrLog.LogServerError(w, r, "database error creating video", err, "A database error occurred.")
		}
		return
	}

	h.AuditLog.ContentEvent(ctx, r, audit.EventVideoCreated, actorID, v.ID.Hex(), v.Title)
	h.Log.Info("video created", zap.String("video_id", v.ID.Hex()), zap.String("month", v.Month))
	uierrors.WriteJSON(w, http.StatusCreated, v)
}

// HandleDelete handles DELETE /videos/{id} (admin).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, _ := authz.UserCtx(r)
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Invalid video id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Videos.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			uierrors.RenderNotFound(w, r, "Video not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "database error deleting video", err, "A database error occurred.")
		return
	}

	h.AuditLog.ContentEvent(ctx, r, audit.EventVideoDeleted, actorID, id.Hex(), "")
	w.WriteHeader(http.StatusNoContent)
}
