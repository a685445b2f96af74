package videos

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/contentpolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/catalog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// canSee reports whether p may watch v. Staff and admins see every video;
// anyone else needs "all", their role, or their id in the assignment list.
func canSee(p *contentpolicy.Principal, v models.Video) bool {
	if p == nil {
		return false
	}
	switch p.Role {
	case models.RoleAdmin, models.RoleStaff:
		return true
	}
	for _, a := range v.AssignedTo {
		if a == models.AssignAll || a == p.Role || (p.ID != "" && a == p.ID) {
			return true
		}
	}
	return false
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /videos?month=<key>                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList returns the visible videos of one month, or of every month when
// no month is given.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	p := authz.Principal(r)
	month := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("month")))
	if month != "" {
		if _, _, ok := catalog.ParseMonthKey(month); !ok {
			uierrors.RenderBadRequest(w, r, "Month must look like october-2025.")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		all []models.Video
		err error
	)
	if month == "" {
		all, err = h.Videos.List(ctx)
	} else {
		all, err = h.Videos.ListByMonth(ctx, month)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing videos", err, "A database error occurred.")
		return
	}

	visible := make([]models.Video, 0, len(all))
	for _, v := range all {
		if canSee(p, v) {
			visible = append(visible, v)
		}
	}
	uierrors.WriteJSON(w, http.StatusOK, listResponse{
		Month:  month,
		Label:  monthLabel(month),
		Videos: visible,
		Total:  len(visible),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /videos/{id}                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	v, ok := h.loadVisible(w, r)
	if !ok {
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, v)
}

// HandleRecordView handles POST /videos/{id}/views.
func (h *Handler) HandleRecordView(w http.ResponseWriter, r *http.Request) {
	v, ok := h.loadVisible(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	views, err := h.Videos.RecordView(ctx, v.ID)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, r, "Video not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error recording view", err, "A database error occurred.")
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"id": v.ID.Hex(), "views": views})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /videos/{id}/download                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeDownload redirects to the hosting platform's download page when the
// video allows it.
func (h *Handler) ServeDownload(w http.ResponseWriter, r *http.Request) {
	v, ok := h.loadVisible(w, r)
	if !ok {
		return
	}
	if !v.DownloadEnabled {
		uierrors.RenderNotFound(w, r, "Download is not available for this video.")
		return
	}
	http.Redirect(w, r, strings.TrimRight(v.EmbedURL, "/")+"/download", http.StatusFound)
}

func (h *Handler) loadVisible(w http.ResponseWriter, r *http.Request) (*models.Video, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderBadRequest(w, r, "Invalid video id.")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	v, err := h.Videos.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, r, "Video not found.")
		return nil, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading video", err, "A database error occurred.")
		return nil, false
	}
	if !canSee(authz.Principal(r), *v) {
		h.ErrLog.LogForbidden(w, r, "video access denied", "You do not have access to this video.")
		return nil, false
	}
	return v, true
}
