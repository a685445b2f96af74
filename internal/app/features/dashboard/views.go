package dashboard

import (
	"context"
	"net/http"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/contentpolicy"
	contentstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/content"
	drivefilestore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/drivefiles"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/queries/librarycontent"
	userstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/users"
	videostore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/videos"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/catalog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
)

type adminData struct {
	Role           string           `json:"role"`
	UsersByRole    map[string]int64 `json:"users_by_role"`
	TotalUsers     int64            `json:"total_users"`
	ContentTotal   int64            `json:"content_total"`
	PrivateContent int64            `json:"private_content"`
	VideoContent   int64            `json:"video_content"`
	DriveFiles     int64            `json:"drive_files"`
	Videos         int64            `json:"videos"`
}

type staffData struct {
	Role           string `json:"role"`
	Players        int64  `json:"players"`
	VisibleContent int    `json:"visible_content"`
}

type playerData struct {
	Role           string `json:"role"`
	VisibleContent int    `json:"visible_content"`
	TeamContent    int    `json:"team_content"`
	Personal       int    `json:"personal_content"`
	Private        int    `json:"private_content"`
}

// ServeAdmin reports club-wide totals.
func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	byRole, err := userstore.New(h.DB).CountByRole(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard: count users", err, "A database error occurred.")
		return
	}
	counts, err := contentstore.New(h.DB).Count(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard: count content", err, "A database error occurred.")
		return
	}
	driveFiles, err := drivefilestore.New(h.DB).CountFiles(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard: count drive files", err, "A database error occurred.")
		return
	}
	videos, err := videostore.New(h.DB).Count(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard: count videos", err, "A database error occurred.")
		return
	}

	var total int64
	for _, n := range byRole {
		total += n
	}
	uierrors.WriteJSON(w, http.StatusOK, adminData{
		Role:           models.RoleAdmin,
		UsersByRole:    byRole,
		TotalUsers:     total,
		ContentTotal:   counts.Total,
		PrivateContent: counts.Private,
		VideoContent:   counts.Videos,
		DriveFiles:     driveFiles,
		Videos:         videos,
	})
}

// ServeStaff reports the roster size and the library size.
func (h *Handler) ServeStaff(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	byRole, err := userstore.New(h.DB).CountByRole(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard: count users", err, "A database error occurred.")
		return
	}
	items, err := librarycontent.Items(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard: load library", err, "A database error occurred.")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, staffData{
		Role:           models.RoleStaff,
		Players:        byRole[models.RolePlayer],
		VisibleContent: len(contentpolicy.FilterContentByAccess(authz.Principal(r), items)),
	})
}

// ServePlayer reports what the player can see, split by panel.
func (h *Handler) ServePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := librarycontent.Items(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard: load library", err, "A database error occurred.")
		return
	}

	view := catalog.SplitForPlayer(authz.Principal(r), items)
	uierrors.WriteJSON(w, http.StatusOK, playerData{
		Role:           models.RolePlayer,
		VisibleContent: len(view.Team) + len(view.Personal) + len(view.Private),
		TeamContent:    len(view.Team),
		Personal:       len(view.Personal),
		Private:        len(view.Private),
	})
}
