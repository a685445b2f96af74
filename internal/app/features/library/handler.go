// internal/app/features/library/handler.go
package library

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/contentpolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/queries/librarycontent"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/catalog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the unified library: uploads, drive files, and videos
// merged into one list of content items.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	// SeasonStartYear is the default season for the calendar. Zero means the
	// season containing today.
	SeasonStartYear int

	now func() time.Time
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, seasonStartYear int, logger *zap.Logger) *Handler {
	return &Handler{
		DB:              db,
		Log:             logger,
		ErrLog:          errLog,
		SeasonStartYear: seasonStartYear,
		now:             time.Now,
	}
}

type listResponse struct {
	Items []catalog.Row `json:"items"`
	Total int           `json:"total"`
}

type calendarResponse struct {
	Season string              `json:"season"`
	Months []catalog.RowBucket `json:"months"`
}

type mineResponse struct {
	Team     []catalog.Row `json:"team"`
	Personal []catalog.Row `json:"personal"`
	Private  []catalog.Row `json:"private"`
}

// visible loads the merged library and keeps what the caller may view.
func (h *Handler) visible(w http.ResponseWriter, r *http.Request) (*contentpolicy.Principal, []models.ContentItem, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := librarycontent.Items(ctx, h.DB)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading library", err, "A database error occurred.")
		return nil, nil, false
	}
	p := authz.Principal(r)
	return p, contentpolicy.FilterContentByAccess(p, items), true
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /library?search=&type=&sort=                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	p, items, ok := h.visible(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	out := catalog.Apply(items, catalog.Query{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		Sort:   q.Get("sort"),
	})
	uierrors.WriteJSON(w, http.StatusOK, listResponse{Items: catalog.DecorateAll(p, out), Total: len(out)})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /library/calendar?season=2025                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeCalendar buckets the visible library into the twelve months of a
// season, July through June.
func (h *Handler) ServeCalendar(w http.ResponseWriter, r *http.Request) {
	start := h.SeasonStartYear
	if start == 0 {
		start = catalog.SeasonStartYear(h.now())
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("season")); raw != "" {
		// Accept both "2025" and "2025-2026".
		first, _, _ := strings.Cut(raw, "-")
		y, err := strconv.Atoi(first)
		if err != nil || y < 1900 || y > 2999 {
			uierrors.RenderBadRequest(w, r, "Season must be a year such as 2025.")
			return
		}
		start = y
	}

	p, items, ok := h.visible(w, r)
	if !ok {
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, calendarResponse{
		Season: catalog.SeasonLabel(start),
		Months: catalog.DecorateCalendar(p, catalog.Calendar(items, start)),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /library/mine                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeMine splits the caller's visible library into team, personal, and
// private panels.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	p, items, ok := h.visible(w, r)
	if !ok {
		return
	}
	view := catalog.SplitForPlayer(p, items)
	uierrors.WriteJSON(w, http.StatusOK, mineResponse{
		Team:     catalog.DecorateAll(p, view.Team),
		Personal: catalog.DecorateAll(p, view.Personal),
		Private:  catalog.DecorateAll(p, view.Private),
	})
}
