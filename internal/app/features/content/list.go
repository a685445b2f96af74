package content

import (
	"context"
	"net/http"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/contentpolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/catalog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /content                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList returns the uploaded items the caller may view.
// Query parameters: search, type (video|document|all), sort (date|match|title).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	p := authz.Principal(r)
	q := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Content.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing content", err, "A database error occurred.")
		return
	}

	visible := contentpolicy.FilterContentByAccess(p, items)
	visible = catalog.Apply(visible, catalog.Query{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		Sort:   q.Get("sort"),
	})

	rows := catalog.DecorateAll(p, visible)
	uierrors.WriteJSON(w, http.StatusOK, listResponse{Items: rows, Total: len(rows)})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /content/{id}                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadVisible(w, r)
	if !ok {
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, catalog.Decorate(authz.Principal(r), *c))
}

// loadVisible fetches the item named in the URL and writes 404 or 403 when
// it is missing or hidden from the caller.
func (h *Handler) loadVisible(w http.ResponseWriter, r *http.Request) (*models.ContentItem, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Content.GetByID(ctx, chi.URLParam(r, "id"))
	if err == mongo.ErrNoDocuments {
		uierrors.RenderNotFound(w, r, "Content not found.")
		return nil, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading content", err, "A database error occurred.")
		return nil, false
	}
	if !contentpolicy.HasContentAccess(authz.Principal(r), *c) {
		h.ErrLog.LogForbidden(w, r, "content access denied", "You do not have access to this content.")
		return nil, false
	}
	return c, true
}
