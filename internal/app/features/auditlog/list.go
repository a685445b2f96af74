// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/audit"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/paging"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /audit                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList returns audit events, newest first.
//
// Query parameters: category, event_type, user (ObjectID hex, matches actor
// or subject), start_date and end_date (YYYY-MM-DD, inclusive), page, size.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))
	eventType := strings.TrimSpace(q.Get("event_type"))

	if category != "" && eventTypesForCategory(category) == nil {
		uierrors.RenderBadRequest(w, r, "Unknown category.")
		return
	}

	page := paging.Parse(r)
	filter := audit.QueryFilter{
		Category:  category,
		EventType: eventType,
		Limit:     page.Limit(),
		Offset:    page.Offset(),
	}

	if start := strings.TrimSpace(q.Get("start_date")); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			uierrors.RenderBadRequest(w, r, "start_date must be YYYY-MM-DD.")
			return
		}
		filter.StartTime = &t
	}
	if end := strings.TrimSpace(q.Get("end_date")); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			uierrors.RenderBadRequest(w, r, "end_date must be YYYY-MM-DD.")
			return
		}
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndTime = &endOfDay
	}

	var subject *primitive.ObjectID
	if hex := strings.TrimSpace(q.Get("user")); hex != "" {
		oid, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			uierrors.RenderBadRequest(w, r, "Invalid user id.")
			return
		}
		subject = &oid
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "audit log list")
	defer cancel()

	var (
		events []audit.Event
		total  int64
		err    error
	)
	if subject != nil {
		// Events where the user acted, merged with events that affected them.
		events, total, err = h.queryForUser(ctx, filter, *subject)
	} else {
		events, err = h.Events.Query(ctx, filter)
		if err == nil {
			total, err = h.Events.Count(ctx, filter)
		}
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "query audit events", err, "A database error occurred.")
		return
	}

	names := h.resolveNames(ctx, events)
	rows := make([]eventRow, 0, len(events))
	for _, e := range events {
		row := eventRow{
			ID:            e.ID.Hex(),
			Timestamp:     e.Timestamp,
			Category:      e.Category,
			EventType:     e.EventType,
			TargetID:      e.TargetID,
			IP:            e.IP,
			Success:       e.Success,
			FailureReason: e.FailureReason,
			Details:       e.Details,
		}
		if e.ActorID != nil {
			row.ActorName = nameOr(names, *e.ActorID)
		}
		if e.UserID != nil {
			row.UserName = nameOr(names, *e.UserID)
		}
		rows = append(rows, row)
	}

	uierrors.WriteJSON(w, http.StatusOK, listResponse{
		Events:     rows,
		Paging:     page.Describe(total),
		Categories: allCategories(),
		EventTypes: eventTypesForCategory(category),
	})
}

// queryForUser pages through events where id is either the actor or the
// affected user. Offsets apply to the merged, time-ordered stream.
func (h *Handler) queryForUser(ctx context.Context, filter audit.QueryFilter, id primitive.ObjectID) ([]audit.Event, int64, error) {
	asActor, asUser := filter, filter
	asActor.ActorID = &id
	asUser.UserID = &id

	// Fetch enough of each stream to cover the requested window.
	window := filter.Offset + filter.Limit
	asActor.Offset, asActor.Limit = 0, window
	asUser.Offset, asUser.Limit = 0, window

	acted, err := h.Events.Query(ctx, asActor)
	if err != nil {
		return nil, 0, err
	}
	affected, err := h.Events.Query(ctx, asUser)
	if err != nil {
		return nil, 0, err
	}
	nActed, err := h.Events.Count(ctx, asActor)
	if err != nil {
		return nil, 0, err
	}
	nAffected, err := h.Events.Count(ctx, asUser)
	if err != nil {
		return nil, 0, err
	}
	both := asActor
	both.UserID = &id
	nBoth, err := h.Events.Count(ctx, both)
	if err != nil {
		return nil, 0, err
	}

	merged := mergeByTime(acted, affected)
	start := min(int(filter.Offset), len(merged))
	end := min(start+int(filter.Limit), len(merged))
	return merged[start:end], nActed + nAffected - nBoth, nil
}

// mergeByTime merges two newest-first slices, dropping duplicates.
func mergeByTime(a, b []audit.Event) []audit.Event {
	out := make([]audit.Event, 0, len(a)+len(b))
	seen := make(map[primitive.ObjectID]bool, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var next audit.Event
		if j >= len(b) || (i < len(a) && !a[i].Timestamp.Before(b[j].Timestamp)) {
			next = a[i]
			i++
		} else {
			next = b[j]
			j++
		}
		if seen[next.ID] {
			continue
		}
		seen[next.ID] = true
		out = append(out, next)
	}
	return out
}

func (h *Handler) resolveNames(ctx context.Context, events []audit.Event) map[primitive.ObjectID]string {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, e := range events {
		if e.ActorID != nil {
			idSet[*e.ActorID] = struct{}{}
		}
		if e.UserID != nil {
			idSet[*e.UserID] = struct{}{}
		}
	}
	names := make(map[primitive.ObjectID]string, len(idSet))
	if len(idSet) == 0 {
		return names
	}

	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	users, err := h.Users.GetByIDs(ctx, ids)
	if err != nil {
		h.Log.Warn("failed to fetch user names for audit log", zap.Error(err))
		return names
	}
	for _, u := range users {
		names[u.ID] = u.FullName
	}
	return names
}

// nameOr falls back to the hex id for deleted users.
func nameOr(names map[primitive.ObjectID]string, id primitive.ObjectID) string {
	if n, ok := names[id]; ok {
		return n
	}
	return id.Hex()
}
