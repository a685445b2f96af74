// Package contentpolicy decides who may see and download club content.
//
// Authorization rules, first match wins:
//   - admin and staff see everything, private or not
//   - private content is visible only to its authorized users and its author;
//     assignment is not consulted for private items
//   - otherwise the item must be assigned to "all", to the principal's role,
//     or to the principal's id
//
// Every function is pure and safe for concurrent use. Callers load the
// principal and the items; nothing here reads from a store.
package contentpolicy

import (
	"fmt"

	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
)

// PrivateWarning is shown alongside private content.
const PrivateWarning = "⚠️ This is private content. Only authorized users can access this material."

// Principal identifies the user asking for access. A nil *Principal is an
// unauthenticated caller.
type Principal struct {
	ID   string
	Role string
}

// HasContentAccess reports whether p may view c.
//
// A nil principal is denied. An empty id never matches an id entry.
func HasContentAccess(p *Principal, c models.ContentItem) bool {
	if p == nil {
		return false
	}

	switch p.Role {
	case models.RoleAdmin, models.RoleStaff:
		return true
	}

	if c.IsPrivate {
		if p.ID == "" {
			return false
		}
		if contains(c.AuthorizedUsers, p.ID) {
			return true
		}
		return c.CreatedBy != nil && *c.CreatedBy == p.ID
	}

	// Role and id share one namespace: an item assigned to "player" is visible
	// to every player, and "players" matches no role at all.
	return c.AssignedTo == models.AssignAll ||
		c.AssignedTo == p.Role ||
		(p.ID != "" && c.AssignedTo == p.ID)
}

// FilterContentByAccess returns the items p may view, in their original order.
// The input slice is not modified.
func FilterContentByAccess(p *Principal, items []models.ContentItem) []models.ContentItem {
	out := make([]models.ContentItem, 0, len(items))
	if p == nil {
		return out
	}
	for _, c := range items {
		if HasContentAccess(p, c) {
			out = append(out, c)
		}
	}
	return out
}

// CanUserDownload reports whether p may download c. Download rights follow
// view rights.
func CanUserDownload(p *Principal, c models.ContentItem) bool {
	return HasContentAccess(p, c)
}

// AccessLevelDisplay returns a short human label describing who can see c.
func AccessLevelDisplay(c models.ContentItem) string {
	if c.IsPrivate {
		n := 0
		for _, u := range c.AuthorizedUsers {
			if u != models.AssignStaff && u != models.AssignAdmin {
				n++
			}
		}
		return fmt.Sprintf("🔒 Private (%d users + staff/admin)", n)
	}

	switch c.AssignedTo {
	case models.AssignAll:
		return "🌐 Public (All Users)"
	case models.AssignPlayers:
		return "⚽ Players Only"
	case models.AssignStaff:
		return "👥 Staff Only"
	case models.AssignAdmin:
		return "🔧 Admin Only"
	default:
		return "👤 Specific User"
	}
}

// PrivacyWarning returns the warning to display for private content and
// whether there is one.
func PrivacyWarning(c models.ContentItem) (string, bool) {
	if !c.IsPrivate {
		return "", false
	}
	return PrivateWarning, true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
