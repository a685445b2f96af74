// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/audit"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/paging"
)

// eventRow is one audit event with actor and subject names resolved.
type eventRow struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Category      string            `json:"category"`
	EventType     string            `json:"event_type"`
	ActorName     string            `json:"actor,omitempty"`
	UserName      string            `json:"user,omitempty"`
	TargetID      string            `json:"target_id,omitempty"`
	IP            string            `json:"ip"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failure_reason,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

type listResponse struct {
	Events     []eventRow  `json:"events"`
	Paging     paging.Info `json:"paging"`
	Categories []string    `json:"categories"`
	EventTypes []string    `json:"event_types"`
}

var (
	authEvents = []string{
		audit.EventLoginSuccess,
		audit.EventLoginFailedUserNotFound,
		audit.EventLoginFailedWrongPassword,
		audit.EventLoginFailedUserInactive,
		audit.EventLogout,
	}
	adminEvents = []string{
		audit.EventUserCreated,
		audit.EventUserUpdated,
		audit.EventUserStatusChanged,
		audit.EventUserDeleted,
	}
	contentEvents = []string{
		audit.EventContentCreated,
		audit.EventContentUpdated,
		audit.EventContentDeleted,
		audit.EventContentDownloaded,
		audit.EventDriveCreated,
		audit.EventDriveUpdated,
		audit.EventDriveDeleted,
		audit.EventVideoCreated,
		audit.EventVideoDeleted,
	}
)

func allCategories() []string {
	return []string{audit.CategoryAuth, audit.CategoryAdmin, audit.CategoryContent}
}

// eventTypesForCategory returns the event types of category, or every event
// type when category is empty. Unknown categories yield nil.
func eventTypesForCategory(category string) []string {
	switch category {
	case audit.CategoryAuth:
		return authEvents
	case audit.CategoryAdmin:
		return adminEvents
	case audit.CategoryContent:
		return contentEvents
	case "":
		all := make([]string, 0, len(authEvents)+len(adminEvents)+len(contentEvents))
		all = append(all, authEvents...)
		all = append(all, adminEvents...)
		return append(all, contentEvents...)
	default:
		return nil
	}
}
