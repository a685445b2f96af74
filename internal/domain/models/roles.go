// internal/domain/models/roles.go
package models

// Account roles.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RolePlayer = "player"
)

// Account statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Assignment targets for non-private content. Any other value is read as a
// specific user id.
//
// AssignPlayers is plural while RolePlayer is singular; the two never match.
const (
	AssignAll     = "all"
	AssignPlayers = "players"
	AssignStaff   = "staff"
	AssignAdmin   = "admin"
)

// IsValidRole reports whether role is one of the account roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStaff, RolePlayer:
		return true
	}
	return false
}

// IsValidStatus reports whether status is a known account status.
func IsValidStatus(status string) bool {
	return status == StatusActive || status == StatusInactive
}
