// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/contentpolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auth"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, ObjectID, and a found
// flag. A missing user or a malformed id yields "visitor", "", NilObjectID,
// false, so ok=true always means a valid signed-in user.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// Principal returns the access-control principal for the request, or nil
// when nobody is signed in.
func Principal(r *http.Request) *contentpolicy.Principal {
	role, _, id, ok := UserCtx(r)
	if !ok {
		return nil
	}
	return &contentpolicy.Principal{ID: id.Hex(), Role: role}
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsStaff reports whether the current request's user is staff.
func IsStaff(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleStaff
}

// IsPlayer reports whether the current request's user is a player.
func IsPlayer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RolePlayer
}

// CanManageVideos reports whether the user may add videos to the catalog.
func CanManageVideos(r *http.Request) bool {
	return HasAnyRole(r, models.RoleAdmin, models.RoleStaff)
}
