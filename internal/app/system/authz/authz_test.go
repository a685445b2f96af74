package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auth"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func requestAs(role, id string) *http.Request {
	req := httptest.NewRequest("GET", "/test", nil)
	return auth.WithTestUser(req, &auth.SessionUser{ID: id, Role: role})
}

func TestUserCtx_NoUser(t *testing.T) {
	role, name, id, ok := authz.UserCtx(httptest.NewRequest("GET", "/test", nil))
	if ok || role != "visitor" || name != "" || !id.IsZero() {
		t.Errorf("unexpected result %q %q %v %v", role, name, id, ok)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	if _, _, _, ok := authz.UserCtx(requestAs("admin", "not-an-id")); ok {
		t.Error("expected malformed id to fail closed")
	}
}

func TestUserCtx_LowercasesRole(t *testing.T) {
	oid := primitive.NewObjectID()
	role, _, id, ok := authz.UserCtx(requestAs("STAFF", oid.Hex()))
	if !ok || role != "staff" || id != oid {
		t.Errorf("got %q %v %v", role, id, ok)
	}
}

func TestPrincipal(t *testing.T) {
	if p := authz.Principal(httptest.NewRequest("GET", "/", nil)); p != nil {
		t.Errorf("expected nil principal, got %+v", p)
	}

	oid := primitive.NewObjectID()
	p := authz.Principal(requestAs("player", oid.Hex()))
	if p == nil || p.ID != oid.Hex() || p.Role != "player" {
		t.Errorf("unexpected principal %+v", p)
	}
}

func TestRolePredicates(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	tests := []struct {
		role                       string
		admin, staff, player, vids bool
	}{
		{"admin", true, false, false, true},
		{"staff", false, true, false, true},
		{"player", false, false, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			r := requestAs(tc.role, id)
			if authz.IsAdmin(r) != tc.admin || authz.IsStaff(r) != tc.staff ||
				authz.IsPlayer(r) != tc.player || authz.CanManageVideos(r) != tc.vids {
				t.Errorf("unexpected predicates for %s", tc.role)
			}
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	r := requestAs("staff", primitive.NewObjectID().Hex())
	if !authz.HasAnyRole(r, "admin", " Staff ") {
		t.Error("expected staff to match")
	}
	if authz.HasAnyRole(r, "player") {
		t.Error("expected player not to match")
	}
	if authz.HasAnyRole(httptest.NewRequest("GET", "/", nil), "admin") {
		t.Error("expected no match without user")
	}
	if role, ok := authz.Role(r); !ok || role != "staff" {
		t.Errorf("Role() = %q, %v", role, ok)
	}
}
