package drivepolicy_test

import (
	"reflect"
	"testing"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/contentpolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/drivepolicy"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
)

var (
	admin  = &contentpolicy.Principal{ID: "a1", Role: models.RoleAdmin}
	staff  = &contentpolicy.Principal{ID: "s1", Role: models.RoleStaff}
	player = &contentpolicy.Principal{ID: "p1", Role: models.RolePlayer}
)

func TestDefaultPermissions(t *testing.T) {
	tests := []struct {
		entryType string
		want      models.DrivePermissions
	}{
		{models.DriveFolder, models.DrivePermissions{
			CanView:     []string{"admin", "staff"},
			CanEdit:     []string{"admin"},
			CanDownload: []string{"admin", "staff"},
		}},
		{models.DriveVideo, models.DrivePermissions{
			CanView:     []string{"all"},
			CanEdit:     []string{"admin"},
			CanDownload: []string{"all"},
		}},
	}
	for _, tc := range tests {
		if got := drivepolicy.DefaultPermissions(tc.entryType); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("DefaultPermissions(%q) = %+v, want %+v", tc.entryType, got, tc.want)
		}
	}
}

func TestCanView(t *testing.T) {
	folder := models.DriveFile{Type: models.DriveFolder, Permissions: drivepolicy.DefaultPermissions(models.DriveFolder)}
	personal := models.DriveFile{Type: models.DriveDocument, Permissions: models.DrivePermissions{CanView: []string{"p1"}}}

	tests := []struct {
		name string
		p    *contentpolicy.Principal
		f    models.DriveFile
		want bool
	}{
		{"admin default folder", admin, folder, true},
		{"staff default folder", staff, folder, true},
		{"player default folder", player, folder, false},
		{"nil default folder", nil, folder, false},
		{"listed player", player, personal, true},
		{"other player", &contentpolicy.Principal{ID: "p2", Role: models.RolePlayer}, personal, false},
		{"staff not listed", staff, personal, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := drivepolicy.CanView(tc.p, tc.f); got != tc.want {
				t.Errorf("CanView = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanView_EmptyID(t *testing.T) {
	shared := models.DriveFile{Type: models.DriveDocument, Permissions: drivepolicy.DefaultPermissions(models.DriveDocument)}
	blank := models.DriveFile{Type: models.DriveDocument, Permissions: models.DrivePermissions{CanView: []string{""}}}

	if !drivepolicy.CanView(&contentpolicy.Principal{Role: models.RoleAdmin}, blank) {
		t.Error("admin without id should still bypass lists")
	}
	if !drivepolicy.CanView(&contentpolicy.Principal{Role: models.RolePlayer}, shared) {
		t.Error("player without id should see entries open to all")
	}
	if drivepolicy.CanView(&contentpolicy.Principal{Role: models.RolePlayer}, blank) {
		t.Error("empty id should not match a blank list entry")
	}
}

func TestAdminBypassesLists(t *testing.T) {
	f := models.DriveFile{Type: models.DriveImage}
	if !drivepolicy.CanView(admin, f) || !drivepolicy.CanEdit(admin, f) || !drivepolicy.CanDownload(admin, f) {
		t.Error("admin should bypass empty permission lists")
	}
}

func TestCanEdit(t *testing.T) {
	f := models.DriveFile{Type: models.DriveDocument, Permissions: drivepolicy.DefaultPermissions(models.DriveDocument)}
	if drivepolicy.CanEdit(staff, f) || drivepolicy.CanEdit(player, f) {
		t.Error("default files should be editable by admins only")
	}

	f.Permissions.CanEdit = append(f.Permissions.CanEdit, models.RoleStaff)
	if !drivepolicy.CanEdit(staff, f) {
		t.Error("staff should edit once listed")
	}
}

func TestCanDownload(t *testing.T) {
	file := models.DriveFile{Type: models.DriveVideo, Permissions: drivepolicy.DefaultPermissions(models.DriveVideo)}
	if !drivepolicy.CanDownload(player, file) {
		t.Error("player should download a default file")
	}

	folder := models.DriveFile{Type: models.DriveFolder, Permissions: models.DrivePermissions{CanDownload: []string{"all"}}}
	if drivepolicy.CanDownload(player, folder) || drivepolicy.CanDownload(admin, folder) {
		t.Error("folders are never downloadable")
	}
}

func TestFilterVisible(t *testing.T) {
	files := []models.DriveFile{
		{Name: "Matchs", Type: models.DriveFolder, Permissions: drivepolicy.DefaultPermissions(models.DriveFolder)},
		{Name: "compo.pdf", Type: models.DriveDocument, Permissions: drivepolicy.DefaultPermissions(models.DriveDocument)},
		{Name: "perso.mp4", Type: models.DriveVideo, Permissions: models.DrivePermissions{CanView: []string{"p1"}}},
	}

	got := drivepolicy.FilterVisible(player, files)
	if len(got) != 2 || got[0].Name != "compo.pdf" || got[1].Name != "perso.mp4" {
		t.Errorf("player sees %+v", got)
	}
	if n := len(drivepolicy.FilterVisible(admin, files)); n != 3 {
		t.Errorf("admin sees %d entries, want 3", n)
	}
	if n := len(drivepolicy.FilterVisible(nil, files)); n != 0 {
		t.Errorf("nil principal sees %d entries, want 0", n)
	}
}
