package drive_test

import (
	"net/http"
	"testing"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/features/drive"
	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/drivepolicy"
	drivefilestore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/drivefiles"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/LaurentCvlli/Plougastel-FC/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*drive.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return drive.NewHandler(db, uierrors.NewErrorLogger(logger), nil, logger), testutil.NewFixtures(t, db)
}

type entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Path        []string `json:"path"`
	CanEdit     bool `json:"can_edit"`
	CanDownload bool `json:"can_download"`
}

type listBody struct {
	Breadcrumb []string `json:"breadcrumb"`
	Items      []entry  `json:"items"`
}

func TestServeList_RootVisibility(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateDriveFile(ctx, models.DriveFile{Name: "Staff room", Type: models.DriveFolder, Permissions: drivepolicy.DefaultPermissions(models.DriveFolder)})
	fx.CreateDriveFile(ctx, models.DriveFile{Name: "Calendrier.pdf", Type: models.DriveDocument, URL: "https://example.com/c", Permissions: drivepolicy.DefaultPermissions(models.DriveDocument)})
	fx.CreateDriveFile(ctx, models.DriveFile{Name: "Admin.pdf", Type: models.DriveDocument, URL: "https://example.com/a", Permissions: models.DrivePermissions{CanView: []string{"admin"}}})

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/drive", testutil.PlayerUser()))
	rec.AssertStatus(t, http.StatusOK)
	var player listBody
	rec.DecodeJSON(t, &player)
	if len(player.Items) != 1 || player.Items[0].Name != "Calendrier.pdf" {
		t.Fatalf("player should only see the shared file, got %+v", player.Items)
	}
	if player.Items[0].CanEdit || !player.Items[0].CanDownload {
		t.Errorf("player rights: %+v", player.Items[0])
	}

	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/drive", testutil.AdminUser()))
	var admin listBody
	rec.DecodeJSON(t, &admin)
	if len(admin.Items) != 3 {
		t.Fatalf("admin should see 3 entries, got %d", len(admin.Items))
	}
	if admin.Items[0].Type != models.DriveFolder {
		t.Errorf("folders should be listed first, got %+v", admin.Items[0])
	}
}

func TestServeList_FolderForbidden(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	folder := fx.CreateDriveFile(ctx, models.DriveFile{Name: "Staff room", Type: models.DriveFolder, Permissions: drivepolicy.DefaultPermissions(models.DriveFolder)})

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/drive?parent="+folder.ID.Hex(), testutil.PlayerUser()))
	rec.AssertStatus(t, http.StatusForbidden)

	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/drive?parent="+primitive.NewObjectID().Hex(), testutil.StaffUser()))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestCreateFolderAndFile_Breadcrumb(t *testing.T) {
	h, _ := newTestHandler(t)
	staff := testutil.StaffUser()

	rec := testutil.NewRecorder()
	h.HandleCreateFolder(rec, testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/drive/folders", map[string]string{"name": "Saison 2025"}), staff))
	rec.AssertStatus(t, http.StatusCreated)
	var folder entry
	rec.DecodeJSON(t, &folder)

	rec = testutil.NewRecorder()
	h.HandleAddFile(rec, testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/drive/files", map[string]any{
		"name":      "Compo.pdf",
		"type":      "document",
		"url":       "https://drive.google.com/file/d/xyz/view",
		"parent_id": folder.ID,
	}), staff))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/drive?parent="+folder.ID, staff))
	rec.AssertStatus(t, http.StatusOK)
	var body listBody
	rec.DecodeJSON(t, &body)
	if len(body.Breadcrumb) != 1 || body.Breadcrumb[0] != "Saison 2025" {
		t.Errorf("breadcrumb: got %v", body.Breadcrumb)
	}
	if len(body.Items) != 1 || body.Items[0].Name != "Compo.pdf" {
		t.Fatalf("children: got %+v", body.Items)
	}
}

func TestHandleAddFile_Validation(t *testing.T) {
	h, _ := newTestHandler(t)
	cases := []map[string]any{
		{"type": "document", "url": "https://x.y"},
		{"name": "a", "type": "folder", "url": "https://x.y"},
		{"name": "a", "type": "image", "url": "not a url"},
		{"name": "a", "type": "image", "url": "https://x.y", "parent_id": "nope"},
	}
	for i, body := range cases {
		rec := testutil.NewRecorder()
		h.HandleAddFile(rec, testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/drive/files", body), testutil.AdminUser()))
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("case %d: expected 422, got %d", i, rec.Code)
		}
	}
}

func TestEditRights(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := fx.CreateDriveFile(ctx, models.DriveFile{Name: "Plan.pdf", Type: models.DriveDocument, URL: "https://example.com/p", Permissions: drivepolicy.DefaultPermissions(models.DriveDocument)})
	id := f.ID.Hex()

	// Players can star what they see but cannot rename it.
	rec := testutil.NewRecorder()
	h.HandleToggleStar(rec, testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("POST", "/drive/"+id+"/star", testutil.PlayerUser()), "id", id))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"starred":true`)

	req := testutil.WithChiURLParam(testutil.WithUser(testutil.NewJSONRequest(t, "PATCH", "/drive/"+id, map[string]string{"name": "X"}), testutil.PlayerUser()), "id", id)
	rec = testutil.NewRecorder()
	h.HandleRename(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)

	req = testutil.WithChiURLParam(testutil.WithUser(testutil.NewJSONRequest(t, "PATCH", "/drive/"+id, map[string]string{"name": "Plan v2.pdf"}), testutil.AdminUser()), "id", id)
	rec = testutil.NewRecorder()
	h.HandleRename(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	got, err := drivefilestore.New(fx.DB()).GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Plan v2.pdf" || !got.Starred {
		t.Errorf("got %+v", got)
	}

	rec = testutil.NewRecorder()
	h.HandleToggleShare(rec, testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("POST", "/drive/"+id+"/share", testutil.AdminUser()), "id", id))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"shared":true`)
}

func TestHandleDelete_FolderMustBeEmpty(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	folder := fx.CreateDriveFile(ctx, models.DriveFile{Name: "Vidéos", Type: models.DriveFolder, Permissions: drivepolicy.DefaultPermissions(models.DriveFolder)})
	child := fx.CreateDriveFile(ctx, models.DriveFile{Name: "a.mp4", Type: models.DriveVideo, ParentID: &folder.ID, Permissions: drivepolicy.DefaultPermissions(models.DriveVideo)})

	admin := testutil.AdminUser()
	rec := testutil.NewRecorder()
	h.HandleDelete(rec, testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("DELETE", "/drive/"+folder.ID.Hex(), admin), "id", folder.ID.Hex()))
	rec.AssertStatus(t, http.StatusConflict)

	rec = testutil.NewRecorder()
	h.HandleDelete(rec, testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("DELETE", "/drive/"+child.ID.Hex(), admin), "id", child.ID.Hex()))
	rec.AssertStatus(t, http.StatusNoContent)

	rec = testutil.NewRecorder()
	h.HandleDelete(rec, testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("DELETE", "/drive/"+folder.ID.Hex(), admin), "id", folder.ID.Hex()))
	rec.AssertStatus(t, http.StatusNoContent)
}

func TestServeDownload(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	open := fx.CreateDriveFile(ctx, models.DriveFile{Name: "o.pdf", Type: models.DriveDocument, URL: "https://drive.google.com/open?id=abc", Permissions: drivepolicy.DefaultPermissions(models.DriveDocument)})
	closed := fx.CreateDriveFile(ctx, models.DriveFile{Name: "c.pdf", Type: models.DriveDocument, URL: "https://example.com/c", Permissions: models.DrivePermissions{CanView: []string{"all"}, CanDownload: []string{"staff"}}})

	rec := testutil.NewRecorder()
	h.ServeDownload(rec, testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("GET", "/drive/x/download", testutil.PlayerUser()), "id", open.ID.Hex()))
	rec.AssertRedirect(t, "https://drive.google.com/uc?export=download&id=abc&confirm=t")

	rec = testutil.NewRecorder()
	h.ServeDownload(rec, testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("GET", "/drive/x/download", testutil.PlayerUser()), "id", closed.ID.Hex()))
	rec.AssertStatus(t, http.StatusForbidden)
}
