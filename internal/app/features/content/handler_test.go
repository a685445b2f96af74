package content_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/features/content"
	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/policy/contentpolicy"
	contentstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/content"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/filestore"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/LaurentCvlli/Plougastel-FC/internal/testutil"
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*content.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	storage := filestore.New(afero.NewMemMapFs())
	h := content.NewHandler(db, storage, uierrors.NewErrorLogger(logger), nil, 0, logger)
	return h, testutil.NewFixtures(t, db)
}

type row struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	AccessLevel    string `json:"access_level"`
	PrivacyWarning string `json:"privacy_warning"`
	CanDownload    bool   `json:"can_download"`
	HasFile        bool   `json:"has_file"`
	FileName       string `json:"file_name"`
}

func TestServeList_FiltersByAccess(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	player := testutil.PlayerUser()
	fx.CreateContent(ctx, models.ContentItem{Title: "Team talk", AssignedTo: models.AssignAll, URL: "https://example.com/a", Date: "2025-10-01"})
	fx.CreateContent(ctx, models.ContentItem{Title: "Staff notes", AssignedTo: models.AssignStaff, URL: "https://example.com/b", Date: "2025-10-02"})
	fx.CreateContent(ctx, models.ContentItem{Title: "Plural players", AssignedTo: models.AssignPlayers, URL: "https://example.com/c", Date: "2025-10-03"})
	fx.CreateContent(ctx, models.ContentItem{Title: "My review", IsPrivate: true, AuthorizedUsers: []string{player.ID}, URL: "https://example.com/d", Date: "2025-10-04"})

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/content", player))
	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Items []row `json:"items"`
		Total int   `json:"total"`
	}
	rec.DecodeJSON(t, &body)
	if body.Total != 2 {
		t.Fatalf("expected 2 visible items, got %d: %+v", body.Total, body.Items)
	}
	// Newest date first.
	if body.Items[0].Title != "My review" || body.Items[1].Title != "Team talk" {
		t.Errorf("unexpected order: %+v", body.Items)
	}
	if body.Items[0].PrivacyWarning != contentpolicy.PrivateWarning {
		t.Errorf("private item should carry the warning, got %q", body.Items[0].PrivacyWarning)
	}
	if body.Items[0].AccessLevel != "🔒 Private (1 users + staff/admin)" {
		t.Errorf("access level: got %q", body.Items[0].AccessLevel)
	}
	if body.Items[1].AccessLevel != "🌐 Public (All Users)" {
		t.Errorf("access level: got %q", body.Items[1].AccessLevel)
	}
}

func TestServeList_StaffSeesEverythingAndSearches(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateContent(ctx, models.ContentItem{Title: "Brest away", AssignedTo: models.AssignAdmin, URL: "https://example.com/a"})
	fx.CreateContent(ctx, models.ContentItem{Title: "Secret", IsPrivate: true, URL: "https://example.com/b"})

	rec := testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/content", testutil.StaffUser()))
	var all struct{ Total int }
	rec.DecodeJSON(t, &all)
	if all.Total != 2 {
		t.Errorf("staff should see 2 items, got %d", all.Total)
	}

	rec = testutil.NewRecorder()
	h.ServeList(rec, testutil.NewAuthenticatedRequest("GET", "/content?search=BREST", testutil.StaffUser()))
	var found struct{ Total int }
	rec.DecodeJSON(t, &found)
	if found.Total != 1 {
		t.Errorf("search should find 1 item, got %d", found.Total)
	}
}

func TestServeView_ForbiddenAndNotFound(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fx.CreateContent(ctx, models.ContentItem{Title: "Private", IsPrivate: true, URL: "https://example.com/p"})

	req := testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("GET", "/content/"+c.ID, testutil.PlayerUser()), "id", c.ID)
	rec := testutil.NewRecorder()
	h.ServeView(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)

	req = testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("GET", "/content/missing", testutil.AdminUser()), "id", "missing")
	rec = testutil.NewRecorder()
	h.ServeView(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestServeDownload_DriveLinkRedirect(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fx.CreateContent(ctx, models.ContentItem{
		Title:      "Drive doc",
		AssignedTo: models.AssignAll,
		URL:        "https://drive.google.com/file/d/abc123/view?usp=sharing",
	})
	req := testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("GET", "/content/"+c.ID+"/download", testutil.PlayerUser()), "id", c.ID)
	rec := testutil.NewRecorder()
	h.ServeDownload(rec, req)
	rec.AssertRedirect(t, "https://drive.google.com/uc?export=download&id=abc123&confirm=t")
}

func TestHandleCreate_JSON(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := testutil.AdminUser()
	req := testutil.NewJSONRequest(t, "POST", "/content", map[string]any{
		"title":            "Match vs Landerneau",
		"type":             "video",
		"date":             "2025-09-14",
		"url":              "https://example.com/video",
		"description":      `Highlights <script>alert(1)</script>`,
		"is_private":       true,
		"authorized_users": " u1, ,u2 ",
	})
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.WithUser(req, admin))
	rec.AssertStatus(t, http.StatusCreated)

	var got row
	rec.DecodeJSON(t, &got)
	c, err := contentstore.New(fx.DB()).GetByID(ctx, got.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if strings.Contains(c.Description, "script") {
		t.Errorf("description not sanitized: %q", c.Description)
	}
	if len(c.AuthorizedUsers) != 2 || c.AuthorizedUsers[0] != "u1" || c.AuthorizedUsers[1] != "u2" {
		t.Errorf("authorized users: got %v", c.AuthorizedUsers)
	}
	if c.CreatedBy == nil || *c.CreatedBy != admin.ID {
		t.Errorf("created_by: got %v", c.CreatedBy)
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []map[string]any{
		{"type": "video", "date": "2025-09-14", "url": "https://x.y", "assigned_to": "all"},
		{"title": "t", "type": "audio", "date": "2025-09-14", "url": "https://x.y", "assigned_to": "all"},
		{"title": "t", "type": "video", "date": "14/09/2025", "url": "https://x.y", "assigned_to": "all"},
		{"title": "t", "type": "video", "date": "2025-09-14", "url": "ftp://x.y", "assigned_to": "all"},
		{"title": "t", "type": "video", "date": "2025-09-14", "url": "https://x.y"},
		{"title": "t", "type": "video", "date": "2025-09-14", "assigned_to": "all"},
	}
	for i, body := range cases {
		rec := testutil.NewRecorder()
		h.HandleCreate(rec, testutil.WithUser(testutil.NewJSONRequest(t, "POST", "/content", body), testutil.AdminUser()))
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("case %d: expected 422, got %d (%s)", i, rec.Code, rec.Body.String())
		}
	}
}

func uploadRequest(t *testing.T, fields map[string]string, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := testutil.NewRequest("POST", "/content", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleCreate_UploadDownloadDelete(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	data := []byte("%PDF-1.4 tactical board")
	req := uploadRequest(t, map[string]string{
		"title":       "Pressing plan",
		"type":        "document",
		"date":        "2025-11-02",
		"assigned_to": "all",
	}, "pressing plan.pdf", data)
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, testutil.WithUser(req, testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusCreated)

	var created row
	rec.DecodeJSON(t, &created)
	if !created.HasFile || created.FileName != "pressing plan.pdf" {
		t.Fatalf("expected stored file, got %+v", created)
	}

	stored, err := contentstore.New(fx.DB()).GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.FileSize != int64(len(data)) {
		t.Errorf("file size: got %d, want %d", stored.FileSize, len(data))
	}

	// Download streams the bytes back.
	dl := testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("GET", "/content/"+created.ID+"/download", testutil.PlayerUser()), "id", created.ID)
	rec = testutil.NewRecorder()
	h.ServeDownload(rec, dl)
	rec.AssertStatus(t, http.StatusOK)
	if rec.Body.String() != string(data) {
		t.Errorf("download body: got %q", rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition: got %q", cd)
	}

	// Delete removes both record and file.
	del := testutil.WithChiURLParam(testutil.NewAuthenticatedRequest("DELETE", "/content/"+created.ID, testutil.AdminUser()), "id", created.ID)
	rec = testutil.NewRecorder()
	h.HandleDelete(rec, del)
	rec.AssertStatus(t, http.StatusNoContent)

	if _, err := contentstore.New(fx.DB()).GetByID(ctx, created.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected record deleted, got %v", err)
	}
	if _, err := h.Storage.Stat(stored.FilePath); err != filestore.ErrNotFound {
		t.Errorf("expected stored file deleted, got %v", err)
	}
}

func TestHandleEdit_KeepsFile(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fx.CreateContent(ctx, models.ContentItem{
		Title:      "Old",
		AssignedTo: models.AssignAll,
		FilePath:   "content/2025/01/abcd-old.pdf",
		FileName:   "old.pdf",
	})
	req := testutil.NewJSONRequest(t, "PUT", "/content/"+c.ID, map[string]any{
		"title":       "New title",
		"type":        "document",
		"date":        "2025-01-10",
		"assigned_to": "players",
	})
	req = testutil.WithChiURLParam(testutil.WithUser(req, testutil.AdminUser()), "id", c.ID)
	rec := testutil.NewRecorder()
	h.HandleEdit(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	got, err := contentstore.New(fx.DB()).GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "New title" || got.AssignedTo != models.AssignPlayers {
		t.Errorf("fields not updated: %+v", got)
	}
	if got.FilePath != c.FilePath {
		t.Errorf("file path changed: %q", got.FilePath)
	}
}
