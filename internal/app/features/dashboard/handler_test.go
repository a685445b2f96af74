package dashboard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/features/dashboard"
	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/LaurentCvlli/Plougastel-FC/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*dashboard.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return dashboard.NewHandler(db, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func TestServeDashboard_Unauthenticated(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, httptest.NewRequest("GET", "/dashboard", nil))
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestServeDashboard_Admin(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "P1", "p1", models.RolePlayer, "")
	fx.CreateUser(ctx, "P2", "p2", models.RolePlayer, "")
	fx.CreateUser(ctx, "Coach", "coach", models.RoleStaff, "")
	fx.CreateContent(ctx, models.ContentItem{Title: "A", AssignedTo: "all", URL: "https://x.y/a"})
	fx.CreateContent(ctx, models.ContentItem{Title: "B", IsPrivate: true, Type: models.ContentVideo, URL: "https://x.y/b"})
	fx.CreateDriveFile(ctx, models.DriveFile{Name: "f.pdf", Type: models.DriveDocument})
	fx.CreateDriveFile(ctx, models.DriveFile{Name: "dir", Type: models.DriveFolder})
	fx.CreateVideo(ctx, models.Video{Title: "V", EmbedURL: "https://vimeo.com/1", UploadDate: "2025-10-01"})

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.NewAuthenticatedRequest("GET", "/dashboard", testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		UsersByRole    map[string]int64 `json:"users_by_role"`
		TotalUsers     int64            `json:"total_users"`
		ContentTotal   int64            `json:"content_total"`
		PrivateContent int64            `json:"private_content"`
		VideoContent   int64            `json:"video_content"`
		DriveFiles     int64            `json:"drive_files"`
		Videos         int64            `json:"videos"`
	}
	rec.DecodeJSON(t, &body)
	if body.UsersByRole["player"] != 2 || body.UsersByRole["staff"] != 1 || body.UsersByRole["admin"] != 0 {
		t.Errorf("users by role: %v", body.UsersByRole)
	}
	if body.TotalUsers != 3 || body.ContentTotal != 2 || body.PrivateContent != 1 || body.VideoContent != 1 {
		t.Errorf("counts: %+v", body)
	}
	if body.DriveFiles != 1 || body.Videos != 1 {
		t.Errorf("drive=%d videos=%d", body.DriveFiles, body.Videos)
	}
}

func TestServeDashboard_Player(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	player := testutil.PlayerUser()
	fx.CreateContent(ctx, models.ContentItem{Title: "Team", AssignedTo: "all", URL: "https://x.y/a"})
	fx.CreateContent(ctx, models.ContentItem{Title: "Mine", AssignedTo: player.ID, URL: "https://x.y/b"})
	fx.CreateContent(ctx, models.ContentItem{Title: "Secret", IsPrivate: true, AuthorizedUsers: []string{player.ID}, URL: "https://x.y/c"})
	fx.CreateContent(ctx, models.ContentItem{Title: "Hidden", AssignedTo: "staff", URL: "https://x.y/d"})

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.NewAuthenticatedRequest("GET", "/dashboard", player))
	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Role           string `json:"role"`
		VisibleContent int    `json:"visible_content"`
		TeamContent    int    `json:"team_content"`
		Personal       int    `json:"personal_content"`
		Private        int    `json:"private_content"`
	}
	rec.DecodeJSON(t, &body)
	if body.Role != "player" || body.VisibleContent != 3 || body.TeamContent != 1 || body.Personal != 1 || body.Private != 1 {
		t.Errorf("got %+v", body)
	}
}

func TestServeDashboard_Staff(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "P1", "p1", models.RolePlayer, "")
	fx.CreateContent(ctx, models.ContentItem{Title: "Hidden", AssignedTo: "admin", URL: "https://x.y/d"})

	rec := testutil.NewRecorder()
	h.ServeDashboard(rec, testutil.NewAuthenticatedRequest("GET", "/dashboard", testutil.StaffUser()))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"players":1`)
	rec.AssertContains(t, `"visible_content":1`)
}
