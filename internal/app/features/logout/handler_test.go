package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/features/logout"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auth"
	"github.com/LaurentCvlli/Plougastel-FC/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*logout.Handler, *auth.SessionManager) {
	t.Helper()
	logger := zap.NewNop()

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return logout.NewHandler(sessionMgr, nil, logger), sessionMgr
}

func TestServeLogout_JSON(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest(http.MethodPost, "/logout", testutil.PlayerUser())
	rec := testutil.NewRecorder()
	handler.ServeLogout(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"redirect":"/"`)
}

func TestServeLogout_BrowserRedirectsHome(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.Header.Set("Accept", "text/html")
	rec := testutil.NewRecorder()
	handler.ServeLogout(rec, req)

	rec.AssertRedirect(t, "/")
}

func TestServeLogout_ClearsSessionCookie(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeLogout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
			if c.MaxAge >= 0 {
				t.Errorf("expected MaxAge < 0 to delete cookie, got %d", c.MaxAge)
			}
		}
	}
	if !found {
		t.Error("expected session cookie to be cleared")
	}
}

func TestRoutes_RequireSignedIn(t *testing.T) {
	handler, sm := newTestHandler(t)
	router := logout.Routes(handler, sm)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}
