package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorLogger_LogServerError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	el := uierrors.NewErrorLogger(zap.New(core))

	req := testutil.NewRequest(http.MethodGet, "/content", nil)
	rec := testutil.NewRecorder()
	el.LogServerError(rec, req, "list content failed", stderrors.New("boom"), "A database error occurred.")

	rec.AssertStatus(t, http.StatusInternalServerError)
	var body uierrors.Body
	rec.DecodeJSON(t, &body)
	if body.Error != "A database error occurred." || body.Status != 500 {
		t.Errorf("unexpected body %+v", body)
	}
	rec.AssertNotContains(t, "boom")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Level != zapcore.ErrorLevel || entry.Message != "list content failed" {
		t.Errorf("unexpected log entry %+v", entry)
	}
	if entry.ContextMap()["path"] != "/content" {
		t.Errorf("expected path field, got %v", entry.ContextMap())
	}
}

func TestErrorLogger_LogBadRequestAndForbidden(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	el := uierrors.NewErrorLogger(zap.New(core))

	rec := testutil.NewRecorder()
	el.LogBadRequest(rec, testutil.NewRequest(http.MethodPost, "/users", nil), "decode failed", stderrors.New("eof"), "Invalid JSON body.")
	rec.AssertStatus(t, http.StatusBadRequest)

	rec = testutil.NewRecorder()
	el.LogForbidden(rec, testutil.NewRequest(http.MethodDelete, "/users/1", nil), "non-admin delete", "Admins only.")
	rec.AssertStatus(t, http.StatusForbidden)
	rec.AssertContains(t, "Admins only.")

	if n := logs.FilterLevelExact(zapcore.WarnLevel).Len(); n != 2 {
		t.Errorf("expected 2 warn entries, got %d", n)
	}
}

func TestHandler_Forbidden(t *testing.T) {
	h := uierrors.NewHandler()

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/forbidden", testutil.PlayerUser())
	rec := testutil.NewRecorder()
	h.Forbidden(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)

	rec = testutil.NewRecorder()
	h.Unauthorized(rec, testutil.NewRequest(http.MethodGet, "/unauthorized", nil))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	h.NotFound(rec, testutil.NewRequest(http.MethodGet, "/nope", nil))
	rec.AssertStatus(t, http.StatusNotFound)
}
