// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strings"

	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destinations for a category of audit events.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off"
)

// Config selects where each category of events goes.
type Config struct {
	Auth    string
	Admin   string
	Content string
}

// Logger records audit events to MongoDB (via audit.Store) and zap.
// A nil *Logger is valid and discards everything.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then
// RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func (l *Logger) mode(category string) string {
	var m string
	switch category {
	case audit.CategoryAuth:
		m = l.config.Auth
	case audit.CategoryAdmin:
		m = l.config.Admin
	case audit.CategoryContent:
		m = l.config.Content
	}
	if m == "" {
		return ModeAll
	}
	return m
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.TargetID != "" {
		fields = append(fields, zap.String("target_id", event.TargetID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records event according to the configured mode of its category.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}
	mode := l.mode(event.Category)
	if mode == ModeOff {
		return
	}
	if mode == ModeAll || mode == ModeLog {
		l.logToZap(event)
	}
	if (mode == ModeAll || mode == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

func (l *Logger) request(r *http.Request, ev audit.Event) audit.Event {
	ev.IP = clientIP(r)
	ev.UserAgent = r.UserAgent()
	return ev
}

// --- Authentication ---

// LoginSuccess logs a successful sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, method, username string) {
	l.Log(ctx, l.request(r, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		Success:   true,
		Details:   map[string]string{"auth_method": method, "username": username},
	}))
}

// LoginFailedUserNotFound logs a sign-in for an unknown username.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attempted string) {
	l.Log(ctx, l.request(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedUserNotFound,
		FailureReason: "user not found",
		Details:       map[string]string{"attempted_username": attempted},
	}))
}

// LoginFailedWrongPassword logs a sign-in with a bad password.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID primitive.ObjectID, username string) {
	l.Log(ctx, l.request(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedWrongPassword,
		UserID:        &userID,
		FailureReason: "wrong password",
		Details:       map[string]string{"username": username},
	}))
}

// LoginFailedUserInactive logs a sign-in attempt by a deactivated account.
func (l *Logger) LoginFailedUserInactive(ctx context.Context, r *http.Request, userID primitive.ObjectID, username string) {
	l.Log(ctx, l.request(r, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedUserInactive,
		UserID:        &userID,
		FailureReason: "user inactive",
		Details:       map[string]string{"username": username},
	}))
}

// Logout logs a sign-out. An unparsable id is recorded without a user.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userIDHex string) {
	ev := audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		Success:   true,
	}
	if oid, err := primitive.ObjectIDFromHex(userIDHex); err == nil {
		ev.UserID = &oid
	}
	l.Log(ctx, l.request(r, ev))
}

// --- User administration ---

// UserCreated logs the creation of an account.
func (l *Logger) UserCreated(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID, role string) {
	l.admin(ctx, r, audit.EventUserCreated, actorID, targetID, map[string]string{"role": role})
}

// UserUpdated logs an account edit.
func (l *Logger) UserUpdated(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID, fieldsChanged string) {
	l.admin(ctx, r, audit.EventUserUpdated, actorID, targetID, map[string]string{"fields_changed": fieldsChanged})
}

// UserStatusChanged logs an activation or deactivation.
func (l *Logger) UserStatusChanged(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID, status string) {
	l.admin(ctx, r, audit.EventUserStatusChanged, actorID, targetID, map[string]string{"status": status})
}

// UserDeleted logs an account deletion.
func (l *Logger) UserDeleted(ctx context.Context, r *http.Request, actorID, targetID primitive.ObjectID) {
	l.admin(ctx, r, audit.EventUserDeleted, actorID, targetID, nil)
}

func (l *Logger) admin(ctx context.Context, r *http.Request, eventType string, actorID, targetID primitive.ObjectID, details map[string]string) {
	l.Log(ctx, l.request(r, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   &actorID,
		UserID:    &targetID,
		Success:   true,
		Details:   details,
	}))
}

// --- Content, drive, and videos ---

// ContentEvent logs an action on a content item, drive entry, or video.
// eventType is one of the audit.EventContent*, EventDrive*, EventVideo*
// constants.
func (l *Logger) ContentEvent(ctx context.Context, r *http.Request, eventType string, actorID primitive.ObjectID, targetID, title string) {
	var details map[string]string
	if title != "" {
		details = map[string]string{"title": title}
	}
	l.Log(ctx, l.request(r, audit.Event{
		Category:  audit.CategoryContent,
		EventType: eventType,
		ActorID:   &actorID,
		TargetID:  targetID,
		Success:   true,
		Details:   details,
	}))
}
