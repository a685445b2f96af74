// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	userstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/users"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auditlog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auth"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authutil"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/jsonutil"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultAttemptsPerMinute is the per-IP login limit when none is configured.
const DefaultAttemptsPerMinute = 10

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	ErrLog        *uierrors.ErrorLogger
	AuditLog      *auditlog.Logger
	Users         *userstore.Store
	GoogleEnabled bool

	AttemptsPerMinute int
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	audit *auditlog.Logger,
	googleEnabled bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:                db,
		Log:               logger,
		SessionMgr:        sessionMgr,
		ErrLog:            errLog,
		AuditLog:          audit,
		Users:             userstore.New(db),
		GoogleEnabled:     googleEnabled,
		AttemptsPerMinute: DefaultAttemptsPerMinute,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Return   string `json:"return,omitempty"`
}

type loginResponse struct {
	User     auth.SessionUser `json:"user"`
	Redirect string           `json:"redirect"`
}

type optionsResponse struct {
	GoogleEnabled bool                `json:"google_enabled"`
	Methods       []models.AuthMethod `json:"methods"`
	Return        string              `json:"return,omitempty"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeLogin reports which sign-in methods are available.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	uierrors.WriteJSON(w, http.StatusOK, optionsResponse{
		GoogleEnabled: h.GoogleEnabled,
		Methods:       models.EnabledAuthMethods(h.GoogleEnabled),
		Return:        urlutil.SafeReturn(r.URL.Query().Get("return"), "", ""),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := jsonutil.Decode(r, &in); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode login body failed", err, "Invalid request body.")
		return
	}
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		uierrors.RenderBadRequest(w, r, "Please enter your username and password.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	switch err {
	case mongo.ErrNoDocuments:
		h.AuditLog.LoginFailedUserNotFound(ctx, r, username)
		h.invalidCredentials(w)
		return
	case nil:
	default:
		h.ErrLog.LogServerError(w, r, "DB find user", err, "A server error occurred.")
		return
	}

	// Password is checked before status so that probing a deactivated
	// account without its password looks like any other failure.
	if !authutil.CheckPassword(u.PasswordHash, in.Password) {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, u.ID, u.Username)
		h.invalidCredentials(w)
		return
	}
	if !u.IsActive() {
		h.AuditLog.LoginFailedUserInactive(ctx, r, u.ID, u.Username)
		uierrors.RenderForbidden(w, r, "Your account is inactive. Please contact a club administrator.")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		uierrors.RenderServerError(w, r, "Unable to create session. Please try again.")
		return
	}
	h.AuditLog.LoginSuccess(ctx, r, u.ID, models.AuthPassword, u.Username)

	uierrors.WriteJSON(w, http.StatusOK, loginResponse{
		User: auth.SessionUser{
			ID:       u.ID.Hex(),
			Name:     u.FullName,
			Username: u.Username,
			Role:     u.Role,
		},
		Redirect: urlutil.SafeReturn(in.Return, "", "/dashboard"),
	})
}

func (h *Handler) invalidCredentials(w http.ResponseWriter) {
	uierrors.WriteJSON(w, http.StatusUnauthorized, uierrors.Body{
		Error:  "Invalid username or password.",
		Status: http.StatusUnauthorized,
	})
}
