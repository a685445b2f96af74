// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/authz"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
	}
}

// ServeDashboard dispatches to the overview for the caller's role.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r)
		return
	}

	switch role {
	case models.RoleAdmin:
		h.ServeAdmin(w, r)
	case models.RoleStaff:
		h.ServeStaff(w, r)
	case models.RolePlayer:
		h.ServePlayer(w, r)
	default:
		uierrors.RenderForbidden(w, r, "Unknown role.")
	}
}
