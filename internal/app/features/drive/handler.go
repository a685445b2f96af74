// internal/app/features/drive/handler.go
package drive

import (
	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	drivefilestore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/drivefiles"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the club's shared drive.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Files    *drivefilestore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
		Files:    drivefilestore.New(db),
	}
}
