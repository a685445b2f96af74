// internal/app/features/videos/handler.go
package videos

import (
	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	videostore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/videos"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the month-by-month video catalog.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Videos   *videostore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		AuditLog: audit,
		Videos:   videostore.New(db),
	}
}
