// internal/app/features/content/handler.go
package content

import (
	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	contentstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/content"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auditlog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/filestore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultMaxUploadBytes caps an uploaded file when no limit is configured.
const DefaultMaxUploadBytes = 200 << 20

// Handler serves the uploaded content library.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	AuditLog *auditlog.Logger
	Content  *contentstore.Store
	Storage  *filestore.Store

	MaxUploadBytes int64
}

func NewHandler(db *mongo.Database, storage *filestore.Store, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, maxUpload int64, logger *zap.Logger) *Handler {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUploadBytes
	}
	return &Handler{
		DB:             db,
		Log:            logger,
		ErrLog:         errLog,
		AuditLog:       audit,
		Content:        contentstore.New(db),
		Storage:        storage,
		MaxUploadBytes: maxUpload,
	}
}
