// internal/app/features/auditlog/handler.go
package auditlog

import (
	uierrors "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/audit"
	userstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Events *audit.Store
	Users  *userstore.Store
}

// NewHandler constructs an audit log feature handler bound to
// the given Mongo database and logger.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Events: audit.New(db),
		Users:  userstore.New(db),
	}
}
