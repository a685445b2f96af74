// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"sync"
	"time"

	userstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/users"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/oauthstate"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/timeouts"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/workers"
	"github.com/LaurentCvlli/Plougastel-FC/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// stateCleanupInterval is how often expired OAuth states are swept.
const stateCleanupInterval = time.Hour

var (
	workersMu sync.Mutex
	running   []interface{ Stop() }
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment",
			zap.Int("count", n),
			zap.Any("timeouts", timeouts.Current()))
	}

	if err := ensureBootstrapAdmin(ctx, deps, appCfg, logger); err != nil {
		return err
	}

	cleanup := workers.NewStateCleanup(oauthstate.New(deps.MongoDatabase), logger, stateCleanupInterval)
	cleanup.Start()
	workersMu.Lock()
	running = append(running, cleanup)
	workersMu.Unlock()
	return nil
}

func stopWorkers() {
	workersMu.Lock()
	defer workersMu.Unlock()
	for _, w := range running {
		w.Stop()
	}
	running = nil
}

// ensureBootstrapAdmin creates the first administrator from config when the
// database has none. An existing account with the configured username is
// promoted and reactivated instead. Nothing happens once any admin exists.
func ensureBootstrapAdmin(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	username := appCfg.BootstrapAdminUsername
	if username == "" {
		return nil
	}
	users := userstore.New(deps.MongoDatabase)

	admins, err := users.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins > 0 {
		return nil
	}

	existing, err := users.GetByUsername(ctx, username)
	switch {
	case err == mongo.ErrNoDocuments:
		u, err := users.Create(ctx, models.User{
			FullName: appCfg.BootstrapAdminName,
			Username: username,
			Role:     models.RoleAdmin,
			Status:   models.StatusActive,
		}, appCfg.BootstrapAdminPassword)
		if err != nil {
			return fmt.Errorf("create bootstrap admin: %w", err)
		}
		logger.Info("created bootstrap admin",
			zap.String("username", u.Username),
			zap.String("user_id", u.ID.Hex()))
		return nil
	case err != nil:
		return fmt.Errorf("look up bootstrap admin: %w", err)
	}

	err = users.Update(ctx, existing.ID, userstore.Update{
		FullName:       existing.FullName,
		Username:       existing.Username,
		Role:           models.RoleAdmin,
		ProfilePhoto:   existing.ProfilePhoto,
		DriveFolderURL: existing.DriveFolderURL,
		GoogleEmail:    existing.GoogleEmail,
	})
	if err != nil {
		return fmt.Errorf("promote bootstrap admin: %w", err)
	}
	if !existing.IsActive() {
		if err := users.SetStatus(ctx, existing.ID, models.StatusActive); err != nil {
			return fmt.Errorf("activate bootstrap admin: %w", err)
		}
	}
	logger.Info("promoted existing user to admin",
		zap.String("username", existing.Username),
		zap.String("previous_role", existing.Role))
	return nil
}
