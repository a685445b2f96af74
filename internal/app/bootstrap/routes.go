// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditlogfeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/auditlog"
	authgooglefeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/authgoogle"
	contentfeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/content"
	dashboardfeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/dashboard"
	drivefeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/drive"
	errorsfeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/errors"
	healthfeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/health"
	libraryfeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/library"
	loginfeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/login"
	logoutfeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/logout"
	systemusersfeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/systemusers"
	userinfofeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/userinfo"
	videosfeature "github.com/LaurentCvlli/Plougastel-FC/internal/app/features/videos"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/audit"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/store/oauthstate"
	userstore "github.com/LaurentCvlli/Plougastel-FC/internal/app/store/users"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auditlog"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/auth"
	"github.com/LaurentCvlli/Plougastel-FC/internal/app/system/filestore"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

// Version is reported by /health. It is overridden at build time with
// -ldflags "-X .../bootstrap.Version=...".
var Version = "dev"

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It builds the session manager, the audit
// logger and the upload store, applies the global middleware, and mounts
// one router per feature.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Secure cookies are enabled in production mode.
	prod := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, prod, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// The fetcher reloads the user on each request, so role changes and
	// deactivations take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	storage, err := filestore.NewLocal(appCfg.StoragePath)
	if err != nil {
		logger.Error("file storage init failed", zap.Error(err), zap.String("path", appCfg.StoragePath))
		return nil, err
	}

	auditLog := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:    appCfg.AuditLogAuth,
		Admin:   appCfg.AuditLogAdmin,
		Content: appCfg.AuditLogContent,
	})

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		SSLRedirect:           prod,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !prod,
	}).Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appCfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Loads the SessionUser into context when signed in.
	r.Use(sessionMgr.LoadSessionUser)

	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, Version, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	googleHandler := authgooglefeature.NewHandler(db, sessionMgr, auditLog, oauthstate.New(db),
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, auditLog, googleHandler.IsConfigured(), logger)
	if appCfg.LoginAttemptsPerMinute > 0 {
		loginHandler.AttemptsPerMinute = appCfg.LoginAttemptsPerMinute
	}
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLog, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	userinfofeature.MountRoutes(r, userinfofeature.NewHandler())

	// Error endpoints middleware may redirect browsers to
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Role-based overview
	dashboardHandler := dashboardfeature.NewHandler(db, errLog, logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Club members
	usersHandler := systemusersfeature.NewHandler(db, errLog, auditLog, logger)
	r.Mount("/users", systemusersfeature.Routes(usersHandler, sessionMgr))

	// Content library, simulated drive and videos
	maxUpload := int64(appCfg.MaxUploadMB) << 20
	contentHandler := contentfeature.NewHandler(db, storage, errLog, auditLog, maxUpload, logger)
	r.Mount("/content", contentfeature.Routes(contentHandler, sessionMgr))

	driveHandler := drivefeature.NewHandler(db, errLog, auditLog, logger)
	r.Mount("/drive", drivefeature.Routes(driveHandler, sessionMgr))

	videosHandler := videosfeature.NewHandler(db, errLog, auditLog, logger)
	r.Mount("/videos", videosfeature.Routes(videosHandler, sessionMgr))

	// Audit trail (admins only)
	auditHandler := auditlogfeature.NewHandler(db, errLog, logger)
	r.Mount("/audit", auditlogfeature.Routes(auditHandler, sessionMgr))

	// Unified catalog across all three sources
	libraryHandler := libraryfeature.NewHandler(db, errLog, appCfg.SeasonStartYear, logger)
	r.Mount("/library", libraryfeature.Routes(libraryHandler, sessionMgr))

	return r, nil
}
