// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration (ports, TLS, log level).
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: plougastelfc-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// Uploaded library files
	StoragePath string // Root directory for uploaded content files
	MaxUploadMB int    // Upload size limit in megabytes

	// Google sign-in (disabled when either value is empty)
	GoogleClientID     string
	GoogleClientSecret string

	// BaseURL is used to build the OAuth callback URL.
	BaseURL string // e.g., "https://hub.plougastel-fc.bzh" or "http://localhost:8080"

	// CORS origins allowed to call the JSON API with credentials.
	CORSOrigins []string

	// Audit logging: "all" (db+log), "db", "log", or "off"
	AuditLogAuth    string
	AuditLogAdmin   string
	AuditLogContent string

	// First administrator, created when the users collection has no admin.
	BootstrapAdminUsername string
	BootstrapAdminPassword string
	BootstrapAdminName     string

	// SeasonStartYear pins the calendar season (0 follows the current date).
	SeasonStartYear int

	// LoginAttemptsPerMinute limits POST /login per client IP.
	LoginAttemptsPerMinute int
}
