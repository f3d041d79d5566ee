// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS); everything below is
// specific to Apollo.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Access tokens
	TokenSecret string        // HS256 signing key, at least 32 bytes
	TokenIssuer string        // "iss" claim written and required on every token
	TokenTTL    time.Duration // lifetime of an issued token

	// BaseURL is the public address of the back-office frontend. Invitation
	// links point at BaseURL + "/signup" and password reset links at
	// BaseURL + "/reset-password/{token}".
	BaseURL string

	// PasswordResetTTL is how long a reset link stays usable.
	PasswordResetTTL time.Duration

	// Audit logging: "all", "db", "log" or "off"
	AuditLogAuth  string
	AuditLogAdmin string

	// Admin bootstrap. When AdminEmail is set, Startup creates that account
	// (or promotes an existing one) with every permission.
	AdminEmail    string
	AdminName     string
	AdminPassword string

	// MongoDB operation deadlines, applied through the timeouts package.
	// Zero keeps the built-in default.
	TimeoutPing   time.Duration
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
