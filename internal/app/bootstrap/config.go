// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// minTokenSecret is the shortest HS256 key accepted.
const minTokenSecret = 32

// appConfigKeys defines the configuration keys for Apollo.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_secret, etc.
//   - Environment variables: APOLLO_MONGO_URI, APOLLO_TOKEN_SECRET, etc.
//   - Command-line flags: --mongo_uri, --token_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "apollo", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},

	// Access tokens
	{Name: "token_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "HS256 signing key for access tokens (at least 32 bytes)"},
	{Name: "token_issuer", Default: "apollo", Desc: "Issuer claim for access tokens"},
	{Name: "token_ttl", Default: "12h", Desc: "Access token lifetime (e.g., 12h, 30m)"},

	// Base URL for invitation and password reset links
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Public URL of the back-office frontend"},
	{Name: "password_reset_ttl", Default: "1h", Desc: "Lifetime of a password reset link (e.g., 1h, 30m)"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the administrator account (promotes/creates on startup)"},
	{Name: "admin_name", Default: "Administrador", Desc: "Display name used when the administrator account is created"},
	{Name: "admin_password", Default: "", Desc: "Password set when the administrator account is created"},

	// MongoDB deadlines
	{Name: "timeout_ping", Default: "2s", Desc: "Deadline for the /health database ping"},
	{Name: "timeout_short", Default: "5s", Desc: "Deadline for per-document handler calls and session lookups"},
	{Name: "timeout_medium", Default: "10s", Desc: "Deadline for list endpoints and signup"},
	{Name: "timeout_long", Default: "30s", Desc: "Deadline for the startup super-admin seed"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, APOLLO_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "APOLLO", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenSecret: appValues.String("token_secret"),
		TokenIssuer: appValues.String("token_issuer"),
		TokenTTL:    appValues.Duration("token_ttl", 12*time.Hour),

		BaseURL:          appValues.String("base_url"),
		PasswordResetTTL: appValues.Duration("password_reset_ttl", time.Hour),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		AdminEmail:    appValues.String("admin_email"),
		AdminName:     appValues.String("admin_name"),
		AdminPassword: appValues.String("admin_password"),

		TimeoutPing:   appValues.Duration("timeout_ping", 0),
		TimeoutShort:  appValues.Duration("timeout_short", 0),
		TimeoutMedium: appValues.Duration("timeout_medium", 0),
		TimeoutLong:   appValues.Duration("timeout_long", 0),
	}

	if coreCfg.Env == "prod" && appCfg.TokenSecret == "dev-only-change-me-please-0123456789ABCDEF" {
		logger.Warn("token_secret is still the development default")
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if err := validateAppConfig(appCfg); err != nil {
		logger.Error("invalid app config", zap.Error(err))
		return err
	}
	return nil
}

var auditModes = map[string]bool{"": true, "all": true, "db": true, "log": true, "off": true}

// validateAppConfig checks everything that does not need a live backend.
func validateAppConfig(appCfg AppConfig) error {
	var errs []error
	if len(appCfg.TokenSecret) < minTokenSecret {
		errs = append(errs, fmt.Errorf("token_secret must be at least %d bytes", minTokenSecret))
	}
	if appCfg.TokenTTL <= 0 {
		errs = append(errs, errors.New("token_ttl must be positive"))
	}
	if !urlutil.IsValidAbsHTTPURL(appCfg.BaseURL) {
		errs = append(errs, fmt.Errorf("base_url %q must be an absolute http(s) URL", appCfg.BaseURL))
	}
	if !auditModes[appCfg.AuditLogAuth] {
		errs = append(errs, fmt.Errorf("audit_log_auth %q must be all, db, log or off", appCfg.AuditLogAuth))
	}
	if !auditModes[appCfg.AuditLogAdmin] {
		errs = append(errs, fmt.Errorf("audit_log_admin %q must be all, db, log or off", appCfg.AuditLogAdmin))
	}
	if appCfg.AdminEmail != "" && appCfg.AdminPassword != "" && len(appCfg.AdminPassword) < 8 {
		errs = append(errs, errors.New("admin_password must be at least 8 characters"))
	}
	return errors.Join(errs...)
}
