// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"strings"

	userstore "github.com/dalemusser/apollo/internal/app/store/users"
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.TimeoutPing,
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})
	cur := timeouts.Current()
	logger.Info("mongo timeouts",
		zap.Duration("ping", cur.Ping),
		zap.Duration("short", cur.Short),
		zap.Duration("medium", cur.Medium),
		zap.Duration("long", cur.Long))

	if appCfg.AdminEmail == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()
	return ensureAdmin(ctx, deps, appCfg, logger)
}

// ensureAdmin makes sure the configured administrator exists with every
// permission. An existing account keeps its profile and password and is
// only promoted.
func ensureAdmin(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	store := userstore.New(deps.MongoDatabase)
	email := strings.TrimSpace(appCfg.AdminEmail)
	perms := models.AllPermissions()

	existing, err := store.GetByEmail(ctx, email)
	switch {
	case err == nil:
		isAdmin := true
		if _, err := store.Update(ctx, existing.ID, userstore.Update{IsAdmin: &isAdmin, Permissions: &perms}); err != nil {
			logger.Error("admin promotion failed", zap.String("email", email), zap.Error(err))
			return err
		}
		logger.Info("admin account ensured", zap.String("email", email), zap.String("user_id", existing.ID.Hex()))
		return nil
	case !errors.Is(err, userstore.ErrNotFound):
		logger.Error("admin lookup failed", zap.String("email", email), zap.Error(err))
		return err
	}

	u := models.User{
		Name:        strings.TrimSpace(appCfg.AdminName),
		Email:       email,
		IsAdmin:     true,
		Permissions: perms,
	}
	if u.Name == "" {
		u.Name = email
	}
	if appCfg.AdminPassword != "" {
		hash, err := auth.HashPassword(appCfg.AdminPassword)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	} else {
		logger.Warn("admin account created without a password; it cannot sign in until one is set",
			zap.String("email", email))
	}

	created, err := store.Create(ctx, u)
	if err != nil {
		logger.Error("admin creation failed", zap.String("email", email), zap.Error(err))
		return err
	}
	logger.Info("admin account created", zap.String("email", email), zap.String("user_id", created.ID.Hex()))
	return nil
}
