// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"
	"time"

	healthfeature "github.com/dalemusser/apollo/internal/app/features/health"
	invitationfeature "github.com/dalemusser/apollo/internal/app/features/invitation"
	loginfeature "github.com/dalemusser/apollo/internal/app/features/login"
	passwordresetfeature "github.com/dalemusser/apollo/internal/app/features/passwordreset"
	plansfeature "github.com/dalemusser/apollo/internal/app/features/plans"
	requestsfeature "github.com/dalemusser/apollo/internal/app/features/requests"
	teamsfeature "github.com/dalemusser/apollo/internal/app/features/teams"
	userinfofeature "github.com/dalemusser/apollo/internal/app/features/userinfo"
	usersfeature "github.com/dalemusser/apollo/internal/app/features/users"
	auditstore "github.com/dalemusser/apollo/internal/app/store/audit"
	invitationstore "github.com/dalemusser/apollo/internal/app/store/invitations"
	passwordresetstore "github.com/dalemusser/apollo/internal/app/store/passwordresets"
	requeststore "github.com/dalemusser/apollo/internal/app/store/requests"
	teamstore "github.com/dalemusser/apollo/internal/app/store/teams"
	userstore "github.com/dalemusser/apollo/internal/app/store/users"
	"github.com/dalemusser/apollo/internal/app/system/auditlog"
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/httpjson"
	"github.com/dalemusser/apollo/internal/app/system/mailer"
	"github.com/dalemusser/apollo/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Apollo is a JSON API. Every request passes through auth's LoadUser, which
// turns a valid bearer token into the current user; the feature routers
// decide which endpoints need one.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens := auth.NewTokenService([]byte(appCfg.TokenSecret), appCfg.TokenIssuer, appCfg.TokenTTL)
	return newRouter(routerDeps{
		client:   deps.MongoClient,
		db:       deps.MongoDatabase,
		tokens:   tokens,
		baseURL:  appCfg.BaseURL,
		resetTTL: appCfg.PasswordResetTTL,
		audit: auditlog.Config{
			Auth:  appCfg.AuditLogAuth,
			Admin: appCfg.AuditLogAdmin,
		},
	}, logger), nil
}

type routerDeps struct {
	client   *mongo.Client
	db       *mongo.Database
	tokens   *auth.TokenService
	baseURL  string
	resetTTL time.Duration
	audit    auditlog.Config
}

func newRouter(d routerDeps, logger *zap.Logger) chi.Router {
	users := userstore.New(d.db)
	teams := teamstore.New(d.db)
	requests := requeststore.New(d.db)
	invitations := invitationstore.New(d.db)
	auditLog := auditlog.New(auditstore.New(d.db), logger, d.audit)

	r := chi.NewRouter()

	// Global auth middleware: loads the token's user into context.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(auth.NewMiddleware(d.tokens, userstore.NewFetcher(d.db), logger).LoadUser)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpjson.Error(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpjson.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Health check endpoint for load balancers and orchestrators
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(d.client, logger)))

	// Public catalogue
	r.Mount("/plans", plansfeature.Routes())

	// Authentication
	loginHandler := loginfeature.NewHandler(users, invitations, d.tokens, auditLog, logger)
	loginHandler.Limiter = ratelimit.NewLoginLimiter()
	authRouter := loginfeature.Routes(loginHandler)

	// Password reset, also under /auth. Without a mail transport the links
	// go to the log.
	resetHandler := passwordresetfeature.NewHandler(users, passwordresetstore.New(d.db, d.resetTTL),
		mailer.LogSender{Log: logger}, d.baseURL, auditLog, logger)
	resetHandler.Limiter = passwordresetfeature.NewLimiter()
	passwordresetfeature.Register(authRouter, resetHandler)
	r.Mount("/auth", authRouter)

	// Users, plus the signed-in user's own views under /user/info and /user/invited
	usersRouter := usersfeature.Routes(usersfeature.NewHandler(users, auditLog, logger))
	userinfofeature.Register(usersRouter, userinfofeature.NewHandler(users, teams, logger))
	r.Mount("/user", usersRouter)

	r.Mount("/team", teamsfeature.Routes(teamsfeature.NewHandler(teams, users, auditLog, logger)))
	r.Mount("/request", requestsfeature.Routes(requestsfeature.NewHandler(requests, auditLog, logger)))

	invitationHandler := invitationfeature.NewHandler(invitations, strings.TrimSpace(d.baseURL), logger)
	r.Mount("/invitation", invitationfeature.Routes(invitationHandler))

	return r
}
