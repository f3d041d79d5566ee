package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	userstore "github.com/dalemusser/apollo/internal/app/store/users"
	"github.com/dalemusser/apollo/internal/app/system/auth"
	"github.com/dalemusser/apollo/internal/app/system/timeouts"
	"github.com/dalemusser/apollo/internal/domain/models"
	"github.com/dalemusser/apollo/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig() AppConfig {
	return AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "apollo_test",
		TokenSecret:   strings.Repeat("k", 32),
		TokenIssuer:   "apollo",
		TokenTTL:      time.Hour,
		BaseURL:       "http://localhost:3000",
		AuditLogAuth:  "all",
		AuditLogAdmin: "off",
	}
}

func TestValidateAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", func(*AppConfig) {}, ""},
		{"empty audit means all", func(c *AppConfig) { c.AuditLogAuth = "" }, ""},
		{"short secret", func(c *AppConfig) { c.TokenSecret = "short" }, "token_secret"},
		{"zero ttl", func(c *AppConfig) { c.TokenTTL = 0 }, "token_ttl"},
		{"relative base url", func(c *AppConfig) { c.BaseURL = "/signup" }, "base_url"},
		{"ftp base url", func(c *AppConfig) { c.BaseURL = "ftp://example.com" }, "base_url"},
		{"bad audit mode", func(c *AppConfig) { c.AuditLogAdmin = "verbose" }, "audit_log_admin"},
		{"weak admin password", func(c *AppConfig) {
			c.AdminEmail = "admin@example.com"
			c.AdminPassword = "123"
		}, "admin_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := validateAppConfig(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateConfig_BadMongoURI(t *testing.T) {
	cfg := validConfig()
	cfg.MongoURI = "postgres://localhost"
	if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
		t.Fatal("expected invalid URI to be rejected")
	}
}

func TestStartup_ConfiguresTimeouts(t *testing.T) {
	defer timeouts.Reset()

	cfg := validConfig()
	cfg.TimeoutShort = 7 * time.Second
	if err := Startup(t.Context(), nil, cfg, DBDeps{}, testLogger()); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	got := timeouts.Current()
	want := timeouts.Config{
		Ping:   timeouts.DefaultPing,
		Short:  7 * time.Second,
		Medium: timeouts.DefaultMedium,
		Long:   timeouts.DefaultLong,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("timeouts (-want +got):\n%s", diff)
	}
}

func TestEnsureAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cfg := validConfig()
	cfg.AdminEmail = "admin@test.com"
	cfg.AdminName = "Admin"
	cfg.AdminPassword = "correct-horse"

	if err := ensureAdmin(ctx, DBDeps{MongoDatabase: db}, cfg, testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}

	u, err := userstore.New(db).GetByEmail(ctx, "admin@test.com")
	if err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}
	if !u.IsAdmin {
		t.Error("expected admin flag")
	}
	if diff := cmp.Diff(models.AllPermissions(), u.Permissions); diff != "" {
		t.Errorf("permissions (-want +got):\n%s", diff)
	}
	if err := auth.CheckPassword(u.PasswordHash, "correct-horse"); err != nil {
		t.Errorf("password not stored: %v", err)
	}
}

func TestEnsureAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	existing := fx.CreateUser(ctx, "Existing User", "existing@test.com")

	cfg := validConfig()
	cfg.AdminEmail = "EXISTING@test.com"
	cfg.AdminPassword = "ignored-for-existing"

	if err := ensureAdmin(ctx, DBDeps{MongoDatabase: db}, cfg, testLogger()); err != nil {
		t.Fatalf("ensureAdmin failed: %v", err)
	}
	// Running twice must not fail or duplicate.
	if err := ensureAdmin(ctx, DBDeps{MongoDatabase: db}, cfg, testLogger()); err != nil {
		t.Fatalf("second ensureAdmin failed: %v", err)
	}

	u, err := userstore.New(db).GetByID(ctx, existing.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !u.IsAdmin || len(u.Permissions) != len(models.AllPermissions()) {
		t.Errorf("user not promoted: admin=%v perms=%d", u.IsAdmin, len(u.Permissions))
	}
	if u.Name != "Existing User" {
		t.Errorf("profile changed: name=%q", u.Name)
	}
	if u.PasswordHash != "" {
		t.Error("existing account should keep its password")
	}

	n, err := db.Collection("users").CountDocuments(ctx, map[string]any{})
	if err != nil || n != 1 {
		t.Errorf("expected one user, got %d (%v)", n, err)
	}
}

func testRouter(t *testing.T, db *mongo.Database) http.Handler {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	cfg := validConfig()
	if err := EnsureSchema(ctx, nil, cfg, DBDeps{MongoClient: db.Client(), MongoDatabase: db}, testLogger()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return newRouter(routerDeps{
		client:  db.Client(),
		db:      db,
		tokens:  auth.NewTokenService([]byte(cfg.TokenSecret), cfg.TokenIssuer, cfg.TokenTTL),
		baseURL: cfg.BaseURL,
	}, testLogger())
}

func TestEnsureSchema_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureSchema(ctx, nil, validConfig(), DBDeps{MongoDatabase: db}, testLogger()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	names, err := db.ListCollectionNames(ctx, map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"users", "teams", "requests", "invitations", "password_resets", "audit_events"} {
		found := false
		for _, n := range names {
			found = found || n == want
		}
		if !found {
			t.Errorf("collection %q missing after EnsureSchema (have %v)", want, names)
		}
	}
}

type session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func bearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestRouter_SignupAndInvitedFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := testRouter(t, db)

	// First account signs up without an invite.
	rec := testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, "/auth/signup", map[string]string{
		"name": "Ana Souza", "email": "ana@example.com",
		"password": "senha-forte", "confirmPassword": "senha-forte",
	}))
	rec.AssertStatus(t, http.StatusCreated)
	var ana session
	rec.DecodeJSON(t, &ana)

	// Ana's invitation link is stable and points at the frontend signup page.
	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, bearer(httptest.NewRequest(http.MethodGet, "/invitation", nil), ana.Token))
	rec.AssertStatus(t, http.StatusOK)
	var link struct {
		Link  string `json:"link"`
		Token string `json:"token"`
	}
	rec.DecodeJSON(t, &link)
	u, err := url.Parse(link.Link)
	if err != nil || u.Path != "/signup" || u.Query().Get("invite") != link.Token {
		t.Fatalf("unexpected invitation link %q", link.Link)
	}

	// Bia signs up through the link.
	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, "/auth/signup", map[string]string{
		"name": "Bia Lima", "email": "bia@example.com",
		"password": "senha-forte", "confirmPassword": "senha-forte",
		"invite": link.Token,
	}))
	rec.AssertStatus(t, http.StatusCreated)

	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, bearer(httptest.NewRequest(http.MethodGet, "/user/invited", nil), ana.Token))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "bia@example.com")

	// Login returns a token that /user/info accepts.
	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"email": "BIA@example.com", "password": "senha-forte",
	}))
	rec.AssertStatus(t, http.StatusOK)
	var bia session
	rec.DecodeJSON(t, &bia)

	rec = testutil.NewRecorder()
	h.ServeHTTP(rec, bearer(httptest.NewRequest(http.MethodGet, "/user/info", nil), bia.Token))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"isProPlan":false`)
}

func TestRouter_AuthAndFallbacks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := testRouter(t, db)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"plans are public", http.MethodGet, "/plans", "", http.StatusOK},
		{"health is public", http.MethodGet, "/health", "", http.StatusOK},
		{"users need a token", http.MethodGet, "/user", "", http.StatusUnauthorized},
		{"garbage token is anonymous", http.MethodGet, "/team", "garbage", http.StatusUnauthorized},
		{"unknown path", http.MethodGet, "/nope", "", http.StatusNotFound},
		{"reset link lookup is public", http.MethodGet, "/auth/password-reset/unknown", "", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/plans", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				bearer(req, tt.token)
			}
			rec := testutil.NewRecorder()
			h.ServeHTTP(rec, req)
			rec.AssertStatus(t, tt.want)
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type: got %q", ct)
			}
		})
	}
}
