package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/credithub/internal/app/system/timeouts"
	"github.com/dalemusser/credithub/internal/domain/models"
	"github.com/dalemusser/credithub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureBootstrapAdmin_CreatesNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{CreditHubMongoDatabase: db}

	if err := ensureBootstrapAdmin(ctx, deps, "admin@test.com", testLogger()); err != nil {
		t.Fatalf("ensureBootstrapAdmin failed: %v", err)
	}

	var ident models.AuthIdentity
	if err := db.Collection("auth_identities").FindOne(ctx, bson.M{"email": "admin@test.com"}).Decode(&ident); err != nil {
		t.Fatalf("failed to find created identity: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": ident.UserID}).Decode(&user); err != nil {
		t.Fatalf("failed to find created user: %v", err)
	}
	if len(user.Committees) != 1 || user.Committees[0] != "admin" {
		t.Errorf("expected committees [admin], got %v", user.Committees)
	}
	if user.Status != "active" {
		t.Errorf("expected status 'active', got %q", user.Status)
	}
}

func TestEnsureBootstrapAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	existing := fixtures.CreateUser(ctx, "Existing User", "existing@test.com", false, "events")

	deps := DBDeps{CreditHubMongoDatabase: db}
	if err := ensureBootstrapAdmin(ctx, deps, "existing@test.com", testLogger()); err != nil {
		t.Fatalf("ensureBootstrapAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user); err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if len(user.Committees) != 2 || user.Committees[1] != "admin" {
		t.Errorf("expected committees [events admin], got %v", user.Committees)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}
}

func TestEnsureBootstrapAdmin_AlreadyAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	existing := fixtures.CreateAdmin(ctx, "Admin", "admin@test.com")

	deps := DBDeps{CreditHubMongoDatabase: db}
	if err := ensureBootstrapAdmin(ctx, deps, "admin@test.com", testLogger()); err != nil {
		t.Fatalf("ensureBootstrapAdmin failed: %v", err)
	}

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": existing.ID}).Decode(&user); err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if len(user.Committees) != 1 {
		t.Errorf("expected committees unchanged, got %v", user.Committees)
	}
}

func TestStartup_ConfiguresBatchTimeout(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	appCfg := AppConfig{TimeoutBatch: 90 * time.Second}
	if err := Startup(t.Context(), nil, appCfg, DBDeps{}, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}
	if got := timeouts.Batch(); got != 90*time.Second {
		t.Errorf("Batch() = %v, want 90s", got)
	}
}

func TestValidateAppConfig(t *testing.T) {
	valid := AppConfig{
		MongoDatabase:        "credithub",
		SessionKey:           "0123456789abcdef0123456789abcdef",
		SessionName:          "credithub-session",
		ImportMaxBytes:       1024,
		ImportMaxConcurrency: 4,
		TimeoutBatch:         time.Minute,
		AuditLogAuth:         "all",
		AuditLogAdmin:        "db",
	}

	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", "dev", func(*AppConfig) {}, false},
		{"dev key allowed in dev", "dev", func(c *AppConfig) { c.SessionKey = devSessionKey }, false},
		{"dev key rejected in prod", "prod", func(c *AppConfig) { c.SessionKey = devSessionKey }, true},
		{"short key", "dev", func(c *AppConfig) { c.SessionKey = "short" }, true},
		{"no database", "dev", func(c *AppConfig) { c.MongoDatabase = "" }, true},
		{"no session name", "dev", func(c *AppConfig) { c.SessionName = "" }, true},
		{"zero max bytes", "dev", func(c *AppConfig) { c.ImportMaxBytes = 0 }, true},
		{"zero concurrency", "dev", func(c *AppConfig) { c.ImportMaxConcurrency = 0 }, true},
		{"zero timeout", "dev", func(c *AppConfig) { c.TimeoutBatch = 0 }, true},
		{"bad audit setting", "dev", func(c *AppConfig) { c.AuditLogAdmin = "sometimes" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := validateAppConfig(tt.env, cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateAppConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
