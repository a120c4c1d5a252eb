package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/credithub/internal/app/system/validators"
	"github.com/dalemusser/credithub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db, nil); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}

	for _, expected := range []string{"users", "auth_identities", "credits", "audit_events"} {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func TestEnsureAll_CreditValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	credits := db.Collection("credits")
	now := time.Now().UTC()

	valid := bson.M{
		"credits":            5.0,
		"manual_explanation": "Approved by director",
		"type":               "event",
		"user_id":            primitive.NewObjectID(),
		"created_at":         now,
	}
	if _, err := credits.InsertOne(ctx, valid); err != nil {
		t.Fatalf("valid credit rejected: %v", err)
	}

	tests := []struct {
		name string
		doc  bson.M
	}{
		{"bad type", bson.M{"credits": 1.0, "manual_explanation": "text", "type": "bogus", "user_id": primitive.NewObjectID(), "created_at": now}},
		{"string credits", bson.M{"credits": "five", "manual_explanation": "text", "type": "event", "user_id": primitive.NewObjectID(), "created_at": now}},
		{"missing user", bson.M{"credits": 1.0, "manual_explanation": "text", "type": "other", "created_at": now}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := credits.InsertOne(ctx, tt.doc); err == nil {
				t.Error("expected insert to fail validation")
			}
		})
	}
}
