package userstore_test

import (
	"testing"
	"time"

	userstore "github.com/dalemusser/credithub/internal/app/store/users"
	"github.com/dalemusser/credithub/internal/domain/models"
	"github.com/dalemusser/credithub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMergeEmails(t *testing.T) {
	a := models.User{ID: primitive.NewObjectID(), FullName: "A"}
	b := models.User{ID: primitive.NewObjectID(), FullName: "B"}
	c := models.User{ID: primitive.NewObjectID(), FullName: "C"}

	idents := []models.AuthIdentity{
		{UserID: b.ID, Email: "b@example.com"},
		{UserID: a.ID, Email: "a@example.com"},
		{UserID: a.ID, Email: "a-second@example.com"},
	}

	got := userstore.MergeEmails([]models.User{a, b, c}, idents)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}

	want := []struct{ name, email string }{
		{"A", "a@example.com"},
		{"B", "b@example.com"},
		{"C", ""},
	}
	for i, w := range want {
		if got[i].FullName != w.name || got[i].Email != w.email {
			t.Errorf("entry %d = (%q, %q), want (%q, %q)", i, got[i].FullName, got[i].Email, w.name, w.email)
		}
	}
}

func TestStore_LoadDirectory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	older := models.User{ID: primitive.NewObjectID(), FullName: "Older", CreatedAt: now.Add(-time.Hour)}
	newer := models.User{ID: primitive.NewObjectID(), FullName: "Newer", IsTutee: true, CreatedAt: now}
	for _, u := range []models.User{older, newer} {
		if _, err := db.Collection("users").InsertOne(ctx, u); err != nil {
			t.Fatalf("insert user: %v", err)
		}
	}
	fixtures := testutil.NewFixtures(t, db)
	fixtures.CreateIdentity(ctx, older.ID, "older@example.com")
	fixtures.CreateIdentity(ctx, newer.ID, "newer@example.com")

	dir, err := store.LoadDirectory(ctx)
	if err != nil {
		t.Fatalf("LoadDirectory failed: %v", err)
	}
	if len(dir) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(dir))
	}
	if dir[0].FullName != "Newer" || dir[1].FullName != "Older" {
		t.Errorf("expected newest first, got %q then %q", dir[0].FullName, dir[1].FullName)
	}
	if dir[0].Email != "newer@example.com" || !dir[0].IsTutee {
		t.Errorf("unexpected first entry: %+v", dir[0])
	}
}

func TestFetcher_FetchUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fixtures.CreateAdmin(ctx, "Admin Person", "admin@example.com")
	f := userstore.NewFetcher(db)

	su := f.FetchUser(ctx, admin.ID.Hex())
	if su == nil {
		t.Fatal("expected session user")
	}
	if su.Email != "admin@example.com" {
		t.Errorf("Email = %q, want admin@example.com", su.Email)
	}
	if len(su.Committees) != 1 || su.Committees[0] != "admin" {
		t.Errorf("Committees = %v, want [admin]", su.Committees)
	}

	if f.FetchUser(ctx, "not-an-id") != nil {
		t.Error("expected nil for malformed id")
	}
	if f.FetchUser(ctx, primitive.NewObjectID().Hex()) != nil {
		t.Error("expected nil for unknown user")
	}
}

func TestFetcher_DisabledUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fixtures.CreateAdmin(ctx, "Gone", "gone@example.com")
	if _, err := db.Collection("users").UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": bson.M{"status": "disabled"}}); err != nil {
		t.Fatalf("disable user: %v", err)
	}

	if userstore.NewFetcher(db).FetchUser(ctx, u.ID.Hex()) != nil {
		t.Error("expected nil for disabled user")
	}
}
