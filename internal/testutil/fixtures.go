package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/credithub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user and, when email is non-empty, its auth identity.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string, isTutee bool, committees ...string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		IsTutee:    isTutee,
		Committees: committees,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	if email != "" {
		f.CreateIdentity(ctx, user.ID, email)
	}
	return user
}

// CreateIdentity links email to userID in the auth_identities collection.
func (f *Fixtures) CreateIdentity(ctx context.Context, userID primitive.ObjectID, email string) models.AuthIdentity {
	f.t.Helper()

	ident := models.AuthIdentity{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Email:     email,
		Provider:  "password",
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("auth_identities").InsertOne(ctx, ident); err != nil {
		f.t.Fatalf("failed to create test identity: %v", err)
	}
	return ident
}

// CreateMember creates a regular (non-tutee) user.
func (f *Fixtures) CreateMember(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, false)
}

// CreateTutee creates a user flagged is_tutee.
func (f *Fixtures) CreateTutee(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, true)
}

// CreateAdmin creates a user on the admin committee.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, false, "admin")
}
