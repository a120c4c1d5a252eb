package userstore

import (
	"context"

	"github.com/dalemusser/credithub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	users      *mongo.Collection
	identities *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		users:      db.Collection("users"),
		identities: db.Collection("auth_identities"),
	}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListNewestFirst returns every user sorted by creation time, newest first.
func (s *Store) ListNewestFirst(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListIdentities returns every auth identity.
func (s *Store) ListIdentities(ctx context.Context) ([]models.AuthIdentity, error) {
	cur, err := s.identities.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.AuthIdentity
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EmailFor returns the auth email for userID, or "" when it has none.
func (s *Store) EmailFor(ctx context.Context, userID primitive.ObjectID) (string, error) {
	var ident models.AuthIdentity
	proj := options.FindOne().SetProjection(bson.M{"email": 1})
	err := s.identities.FindOne(ctx, bson.M{"user_id": userID}, proj).Decode(&ident)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return ident.Email, nil
}
