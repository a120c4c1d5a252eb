package creditstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/credithub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	errBadType = errors.New(`type must be "event"|"tutoring"|"other"`)
	errNoUser  = errors.New("credit must reference a user")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("credits")}
}

// Create inserts a new credit. Each call is an independent insert; nothing
// is deduplicated against earlier calls.
func (s *Store) Create(ctx context.Context, c models.Credit) (models.Credit, error) {
	if !models.IsCreditType(c.Type) {
		return models.Credit{}, errBadType
	}
	if c.UserID.IsZero() {
		return models.Credit{}, errNoUser
	}

	c.ID = primitive.NewObjectID()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Credit{}, err
	}
	return c, nil
}

// ListByBatch returns the credits created by one import batch.
func (s *Store) ListByBatch(ctx context.Context, batch string) ([]models.Credit, error) {
	cur, err := s.c.Find(ctx, bson.M{"import_batch": batch})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Credit
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
