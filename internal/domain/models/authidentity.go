// internal/domain/models/authidentity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthIdentity links a user to the email address the auth provider knows them by.
type AuthIdentity struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Email     string             `bson:"email" json:"email"`
	Provider  string             `bson:"provider,omitempty" json:"provider,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
