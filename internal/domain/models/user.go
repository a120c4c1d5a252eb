// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that can receive credits or administer them.
//
// NOTE:
//   - The login email is not stored on User. It lives on the user's
//     AuthIdentity and is merged in by the user directory.
//   - Committees grant elevated permissions (e.g. "admin", "operations").
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	IsTutee    bool               `bson:"is_tutee" json:"is_tutee"`
	Committees []string           `bson:"committees,omitempty" json:"committees,omitempty"`
	Status     string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
