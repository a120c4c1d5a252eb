// internal/domain/models/credit.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Credit type tags.
const (
	CreditTypeEvent    = "event"
	CreditTypeTutoring = "tutoring"
	CreditTypeOther    = "other"
)

// CreditTypes lists every accepted credit type tag.
var CreditTypes = []string{CreditTypeEvent, CreditTypeTutoring, CreditTypeOther}

// IsCreditType reports whether s is exactly one of the accepted tags.
func IsCreditType(s string) bool {
	for _, t := range CreditTypes {
		if s == t {
			return true
		}
	}
	return false
}

// Credit is an award of credits to a user.
type Credit struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Credits           float64            `bson:"credits" json:"credits"`
	ManualExplanation string             `bson:"manual_explanation" json:"manual_explanation"`
	Type              string             `bson:"type" json:"type"` // event | tutoring | other
	UserID            primitive.ObjectID `bson:"user_id" json:"user_id"`
	ImportBatch       string             `bson:"import_batch,omitempty" json:"import_batch,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
