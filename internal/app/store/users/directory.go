package userstore

import (
	"context"
	"fmt"

	"github.com/dalemusser/credithub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DirectoryEntry is a user joined with the email its auth identity carries.
type DirectoryEntry struct {
	models.User
	Email string
}

// LoadDirectory fetches all users (newest first) and all auth identities and
// merges them. It always reads fresh from the database.
func (s *Store) LoadDirectory(ctx context.Context) ([]DirectoryEntry, error) {
	users, err := s.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	idents, err := s.ListIdentities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list auth identities: %w", err)
	}
	return MergeEmails(users, idents), nil
}

// MergeEmails joins each user with its identity's email, keeping the order of
// users. A user without an identity gets an empty email. When a user has
// several identities the first one seen wins.
func MergeEmails(users []models.User, idents []models.AuthIdentity) []DirectoryEntry {
	byUser := make(map[primitive.ObjectID]string, len(idents))
	for _, id := range idents {
		if _, seen := byUser[id.UserID]; !seen {
			byUser[id.UserID] = id.Email
		}
	}

	out := make([]DirectoryEntry, 0, len(users))
	for _, u := range users {
		out = append(out, DirectoryEntry{User: u, Email: byUser[u.ID]})
	}
	return out
}
