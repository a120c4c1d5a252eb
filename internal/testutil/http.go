package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/dalemusser/credithub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUser returns a session user on the admin committee.
func AdminUser() *auth.SessionUser {
	return &auth.SessionUser{
		ID:         primitive.NewObjectID().Hex(),
		Name:       "Test Admin",
		Email:      "admin@test.com",
		Committees: []string{"admin"},
	}
}

// OperationsUser returns a session user on the operations committee.
func OperationsUser() *auth.SessionUser {
	return &auth.SessionUser{
		ID:         primitive.NewObjectID().Hex(),
		Name:       "Test Operations",
		Email:      "ops@test.com",
		Committees: []string{"operations"},
	}
}

// PlainUser returns a signed-in session user on no committee.
func PlainUser() *auth.SessionUser {
	return &auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test User",
		Email: "user@test.com",
	}
}

// NewFormRequest builds a urlencoded POST request carrying form.
func NewFormRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// WithUser adds a user to the request context, bypassing the session middleware.
// A nil user leaves the request anonymous.
func WithUser(r *http.Request, u *auth.SessionUser) *http.Request {
	if u == nil {
		return r
	}
	return auth.WithTestUser(r, u)
}
