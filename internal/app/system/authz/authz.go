// internal/app/system/authz/authz.go
package authz

import (
	"strings"

	"github.com/dalemusser/credithub/internal/app/system/auth"
)

// Committee names that carry permissions in this app.
const (
	CommitteeAdmin      = "admin"
	CommitteeOperations = "operations"
)

// IsOnCommittee reports whether user belongs to the named committee.
// A nil user is on no committee. Names compare case-insensitively.
func IsOnCommittee(user *auth.SessionUser, name string) bool {
	if user == nil {
		return false
	}
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return false
	}
	for _, c := range user.Committees {
		if strings.ToLower(strings.TrimSpace(c)) == want {
			return true
		}
	}
	return false
}

// IsOnAnyCommittee reports whether user belongs to at least one of names.
func IsOnAnyCommittee(user *auth.SessionUser, names ...string) bool {
	for _, n := range names {
		if IsOnCommittee(user, n) {
			return true
		}
	}
	return false
}
