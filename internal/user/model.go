// Package user gives typed read access to platform accounts, used by
// the owner and member pickers. Accounts are created by the auth
// backend, never from the back office, so no write surface exists.
package user

import (
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// ErrNotFound is returned when the API knows no user with the
// requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "users.not_found", "user not found")

// User is the admin view of a platform account.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name,omitempty"`
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// Filters narrows user lists.
type Filters struct {
	IsStaff *bool
}

// Query converts the filters into the wire representation.
func (f Filters) Query() *queryfilter.Query {
	q := queryfilter.New()
	if f.IsStaff != nil {
		if *f.IsStaff {
			q.Set("is_staff", "true")
		} else {
			q.Set("is_staff", "false")
		}
	}
	return q
}
