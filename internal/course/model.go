// Package course gives typed access to the courses resource.
package course

import (
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// ErrNotFound is returned when the API knows no course with the
// requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "courses.not_found", "course not found")

// Image is a stored file reference returned by the API.
type Image struct {
	Filename string `json:"filename"`
	Src      string `json:"src"`
	Size     int64  `json:"size,omitempty"`
}

// OrganizationRef is the nested summary of an organization carrying a
// course.
type OrganizationRef struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
}

// Course is the admin view of a course.
type Course struct {
	ID            string            `json:"id"`
	Code          string            `json:"code"`
	Title         string            `json:"title"`
	Effort        string            `json:"effort,omitempty"`
	Organizations []OrganizationRef `json:"organizations"`
	Cover         *Image            `json:"cover"`
}

// WritePayload is the body sent on create and update. The cover is
// uploaded separately as multipart data.
type WritePayload struct {
	Code            string   `json:"code" validate:"required"`
	Title           string   `json:"title" validate:"required"`
	Effort          string   `json:"effort,omitempty"`
	OrganizationIDs []string `json:"organization_ids" validate:"required,min=1"`
}

// Filters narrows course lists.
type Filters struct {
	OrganizationIDs []string
}

// Query converts the filters into the wire representation.
func (f Filters) Query() *queryfilter.Query {
	return queryfilter.New().Set("organization_ids", f.OrganizationIDs)
}
