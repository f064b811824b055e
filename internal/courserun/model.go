// Package courserun gives typed access to the course runs resource:
// the scheduled sessions of a course on the LMS.
package courserun

import (
	"strconv"
	"time"

	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// ErrNotFound is returned when the API knows no course run with the
// requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "course_runs.not_found", "course run not found")

// CourseRef is the nested summary of the parent course.
type CourseRef struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
}

// State is the computed lifecycle state of a run: the priority drives
// call-to-action ordering on the catalog, the text is human readable.
type State struct {
	Priority     int        `json:"priority"`
	Text         string     `json:"text"`
	CallToAction *string    `json:"call_to_action"`
	Datetime     *time.Time `json:"datetime"`
}

// CourseRun is the admin view of a course session.
type CourseRun struct {
	ID              string     `json:"id"`
	ResourceLink    string     `json:"resource_link"`
	Title           string     `json:"title"`
	Course          CourseRef  `json:"course"`
	Start           *time.Time `json:"start"`
	End             *time.Time `json:"end"`
	EnrollmentStart *time.Time `json:"enrollment_start"`
	EnrollmentEnd   *time.Time `json:"enrollment_end"`
	Languages       []string   `json:"languages"`
	IsGradable      bool       `json:"is_gradable"`
	IsListed        bool       `json:"is_listed"`
	State           State      `json:"state"`
}

// WritePayload is the body sent on create and update.
type WritePayload struct {
	CourseID        string     `json:"course_id" validate:"required"`
	ResourceLink    string     `json:"resource_link" validate:"required,url"`
	Title           string     `json:"title" validate:"required"`
	Start           *time.Time `json:"start,omitempty"`
	End             *time.Time `json:"end,omitempty"`
	EnrollmentStart *time.Time `json:"enrollment_start,omitempty"`
	EnrollmentEnd   *time.Time `json:"enrollment_end,omitempty"`
	Languages       []string   `json:"languages" validate:"required,min=1"`
	IsGradable      bool       `json:"is_gradable"`
	IsListed        bool       `json:"is_listed"`
}

// Filters narrows course run lists. The booleans are pointers so that
// an explicit false still filters, unlike an unset field.
type Filters struct {
	CourseIDs  []string
	IsGradable *bool
	IsListed   *bool
}

// Query converts the filters into the wire representation.
func (f Filters) Query() *queryfilter.Query {
	q := queryfilter.New().Set("course_ids", f.CourseIDs)
	if f.IsGradable != nil {
		q.Set("is_gradable", strconv.FormatBool(*f.IsGradable))
	}
	if f.IsListed != nil {
		q.Set("is_listed", strconv.FormatBool(*f.IsListed))
	}
	return q
}
