// Package offering gives typed access to the offerings resource: the
// relation binding a product to a course and the organizations allowed
// to sell it.
package offering

import (
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// ErrNotFound is returned when the API knows no offering with the
// requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "offerings.not_found", "offering not found")

// CourseRef is the nested summary of the offered course.
type CourseRef struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
}

// ProductRef is the nested summary of the offered product.
type ProductRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// OrganizationRef is the nested summary of a selling organization.
type OrganizationRef struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
}

// Offering is the admin view of a course-product relation.
type Offering struct {
	ID            string            `json:"id"`
	Course        CourseRef         `json:"course"`
	Product       ProductRef        `json:"product"`
	Organizations []OrganizationRef `json:"organizations"`
	URI           string            `json:"uri,omitempty"`
	CanEdit       bool              `json:"can_edit"`
}

// WritePayload is the body sent on create and update.
type WritePayload struct {
	CourseID        string   `json:"course_id" validate:"required"`
	ProductID       string   `json:"product_id" validate:"required"`
	OrganizationIDs []string `json:"organization_ids" validate:"required,min=1"`
}

// Filters narrows offering lists.
type Filters struct {
	CourseIDs  []string
	ProductIDs []string
}

// Query converts the filters into the wire representation.
func (f Filters) Query() *queryfilter.Query {
	return queryfilter.New().
		Set("course_ids", f.CourseIDs).
		Set("product_ids", f.ProductIDs)
}
