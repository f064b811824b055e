// Package organization gives typed access to the organizations
// resource: the institutions selling products through the platform.
package organization

import (
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// ErrNotFound is returned when the API knows no organization with the
// requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "organizations.not_found", "organization not found")

// Image is a stored file reference returned by the API.
type Image struct {
	Filename string `json:"filename"`
	Src      string `json:"src"`
	Size     int64  `json:"size,omitempty"`
}

// Organization is the admin view of an institution.
type Organization struct {
	ID                   string `json:"id"`
	Code                 string `json:"code"`
	Title                string `json:"title"`
	Representative       string `json:"representative"`
	EnterpriseCode       string `json:"enterprise_code"`
	ActivityCategoryCode string `json:"activity_category_code"`
	ContactEmail         string `json:"contact_email"`
	ContactPhone         string `json:"contact_phone"`
	DPOEmail             string `json:"dpo_email"`
	Country              string `json:"country"`
	Logo                 *Image `json:"logo"`
}

// WritePayload is the body sent on create and update. The logo is
// uploaded separately as multipart data.
type WritePayload struct {
	Code                 string `json:"code" validate:"required"`
	Title                string `json:"title" validate:"required"`
	Representative       string `json:"representative,omitempty"`
	EnterpriseCode       string `json:"enterprise_code,omitempty"`
	ActivityCategoryCode string `json:"activity_category_code,omitempty"`
	ContactEmail         string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone         string `json:"contact_phone,omitempty"`
	DPOEmail             string `json:"dpo_email,omitempty" validate:"omitempty,email"`
	Country              string `json:"country,omitempty" validate:"omitempty,len=2"`
}

// Filters narrows organization lists.
type Filters struct {
	// Country is an ISO 3166-1 alpha-2 code.
	Country string
}

// Query converts the filters into the wire representation. Unset
// fields are dropped by sanitization downstream.
func (f Filters) Query() *queryfilter.Query {
	return queryfilter.New().Set("country", f.Country)
}
