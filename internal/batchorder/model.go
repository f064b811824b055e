// Package batchorder gives typed access to the batch orders resource:
// a company buying a block of seats on one offering for its employees.
package batchorder

import (
	"time"

	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// ErrNotFound is returned when the API knows no batch order with the
// requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "batch_orders.not_found", "batch order not found")

// Batch order lifecycle states surfaced by the API.
const (
	StateDraft     = "draft"
	StateQuoted    = "quoted"
	StatePending   = "pending"
	StateCompleted = "completed"
	StateCanceled  = "canceled"
)

// OwnerRef is the nested summary of the company contact.
type OwnerRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// OfferingRef is the nested summary of the purchased offering.
type OfferingRef struct {
	ID           string `json:"id"`
	CourseCode   string `json:"course_code"`
	ProductTitle string `json:"product_title"`
}

// BatchOrder is the admin view of a company seat purchase.
type BatchOrder struct {
	ID                   string      `json:"id"`
	State                string      `json:"state"`
	Owner                OwnerRef    `json:"owner"`
	Offering             OfferingRef `json:"offering"`
	CompanyName          string      `json:"company_name"`
	IdentificationNumber string      `json:"identification_number"`
	NbSeats              int         `json:"nb_seats"`
	Total                float64     `json:"total"`
	Currency             string      `json:"total_currency"`
	CreatedOn            time.Time   `json:"created_on"`
}

// WritePayload is the body sent on create.
type WritePayload struct {
	OwnerID              string `json:"owner_id" validate:"required"`
	OfferingID           string `json:"offering_id" validate:"required"`
	CompanyName          string `json:"company_name" validate:"required"`
	IdentificationNumber string `json:"identification_number" validate:"required"`
	NbSeats              int    `json:"nb_seats" validate:"required,gt=0"`
}

// Filters narrows batch order lists.
type Filters struct {
	States          []string
	OrganizationIDs []string
}

// Query converts the filters into the wire representation.
func (f Filters) Query() *queryfilter.Query {
	return queryfilter.New().
		Set("state", f.States).
		Set("organization_ids", f.OrganizationIDs)
}
