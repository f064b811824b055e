// Package order gives typed access to the orders resource. Orders are
// created by learners on the storefront; the back office only reads,
// cancels and refunds them.
package order

import (
	"time"

	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// ErrNotFound is returned when the API knows no order with the
// requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "orders.not_found", "order not found")

// Order lifecycle states surfaced by the API.
const (
	StateDraft     = "draft"
	StatePending   = "pending"
	StateCompleted = "completed"
	StateCanceled  = "canceled"
	StateRefunded  = "refunded"
)

// OwnerRef is the nested summary of the learner who placed the order.
type OwnerRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email"`
}

// ProductRef is the nested summary of the ordered product.
type ProductRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// OrganizationRef is the nested summary of the selling organization.
type OrganizationRef struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
}

// Order is the admin view of a learner order.
type Order struct {
	ID           string           `json:"id"`
	State        string           `json:"state"`
	Owner        OwnerRef         `json:"owner"`
	Product      ProductRef       `json:"product"`
	Organization *OrganizationRef `json:"organization"`
	Total        float64          `json:"total"`
	Currency     string           `json:"total_currency"`
	CreatedOn    time.Time        `json:"created_on"`
}

// Filters narrows order lists.
type Filters struct {
	States          []string
	ProductIDs      []string
	OrganizationIDs []string
	OwnerIDs        []string
}

// Query converts the filters into the wire representation.
func (f Filters) Query() *queryfilter.Query {
	return queryfilter.New().
		Set("state", f.States).
		Set("product_ids", f.ProductIDs).
		Set("organization_ids", f.OrganizationIDs).
		Set("owner_ids", f.OwnerIDs)
}
