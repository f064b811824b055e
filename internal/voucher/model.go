// Package voucher gives typed access to the vouchers resource: the
// redeemable codes applying a discount at checkout.
package voucher

import (
	"time"

	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// ErrNotFound is returned when the API knows no voucher with the
// requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "vouchers.not_found", "voucher not found")

// DiscountRef is the nested summary of the applied discount.
type DiscountRef struct {
	ID     string   `json:"id"`
	Amount *float64 `json:"amount"`
	Rate   *float64 `json:"rate"`
}

// Voucher is the admin view of a discount code.
type Voucher struct {
	ID            string      `json:"id"`
	Code          string      `json:"code"`
	Discount      DiscountRef `json:"discount"`
	MultipleUse   bool        `json:"multiple_use"`
	MultipleUsers bool        `json:"multiple_users"`
	OrdersCount   int         `json:"orders_count"`
	CreatedOn     time.Time   `json:"created_on"`
}

// WritePayload is the body sent on create and update. An empty Code
// lets the server generate one.
type WritePayload struct {
	Code          string `json:"code,omitempty"`
	DiscountID    string `json:"discount_id" validate:"required"`
	MultipleUse   bool   `json:"multiple_use"`
	MultipleUsers bool   `json:"multiple_users"`
}

// Filters narrows voucher lists.
type Filters struct {
	DiscountIDs []string
}

// Query converts the filters into the wire representation.
func (f Filters) Query() *queryfilter.Query {
	return queryfilter.New().Set("discount_ids", f.DiscountIDs)
}
