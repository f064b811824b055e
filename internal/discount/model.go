// Package discount gives typed access to the discounts resource. A
// discount is either a fixed amount or a rate, never both.
package discount

import (
	"fmt"

	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
)

// ErrNotFound is returned when the API knows no discount with the
// requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "discounts.not_found", "discount not found")

// Discount is the admin view of a price reduction.
type Discount struct {
	ID     string   `json:"id"`
	Amount *float64 `json:"amount"`
	Rate   *float64 `json:"rate"`
	IsUsed int      `json:"is_used"`
}

// Label renders the discount the way voucher forms display it:
// "-10.00 €" for amounts, "-25%" for rates.
func (d Discount) Label() string {
	if d.Rate != nil {
		return fmt.Sprintf("-%d%%", int(*d.Rate*100))
	}
	if d.Amount != nil {
		return fmt.Sprintf("-%.2f €", *d.Amount)
	}
	return ""
}

// WritePayload is the body sent on create and update. Exactly one of
// Amount and Rate must be set; Rate is a fraction between 0 and 1.
type WritePayload struct {
	Amount *float64 `json:"amount,omitempty" validate:"required_without=Rate,excluded_with=Rate,omitempty,gt=0"`
	Rate   *float64 `json:"rate,omitempty" validate:"excluded_with=Amount,omitempty,gt=0,lte=1"`
}
