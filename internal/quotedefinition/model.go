// Package quotedefinition gives typed access to the quote definitions
// resource: the templates used to issue quotes for batch orders.
package quotedefinition

import (
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// ErrNotFound is returned when the API knows no quote definition with
// the requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "quote_definitions.not_found", "quote definition not found")

// QuoteDefinition is the admin view of a quote template.
type QuoteDefinition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Body        string `json:"body,omitempty"`
	Language    string `json:"language"`
}

// WritePayload is the body sent on create and update.
type WritePayload struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Body        string `json:"body,omitempty"`
	Language    string `json:"language" validate:"required"`
}

// Filters narrows quote definition lists.
type Filters struct {
	Language string
}

// Query converts the filters into the wire representation.
func (f Filters) Query() *queryfilter.Query {
	return queryfilter.New().Set("language", f.Language)
}
