// Package contractdefinition gives typed access to the contract
// definitions resource: the training agreement templates signed by
// learners and organizations.
package contractdefinition

import (
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// ErrNotFound is returned when the API knows no contract definition
// with the requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "contract_definitions.not_found", "contract definition not found")

// ContractDefinition is the admin view of a contract template. Body
// and Appendix hold Markdown rendered into the final document.
type ContractDefinition struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Body        string `json:"body,omitempty"`
	Appendix    string `json:"appendix,omitempty"`
	Language    string `json:"language"`
	Name        string `json:"name"`
}

// WritePayload is the body sent on create and update.
type WritePayload struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Body        string `json:"body,omitempty"`
	Appendix    string `json:"appendix,omitempty"`
	Language    string `json:"language" validate:"required"`
	Name        string `json:"name" validate:"required"`
}

// Filters narrows contract definition lists.
type Filters struct {
	Language string
}

// Query converts the filters into the wire representation.
func (f Filters) Query() *queryfilter.Query {
	return queryfilter.New().Set("language", f.Language)
}
