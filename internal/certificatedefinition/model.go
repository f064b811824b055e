// Package certificatedefinition gives typed access to the certificate
// definitions resource: the templates rendered when a learner earns a
// certificate.
package certificatedefinition

import (
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// ErrNotFound is returned when the API knows no certificate definition
// with the requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "certificate_definitions.not_found", "certificate definition not found")

// Rendering templates the API accepts.
const (
	TemplateCertificate = "certificate"
	TemplateDegree      = "degree"
)

// CertificateDefinition is the admin view of a certificate template.
type CertificateDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Template    string `json:"template"`
}

// WritePayload is the body sent on create and update.
type WritePayload struct {
	Name        string `json:"name" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Template    string `json:"template" validate:"required,oneof=certificate degree"`
}

// Filters narrows certificate definition lists.
type Filters struct {
	Template string
}

// Query converts the filters into the wire representation.
func (f Filters) Query() *queryfilter.Query {
	return queryfilter.New().Set("template", f.Template)
}
