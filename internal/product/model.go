// Package product gives typed access to the products resource: the
// sellable offers (credentials, enrollments, certificates) built on
// top of courses.
package product

import (
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// ErrNotFound is returned when the API knows no product with the
// requested id.
var ErrNotFound = apperror.New(apperror.KindNotFound, "products.not_found", "product not found")

// Product types. A credential sells a course with a certificate, an
// enrollment sells access to a single course run, a certificate sells
// the certification of an existing enrollment.
const (
	TypeCredential  = "credential"
	TypeEnrollment  = "enrollment"
	TypeCertificate = "certificate"
)

// DefinitionRef is the nested summary of a certificate or contract
// definition attached to a product.
type DefinitionRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Product is the admin view of a sellable offer.
type Product struct {
	ID                    string         `json:"id"`
	Type                  string         `json:"type"`
	Title                 string         `json:"title"`
	Description           string         `json:"description,omitempty"`
	CallToAction          string         `json:"call_to_action"`
	Price                 float64        `json:"price"`
	PriceCurrency         string         `json:"price_currency"`
	Instructions          string         `json:"instructions,omitempty"`
	CertificateDefinition *DefinitionRef `json:"certificate_definition"`
	ContractDefinition    *DefinitionRef `json:"contract_definition"`
}

// WritePayload is the body sent on create and update.
type WritePayload struct {
	Type                    string   `json:"type" validate:"required,oneof=credential enrollment certificate"`
	Title                   string   `json:"title" validate:"required"`
	Description             string   `json:"description,omitempty"`
	CallToAction            string   `json:"call_to_action" validate:"required"`
	Price                   *float64 `json:"price" validate:"required,gte=0"`
	PriceCurrency           string   `json:"price_currency" validate:"required,len=3"`
	Instructions            string   `json:"instructions,omitempty"`
	CertificateDefinitionID string   `json:"certificate_definition_id,omitempty"`
	ContractDefinitionID    string   `json:"contract_definition_id,omitempty"`
}

// Filters narrows product lists.
type Filters struct {
	Type string
}

// Query converts the filters into the wire representation.
func (f Filters) Query() *queryfilter.Query {
	return queryfilter.New().Set("type", f.Type)
}
