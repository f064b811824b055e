// Package resource implements the typed access layer shared by every
// admin entity: list, retrieve, create, update and delete against the
// API with response caching, payload validation and localized error
// mapping. Entity packages declare a Descriptor and wrap a Repository
// with their concrete types.
package resource

import (
	"fmt"
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	frtrans "github.com/go-playground/validator/v10/translations/fr"

	"github.com/openfun/joanie-sub003/internal/i18n"
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
)

// Descriptor identifies one API resource. Name prefixes cache keys and
// message ids ("organizations" resolves "organizations.fetch_error"),
// Path is the route under the API root and keeps its trailing slash.
type Descriptor struct {
	Name     string
	Path     string
	NotFound *apperror.AppError
}

// MessageID derives a catalog message id for this resource.
func (d Descriptor) MessageID(event string) string {
	return d.Name + "." + event
}

func (d Descriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("descriptor needs a name")
	}
	if !strings.HasSuffix(d.Path, "/") {
		return fmt.Errorf("descriptor path %q must end with /", d.Path)
	}
	return nil
}

// NewValidator builds the payload validator with field names taken
// from json tags and messages registered for the catalog's locales.
func NewValidator(catalog *i18n.Catalog) (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registrations := []struct {
		locale   string
		register func(*validator.Validate, ut.Translator) error
	}{
		{"en", entrans.RegisterDefaultTranslations},
		{"fr", frtrans.RegisterDefaultTranslations},
	}
	for _, r := range registrations {
		if err := r.register(v, catalog.Translator(r.locale).Universal()); err != nil {
			return nil, fmt.Errorf("register %s validation messages: %w", r.locale, err)
		}
	}
	return v, nil
}
