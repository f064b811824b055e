package certificatedefinition

import (
	"context"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed access to the certificate definitions API.
type Repository struct {
	*resource.Repository[CertificateDefinition]
}

// NewRepository builds the certificate definitions repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[CertificateDefinition](resource.Descriptor{
		Name:     "certificate_definitions",
		Path:     "certificate-definitions/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{Repository: base}, nil
}

// Create registers a new certificate definition.
func (r *Repository) Create(ctx context.Context, payload WritePayload) (*CertificateDefinition, error) {
	return r.Repository.Create(ctx, payload)
}

// Update patches an existing certificate definition.
func (r *Repository) Update(ctx context.Context, id string, payload WritePayload) (*CertificateDefinition, error) {
	return r.Repository.Update(ctx, id, payload)
}
