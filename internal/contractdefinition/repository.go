package contractdefinition

import (
	"context"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed access to the contract definitions API.
type Repository struct {
	*resource.Repository[ContractDefinition]
}

// NewRepository builds the contract definitions repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[ContractDefinition](resource.Descriptor{
		Name:     "contract_definitions",
		Path:     "contract-definitions/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{Repository: base}, nil
}

// Create registers a new contract definition.
func (r *Repository) Create(ctx context.Context, payload WritePayload) (*ContractDefinition, error) {
	return r.Repository.Create(ctx, payload)
}

// Update patches an existing contract definition.
func (r *Repository) Update(ctx context.Context, id string, payload WritePayload) (*ContractDefinition, error) {
	return r.Repository.Update(ctx, id, payload)
}
