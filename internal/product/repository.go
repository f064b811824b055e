package product

import (
	"context"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed access to the products API.
type Repository struct {
	*resource.Repository[Product]
}

// NewRepository builds the products repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[Product](resource.Descriptor{
		Name:     "products",
		Path:     "products/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{Repository: base}, nil
}

// Create registers a new product.
func (r *Repository) Create(ctx context.Context, payload WritePayload) (*Product, error) {
	return r.Repository.Create(ctx, payload)
}

// Update patches an existing product.
func (r *Repository) Update(ctx context.Context, id string, payload WritePayload) (*Product, error) {
	return r.Repository.Update(ctx, id, payload)
}
