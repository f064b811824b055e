package discount

import (
	"context"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed access to the discounts API.
type Repository struct {
	*resource.Repository[Discount]
}

// NewRepository builds the discounts repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[Discount](resource.Descriptor{
		Name:     "discounts",
		Path:     "discounts/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{Repository: base}, nil
}

// Create registers a new discount.
func (r *Repository) Create(ctx context.Context, payload WritePayload) (*Discount, error) {
	return r.Repository.Create(ctx, payload)
}

// Update patches an existing discount.
func (r *Repository) Update(ctx context.Context, id string, payload WritePayload) (*Discount, error) {
	return r.Repository.Update(ctx, id, payload)
}
