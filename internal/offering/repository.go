package offering

import (
	"context"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed access to the offerings API.
type Repository struct {
	*resource.Repository[Offering]
}

// NewRepository builds the offerings repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[Offering](resource.Descriptor{
		Name:     "offerings",
		Path:     "offerings/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{Repository: base}, nil
}

// Create binds a product to a course for a set of organizations.
func (r *Repository) Create(ctx context.Context, payload WritePayload) (*Offering, error) {
	return r.Repository.Create(ctx, payload)
}

// Update patches an existing offering.
func (r *Repository) Update(ctx context.Context, id string, payload WritePayload) (*Offering, error) {
	return r.Repository.Update(ctx, id, payload)
}
