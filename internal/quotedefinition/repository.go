package quotedefinition

import (
	"context"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed access to the quote definitions API.
type Repository struct {
	*resource.Repository[QuoteDefinition]
}

// NewRepository builds the quote definitions repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[QuoteDefinition](resource.Descriptor{
		Name:     "quote_definitions",
		Path:     "quote-definitions/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{Repository: base}, nil
}

// Create registers a new quote definition.
func (r *Repository) Create(ctx context.Context, payload WritePayload) (*QuoteDefinition, error) {
	return r.Repository.Create(ctx, payload)
}

// Update patches an existing quote definition.
func (r *Repository) Update(ctx context.Context, id string, payload WritePayload) (*QuoteDefinition, error) {
	return r.Repository.Update(ctx, id, payload)
}
