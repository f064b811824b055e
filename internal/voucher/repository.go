package voucher

import (
	"context"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed access to the vouchers API.
type Repository struct {
	*resource.Repository[Voucher]
}

// NewRepository builds the vouchers repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[Voucher](resource.Descriptor{
		Name:     "vouchers",
		Path:     "vouchers/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{Repository: base}, nil
}

// Create registers a new voucher.
func (r *Repository) Create(ctx context.Context, payload WritePayload) (*Voucher, error) {
	return r.Repository.Create(ctx, payload)
}

// Update patches an existing voucher.
func (r *Repository) Update(ctx context.Context, id string, payload WritePayload) (*Voucher, error) {
	return r.Repository.Update(ctx, id, payload)
}
