package batchorder

import (
	"context"
	"net/http"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed access to the batch orders API.
type Repository struct {
	*resource.Repository[BatchOrder]
}

// NewRepository builds the batch orders repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[BatchOrder](resource.Descriptor{
		Name:     "batch_orders",
		Path:     "batch-orders/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{Repository: base}, nil
}

// Create registers a new batch order in draft state.
func (r *Repository) Create(ctx context.Context, payload WritePayload) (*BatchOrder, error) {
	return r.Repository.Create(ctx, payload)
}

// ConfirmPayment marks a pending batch order as paid by bank transfer
// and generates the seat vouchers server-side.
func (r *Repository) ConfirmPayment(ctx context.Context, id string) (*BatchOrder, error) {
	var out BatchOrder
	if err := r.Do(ctx, http.MethodPost, id+"/confirm-payment/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
