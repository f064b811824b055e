package order

import (
	"context"
	"net/http"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/pkg/response"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed access to the orders API. Orders are not
// created or edited from the back office, so the write surface is
// limited to the cancel and refund actions.
type Repository struct {
	base *resource.Repository[Order]
}

// NewRepository builds the orders repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[Order](resource.Descriptor{
		Name:     "orders",
		Path:     "orders/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{base: base}, nil
}

// List fetches one page of orders.
func (r *Repository) List(ctx context.Context, params resource.ListParams) (*response.Paginated[Order], error) {
	return r.base.List(ctx, params)
}

// GetByID fetches a single order.
func (r *Repository) GetByID(ctx context.Context, id string) (*Order, error) {
	return r.base.GetByID(ctx, id)
}

// Cancel voids a pending order. Seats booked on the related course run
// are released server-side.
func (r *Repository) Cancel(ctx context.Context, id string) (*Order, error) {
	var out Order
	if err := r.base.Do(ctx, http.MethodPost, id+"/cancel/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refund cancels a completed order and triggers the refund of its
// paid installments.
func (r *Repository) Refund(ctx context.Context, id string) (*Order, error) {
	var out Order
	if err := r.base.Do(ctx, http.MethodPost, id+"/refund/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
