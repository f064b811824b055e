package user

import (
	"context"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/pkg/response"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed read-only access to the users API.
type Repository struct {
	base *resource.Repository[User]
}

// NewRepository builds the users repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[User](resource.Descriptor{
		Name:     "users",
		Path:     "users/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{base: base}, nil
}

// List searches accounts, typically by username or email fragment.
func (r *Repository) List(ctx context.Context, params resource.ListParams) (*response.Paginated[User], error) {
	return r.base.List(ctx, params)
}

// GetByID fetches a single account.
func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.base.GetByID(ctx, id)
}
