package organization

import (
	"context"
	"net/http"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/pkg/attachment"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed access to the organizations API.
type Repository struct {
	*resource.Repository[Organization]
}

// NewRepository builds the organizations repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[Organization](resource.Descriptor{
		Name:     "organizations",
		Path:     "organizations/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{Repository: base}, nil
}

// Create registers a new organization.
func (r *Repository) Create(ctx context.Context, payload WritePayload) (*Organization, error) {
	return r.Repository.Create(ctx, payload)
}

// Update patches an existing organization.
func (r *Repository) Update(ctx context.Context, id string, payload WritePayload) (*Organization, error) {
	return r.Repository.Update(ctx, id, payload)
}

// UploadLogo replaces the organization's logo with a local file.
func (r *Repository) UploadLogo(ctx context.Context, id string, logo *attachment.Attachment) (*Organization, error) {
	return r.Upload(ctx, http.MethodPatch, id+"/", nil, []apiclient.FilePart{logo.FilePart("logo")})
}
