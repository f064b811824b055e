package course

import (
	"context"
	"net/http"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/pkg/attachment"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed access to the courses API.
type Repository struct {
	*resource.Repository[Course]
}

// NewRepository builds the courses repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[Course](resource.Descriptor{
		Name:     "courses",
		Path:     "courses/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{Repository: base}, nil
}

// Create registers a new course.
func (r *Repository) Create(ctx context.Context, payload WritePayload) (*Course, error) {
	return r.Repository.Create(ctx, payload)
}

// Update patches an existing course.
func (r *Repository) Update(ctx context.Context, id string, payload WritePayload) (*Course, error) {
	return r.Repository.Update(ctx, id, payload)
}

// UploadCover replaces the course's cover image with a local file.
func (r *Repository) UploadCover(ctx context.Context, id string, cover *attachment.Attachment) (*Course, error) {
	return r.Upload(ctx, http.MethodPatch, id+"/", nil, []apiclient.FilePart{cover.FilePart("cover")})
}
