package courserun

import (
	"context"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/resource"
)

// Repository gives typed access to the course runs API.
type Repository struct {
	*resource.Repository[CourseRun]
}

// NewRepository builds the course runs repository.
func NewRepository(client *apiclient.Client, cache *querycache.Cache, options ...resource.RepositoryOption) (*Repository, error) {
	base, err := resource.NewRepository[CourseRun](resource.Descriptor{
		Name:     "course_runs",
		Path:     "course-runs/",
		NotFound: ErrNotFound,
	}, client, cache, options...)
	if err != nil {
		return nil, err
	}
	return &Repository{Repository: base}, nil
}

// Create schedules a new course run.
func (r *Repository) Create(ctx context.Context, payload WritePayload) (*CourseRun, error) {
	return r.Repository.Create(ctx, payload)
}

// Update patches an existing course run.
func (r *Repository) Update(ctx context.Context, id string, payload WritePayload) (*CourseRun, error) {
	return r.Repository.Update(ctx, id, payload)
}
