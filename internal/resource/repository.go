package resource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
	"github.com/openfun/joanie-sub003/internal/pkg/response"
	"github.com/openfun/joanie-sub003/internal/querycache"
)

// ListParams carries the listing state for one page request. Page is
// zero-based; the API counts from one. Query holds the active filters
// and is sanitized before encoding, so callers can pass form state
// directly.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Query    *queryfilter.Query
	Language string
}

// Repository gives typed access to one API resource.
type Repository[T any] struct {
	desc     Descriptor
	client   *apiclient.Client
	cache    *querycache.Cache
	validate *validator.Validate
	trans    ut.Translator
	logger   *zap.Logger
	pageSize int
}

// RepositoryOption configures a repository independently of its type
// parameter.
type RepositoryOption func(*repositoryConfig)

type repositoryConfig struct {
	logger   *zap.Logger
	validate *validator.Validate
	trans    ut.Translator
	pageSize int
}

// WithLogger sets a custom logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) RepositoryOption {
	return func(cfg *repositoryConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithValidator enables payload validation before mutations. trans
// resolves the per-field messages.
func WithValidator(validate *validator.Validate, trans ut.Translator) RepositoryOption {
	return func(cfg *repositoryConfig) {
		cfg.validate = validate
		cfg.trans = trans
	}
}

// WithPageSize sets the page size used when ListParams does not name one.
func WithPageSize(pageSize int) RepositoryOption {
	return func(cfg *repositoryConfig) {
		if pageSize > 0 {
			cfg.pageSize = pageSize
		}
	}
}

// NewRepository builds the typed repository for one resource.
func NewRepository[T any](desc Descriptor, client *apiclient.Client, cache *querycache.Cache, options ...RepositoryOption) (*Repository[T], error) {
	if err := desc.validate(); err != nil {
		return nil, err
	}
	cfg := repositoryConfig{
		logger:   zap.NewNop(),
		pageSize: 20,
	}
	for _, option := range options {
		option(&cfg)
	}
	return &Repository[T]{
		desc:     desc,
		client:   client,
		cache:    cache,
		validate: cfg.validate,
		trans:    cfg.trans,
		logger:   cfg.logger.Named(desc.Name),
		pageSize: cfg.pageSize,
	}, nil
}

// Name returns the resource name.
func (r *Repository[T]) Name() string {
	return r.desc.Name
}

// List fetches one page of resources. Filters are sanitized, the
// search term and pagination are appended, and the response envelope
// is cached per language, filter set and page.
func (r *Repository[T]) List(ctx context.Context, params ListParams) (*response.Paginated[T], error) {
	values := queryfilter.Sanitize(params.Query).Encode()
	if params.Search != "" {
		values.Set("search", params.Search)
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = r.pageSize
	}
	values.Set("page", strconv.Itoa(params.Page+1))
	values.Set("page_size", strconv.Itoa(pageSize))

	language := params.Language
	if language == "" {
		language = r.client.Language()
	}

	key := fmt.Sprintf("%s:list:%s:%s", r.desc.Name, language, values.Encode())
	page, err := querycache.Typed(ctx, r.cache, key, func(ctx context.Context) (*response.Paginated[T], error) {
		var envelope response.Paginated[T]
		if err := r.client.Get(ctx, r.desc.Path, values, &envelope, apiclient.WithLanguage(language)); err != nil {
			return nil, err
		}
		if envelope.Results == nil {
			envelope.Results = []T{}
		}
		return &envelope, nil
	})
	if err != nil {
		r.logger.Warn("list failed", zap.Error(err))
		return nil, r.mapError(err, "fetch_error")
	}
	return page, nil
}

// GetByID fetches a single resource by id, cached per language.
func (r *Repository[T]) GetByID(ctx context.Context, id string, opts ...apiclient.CallOption) (*T, error) {
	if id == "" {
		return nil, r.notFound()
	}

	language := r.client.Language()
	key := fmt.Sprintf("%s:detail:%s:%s", r.desc.Name, language, id)
	value, err := querycache.Typed(ctx, r.cache, key, func(ctx context.Context) (*T, error) {
		var out T
		if err := r.client.Get(ctx, r.desc.Path+id+"/", nil, &out, opts...); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, r.mapError(err, "fetch_error")
	}
	return value, nil
}

// Create posts a new resource and flushes the cached pages.
func (r *Repository[T]) Create(ctx context.Context, payload any, opts ...apiclient.CallOption) (*T, error) {
	if err := r.validatePayload(payload); err != nil {
		return nil, err
	}

	var out T
	if err := r.client.Post(ctx, r.desc.Path, payload, &out, opts...); err != nil {
		return nil, r.mapError(err, "create_error")
	}
	r.invalidate()
	return &out, nil
}

// Update patches an existing resource and flushes the cached pages.
func (r *Repository[T]) Update(ctx context.Context, id string, payload any, opts ...apiclient.CallOption) (*T, error) {
	if err := r.validatePayload(payload); err != nil {
		return nil, err
	}

	var out T
	if err := r.client.Patch(ctx, r.desc.Path+id+"/", payload, &out, opts...); err != nil {
		return nil, r.mapError(err, "update_error")
	}
	r.invalidate()
	return &out, nil
}

// Delete removes a resource and flushes the cached pages.
func (r *Repository[T]) Delete(ctx context.Context, id string, opts ...apiclient.CallOption) error {
	if err := r.client.Delete(ctx, r.desc.Path+id+"/", opts...); err != nil {
		return r.mapError(err, "delete_error")
	}
	r.invalidate()
	return nil
}

// Do runs a custom action on the resource, e.g. POST orders/{id}/refund/.
// subpath is relative to the resource route. The cache is flushed since
// actions change server state.
func (r *Repository[T]) Do(ctx context.Context, method, subpath string, body, out any, opts ...apiclient.CallOption) error {
	var err error
	switch method {
	case http.MethodPost:
		err = r.client.Post(ctx, r.desc.Path+subpath, body, out, opts...)
	case http.MethodPatch:
		err = r.client.Patch(ctx, r.desc.Path+subpath, body, out, opts...)
	case http.MethodPut:
		err = r.client.Put(ctx, r.desc.Path+subpath, body, out, opts...)
	case http.MethodDelete:
		err = r.client.Delete(ctx, r.desc.Path+subpath, opts...)
	default:
		return fmt.Errorf("unsupported action method %s", method)
	}
	if err != nil {
		return r.mapError(err, "update_error")
	}
	r.invalidate()
	return nil
}

// Upload sends a multipart mutation, for resources carrying files such
// as organization logos or course covers.
func (r *Repository[T]) Upload(ctx context.Context, method, subpath string, fields url.Values, files []apiclient.FilePart, opts ...apiclient.CallOption) (*T, error) {
	var out T
	if err := r.client.Upload(ctx, method, r.desc.Path+subpath, fields, files, &out, opts...); err != nil {
		return nil, r.mapError(err, "update_error")
	}
	r.invalidate()
	return &out, nil
}

func (r *Repository[T]) invalidate() {
	r.cache.InvalidatePrefix(r.desc.Name + ":")
}

func (r *Repository[T]) notFound() error {
	if r.desc.NotFound != nil {
		return r.desc.NotFound
	}
	return apperror.New(apperror.KindNotFound, r.desc.MessageID("not_found"), r.desc.Name+" not found")
}

// mapError rewrites API failures into the resource's message family.
// Validation errors keep their field detail untouched so forms and the
// listing layer can react to them; authentication and permission
// failures already carry their own messages.
func (r *Repository[T]) mapError(err error, event string) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return apperror.Wrap(err, apperror.KindUnknown, r.desc.MessageID(event), "request failed")
	}

	switch appErr.Kind {
	case apperror.KindNotFound:
		return r.notFound()
	case apperror.KindValidation, apperror.KindAuthentication, apperror.KindPermission:
		return err
	default:
		return appErr.WithMessageID(r.desc.MessageID(event))
	}
}

// validatePayload runs struct payloads through the validator and turns
// failures into a field-mapped validation error. Non-struct payloads
// pass through; the server stays the authority on their shape.
func (r *Repository[T]) validatePayload(payload any) error {
	if r.validate == nil || payload == nil {
		return nil
	}
	value := reflect.ValueOf(payload)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	err := r.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Wrap(err, apperror.KindUnknown, "common.unexpected_error", "payload validation failed")
	}

	fields := make(apperror.FieldErrors, len(verrs))
	for _, fe := range verrs {
		message := fe.Error()
		if r.trans != nil {
			message = fe.Translate(r.trans)
		}
		fields[fe.Field()] = append(fields[fe.Field()], message)
	}
	return apperror.New(apperror.KindValidation, "common.validation_error", "payload failed validation").WithFields(fields)
}
