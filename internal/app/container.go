// Package app wires the SDK components together: configuration,
// logging, the API client, the query cache and one repository per
// admin resource. The CLI and the end-to-end tests both start here.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/openfun/joanie-sub003/internal/apiclient"
	"github.com/openfun/joanie-sub003/internal/batchorder"
	"github.com/openfun/joanie-sub003/internal/certificatedefinition"
	"github.com/openfun/joanie-sub003/internal/config"
	"github.com/openfun/joanie-sub003/internal/contractdefinition"
	"github.com/openfun/joanie-sub003/internal/course"
	"github.com/openfun/joanie-sub003/internal/courserun"
	"github.com/openfun/joanie-sub003/internal/discount"
	"github.com/openfun/joanie-sub003/internal/i18n"
	"github.com/openfun/joanie-sub003/internal/offering"
	"github.com/openfun/joanie-sub003/internal/order"
	"github.com/openfun/joanie-sub003/internal/organization"
	"github.com/openfun/joanie-sub003/internal/product"
	"github.com/openfun/joanie-sub003/internal/querycache"
	"github.com/openfun/joanie-sub003/internal/quotedefinition"
	"github.com/openfun/joanie-sub003/internal/resource"
	"github.com/openfun/joanie-sub003/internal/user"
	"github.com/openfun/joanie-sub003/internal/voucher"
)

// Options holds the dependencies the container does not build itself.
type Options struct {
	Config *config.Config
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// ClientOptions are appended to the options derived from Config,
	// so tests can override transport details.
	ClientOptions []apiclient.ClientOption
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Catalog    *i18n.Catalog
	Translator i18n.Translator
	Client     *apiclient.Client
	Cache      *querycache.Cache

	Organizations          *organization.Repository
	Courses                *course.Repository
	CourseRuns             *courserun.Repository
	Products               *product.Repository
	Offerings              *offering.Repository
	Orders                 *order.Repository
	BatchOrders            *batchorder.Repository
	Vouchers               *voucher.Repository
	Discounts              *discount.Repository
	CertificateDefinitions *certificatedefinition.Repository
	ContractDefinitions    *contractdefinition.Repository
	QuoteDefinitions       *quotedefinition.Repository
	Users                  *user.Repository
}

// NewContainer initializes all components and returns the container.
func NewContainer(opts Options) (*Container, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := i18n.NewCatalog()
	if err != nil {
		return nil, fmt.Errorf("build message catalog: %w", err)
	}
	translator := catalog.Translator(cfg.Language)

	clientOptions := []apiclient.ClientOption{
		apiclient.WithLogger(logger),
		apiclient.WithTimeout(cfg.HTTPTimeout),
		apiclient.WithDefaultLanguage(cfg.Language),
		apiclient.WithRetryMax(cfg.RetryMax),
	}
	if cfg.RateLimit > 0 {
		clientOptions = append(clientOptions, apiclient.WithRateLimit(cfg.RateLimit, 1))
	}
	if cfg.Token != "" {
		clientOptions = append(clientOptions, apiclient.WithTokenSource(tokenSource(cfg.Token, logger)))
	}
	clientOptions = append(clientOptions, opts.ClientOptions...)

	client, err := apiclient.New(cfg.BaseURL, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("build API client: %w", err)
	}

	cache := querycache.New(cfg.CacheTTL, cfg.CacheStaleFor, querycache.WithLogger(logger))

	validate, err := resource.NewValidator(catalog)
	if err != nil {
		return nil, fmt.Errorf("build payload validator: %w", err)
	}
	repoOptions := []resource.RepositoryOption{
		resource.WithLogger(logger),
		resource.WithValidator(validate, translator.Universal()),
		resource.WithPageSize(cfg.PageSize),
	}

	c := &Container{
		Config:     cfg,
		Logger:     logger,
		Catalog:    catalog,
		Translator: translator,
		Client:     client,
		Cache:      cache,
	}

	// One constructor per resource; any failure is a programming
	// error in a descriptor, so the first one aborts the build.
	builders := []func() error{
		func() (err error) { c.Organizations, err = organization.NewRepository(client, cache, repoOptions...); return },
		func() (err error) { c.Courses, err = course.NewRepository(client, cache, repoOptions...); return },
		func() (err error) { c.CourseRuns, err = courserun.NewRepository(client, cache, repoOptions...); return },
		func() (err error) { c.Products, err = product.NewRepository(client, cache, repoOptions...); return },
		func() (err error) { c.Offerings, err = offering.NewRepository(client, cache, repoOptions...); return },
		func() (err error) { c.Orders, err = order.NewRepository(client, cache, repoOptions...); return },
		func() (err error) { c.BatchOrders, err = batchorder.NewRepository(client, cache, repoOptions...); return },
		func() (err error) { c.Vouchers, err = voucher.NewRepository(client, cache, repoOptions...); return },
		func() (err error) { c.Discounts, err = discount.NewRepository(client, cache, repoOptions...); return },
		func() (err error) {
			c.CertificateDefinitions, err = certificatedefinition.NewRepository(client, cache, repoOptions...)
			return
		},
		func() (err error) {
			c.ContractDefinitions, err = contractdefinition.NewRepository(client, cache, repoOptions...)
			return
		},
		func() (err error) {
			c.QuoteDefinitions, err = quotedefinition.NewRepository(client, cache, repoOptions...)
			return
		},
		func() (err error) { c.Users, err = user.NewRepository(client, cache, repoOptions...); return },
	}
	for _, build := range builders {
		if err := build(); err != nil {
			return nil, fmt.Errorf("build repositories: %w", err)
		}
	}

	return c, nil
}

// tokenSource picks the token implementation: JWTs get their expiry
// inspected before each request, anything unparsable is treated as an
// opaque token and sent as-is.
func tokenSource(raw string, logger *zap.Logger) apiclient.TokenSource {
	token, err := apiclient.NewJWTToken(raw)
	if err != nil {
		logger.Debug("token is not a JWT, using it verbatim", zap.Error(err))
		return apiclient.StaticToken(raw)
	}
	return token
}

// Close releases the container's background resources.
func (c *Container) Close() {
	c.Cache.Close()
}
