// Package mockapi implements an in-memory stand-in for the Joanie
// administrative REST API. Tests run it in-process behind httptest and
// the joanie-admin mock-api command serves it standalone, so the SDK
// and the SPA can be exercised without a Django backend.
package mockapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultTokenTTL bounds the lifetime of minted access tokens.
const DefaultTokenTTL = 8 * time.Hour

// Options configures the mock server.
type Options struct {
	// JWTSecret signs the accepted bearer tokens.
	JWTSecret string
	// TokenTTL defaults to DefaultTokenTTL.
	TokenTTL time.Duration
	// AllowOrigins configures CORS for the admin SPA. Defaults to the
	// local development origin.
	AllowOrigins []string
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Seed populates the store with deterministic fixtures.
	Seed bool
}

// Server bundles the router, the backing store and the token manager.
type Server struct {
	Engine *gin.Engine
	Store  *Store
	Tokens *TokenManager

	logger *zap.Logger
}

// New assembles the mock API: recovery and CORS middleware, bearer
// authentication, and one route family per resource under the same
// /api/v1.0 root the real API serves.
func New(opts Options) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = DefaultTokenTTL
	}
	if len(opts.AllowOrigins) == 0 {
		opts.AllowOrigins = []string{"http://localhost:8072"}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	store := NewStore()
	if opts.Seed {
		Seed(store)
	}
	tokens := NewTokenManager(opts.JWTSecret, opts.TokenTTL)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(opts.Logger.Named("mockapi")))

	config := cors.DefaultConfig()
	config.AllowOrigins = opts.AllowOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept-Language"}
	r.Use(cors.New(config))

	v1 := r.Group("/api/v1.0")
	v1.Use(authRequired(tokens))
	{
		registerOrganizations(v1, store)
		registerCourses(v1, store)
		registerCourseRuns(v1, store)
		registerProducts(v1, store)
		registerOfferings(v1, store)
		registerOrders(v1, store)
		registerBatchOrders(v1, store)
		registerDiscounts(v1, store)
		registerVouchers(v1, store)
		registerCertificateDefinitions(v1, store)
		registerContractDefinitions(v1, store)
		registerQuoteDefinitions(v1, store)
		registerUsers(v1, store)
	}

	return &Server{
		Engine: r,
		Store:  store,
		Tokens: tokens,
		logger: opts.Logger,
	}
}

// requestLogger emits one debug line per request, quiet by default.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
