package tests

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/openfun/joanie-sub003/internal/app"
	"github.com/openfun/joanie-sub003/internal/config"
	"github.com/openfun/joanie-sub003/internal/mockapi"
)

const testJWTSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// env is one isolated test environment: a seeded mock API behind an
// httptest server and an app container pointed at it. The request
// counter sits in front of the engine so tests can assert how many
// calls actually left the SDK.
type env struct {
	mock     *mockapi.Server
	server   *httptest.Server
	app      *app.Container
	requests atomic.Int64
}

// startEnv boots a fresh environment. Each test gets its own seeded
// store, so mutations never leak across tests.
func startEnv(t *testing.T) *env {
	t.Helper()

	e := &env{}
	e.mock = mockapi.New(mockapi.Options{JWTSecret: testJWTSecret, Seed: true})
	e.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.requests.Add(1)
		e.mock.Engine.ServeHTTP(w, r)
	}))
	t.Cleanup(e.server.Close)

	token, err := e.mock.Tokens.Generate("test-admin", "admin")
	require.NoError(t, err)

	cfg := &config.Config{
		BaseURL:        e.server.URL + "/api/v1.0/",
		Token:          token,
		Language:       "en",
		PageSize:       20,
		HTTPTimeout:    5 * time.Second,
		SearchDebounce: 40 * time.Millisecond,
		CacheTTL:       time.Second,
		CacheStaleFor:  0,
		RetryMax:       0,
	}

	e.app, err = app.NewContainer(app.Options{Config: cfg})
	require.NoError(t, err)
	t.Cleanup(e.app.Close)

	return e
}
