package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
)

func newTestClient(t *testing.T, serverURL string, opts ...ClientOption) *Client {
	t.Helper()
	base := append([]ClientOption{
		WithRetryPolicy(func() backoff.BackOff { return backoff.NewConstantBackOff(time.Millisecond) }),
	}, opts...)
	client, err := New(serverURL+"/api/v1.0/", base...)
	require.NoError(t, err)
	return client
}

func signTestToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestClientRequests(t *testing.T) {
	t.Run("decodes a JSON response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1.0/organizations/", r.URL.Path)
			assert.Equal(t, "Bearer opaque-token", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"count": 1})
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, WithTokenSource(StaticToken("opaque-token")))

		var out struct {
			Count int `json:"count"`
		}
		err := client.Get(context.Background(), "organizations/", nil, &out)
		require.NoError(t, err)
		assert.Equal(t, 1, out.Count)
	})

	t.Run("sends the default language and honors per call overrides", func(t *testing.T) {
		var got atomic.Value
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got.Store(r.Header.Get("Accept-Language"))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, WithDefaultLanguage("en"))

		require.NoError(t, client.Get(context.Background(), "courses/", nil, nil))
		assert.Equal(t, "en", got.Load())

		require.NoError(t, client.Get(context.Background(), "courses/", nil, nil, WithLanguage("fr")))
		assert.Equal(t, "fr", got.Load())
	})

	t.Run("retries GET requests on server errors", func(t *testing.T) {
		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if attempts.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, WithRetryMax(3))

		var out struct {
			OK bool `json:"ok"`
		}
		err := client.Get(context.Background(), "orders/", nil, &out)
		require.NoError(t, err)
		assert.True(t, out.OK)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("gives up after the retry budget", func(t *testing.T) {
		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, WithRetryMax(2))

		err := client.Get(context.Background(), "orders/", nil, nil)
		require.Error(t, err)
		assert.Equal(t, apperror.KindServer, apperror.KindOf(err))
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("does not retry mutations", func(t *testing.T) {
		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, WithRetryMax(3))

		err := client.Post(context.Background(), "orders/", map[string]string{"state": "draft"}, nil)
		require.Error(t, err)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"title": ["This field is required."], "code": "invalid"}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, WithRetryMax(3))

		err := client.Get(context.Background(), "products/", nil, nil)
		require.Error(t, err)
		assert.Equal(t, int32(1), attempts.Load())

		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		fields := apperror.FieldsOf(err)
		require.Contains(t, fields, "title")
		assert.Equal(t, []string{"This field is required."}, fields["title"])
	})

	t.Run("treats 422 responses as validation errors with fields", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"title": ["This field is required."]}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, WithRetryMax(0))

		err := client.Post(context.Background(), "products/", map[string]any{}, nil)
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Equal(t, []string{"This field is required."}, apperror.FieldsOf(err)["title"])
	})

	t.Run("maps statuses onto error kinds", func(t *testing.T) {
		cases := []struct {
			status int
			kind   apperror.Kind
		}{
			{http.StatusUnauthorized, apperror.KindAuthentication},
			{http.StatusForbidden, apperror.KindPermission},
			{http.StatusNotFound, apperror.KindNotFound},
			{http.StatusInternalServerError, apperror.KindServer},
		}
		for _, tc := range cases {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			client := newTestClient(t, server.URL, WithRetryMax(0))

			err := client.Get(context.Background(), "vouchers/", nil, nil)
			require.Error(t, err)
			assert.Equal(t, tc.kind, apperror.KindOf(err), "status %d", tc.status)
			server.Close()
		}
	})

	t.Run("keeps the detail message from the response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail": "No Organization matches the given query."}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL, WithRetryMax(0))

		err := client.Get(context.Background(), "organizations/missing/", nil, nil)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "No Organization matches the given query.", appErr.Message)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
	})

	t.Run("reports unreachable servers as transport errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		client := newTestClient(t, server.URL, WithRetryMax(0))
		server.Close()

		err := client.Get(context.Background(), "users/", nil, nil)
		require.Error(t, err)
		assert.Equal(t, apperror.KindTransport, apperror.KindOf(err))
	})

	t.Run("deletes expect no content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		require.NoError(t, client.Delete(context.Background(), "discounts/42/"))
	})

	t.Run("uploads multipart files with fields", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "Université de Paris", r.FormValue("title"))

			file, header, err := r.FormFile("logo")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "logo.jpg", header.Filename)
			assert.Equal(t, "image/jpeg", header.Header.Get("Content-Type"))

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": "abc"}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)

		fields := map[string][]string{"title": {"Université de Paris"}}
		files := []FilePart{{Field: "logo", Filename: "logo.jpg", MIME: "image/jpeg", Content: []byte("fake-image")}}

		var out struct {
			ID string `json:"id"`
		}
		err := client.Upload(context.Background(), http.MethodPost, "organizations/", fields, files, &out)
		require.NoError(t, err)
		assert.Equal(t, "abc", out.ID)
	})
}

func TestTokenSources(t *testing.T) {
	t.Run("rejects expired access tokens before sending", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer server.Close()

		expired := signTestToken(t, time.Now().Add(-time.Hour))
		source, err := NewJWTToken(expired)
		require.NoError(t, err)

		client := newTestClient(t, server.URL, WithTokenSource(source), WithRetryMax(0))

		err = client.Get(context.Background(), "orders/", nil, nil)
		require.Error(t, err)
		assert.Equal(t, apperror.KindAuthentication, apperror.KindOf(err))
		assert.Equal(t, int32(0), hits.Load(), "no request should reach the server")
	})

	t.Run("passes valid access tokens through", func(t *testing.T) {
		valid := signTestToken(t, time.Now().Add(time.Hour))
		source, err := NewJWTToken(valid)
		require.NoError(t, err)

		token, err := source.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, valid, token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), source.ExpiresAt(), 5*time.Second)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		_, err := NewJWTToken("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestEndpointResolution(t *testing.T) {
	client, err := New("http://localhost:8071/api/v1.0")
	require.NoError(t, err)

	t.Run("adds the missing trailing slash to the base URL", func(t *testing.T) {
		assert.Equal(t, "http://localhost:8071/api/v1.0/", client.BaseURL())
	})

	t.Run("resolves resource paths beneath the base", func(t *testing.T) {
		u, err := client.endpoint("course-runs/", nil)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8071/api/v1.0/course-runs/", u)
	})

	t.Run("keeps repeated query keys", func(t *testing.T) {
		u, err := client.endpoint("orders/", map[string][]string{"state": {"draft", "validated"}})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8071/api/v1.0/orders/?state=draft&state=validated", u)
	})

	t.Run("rejects an empty base URL", func(t *testing.T) {
		_, err := New("")
		assert.Error(t, err)
	})
}
