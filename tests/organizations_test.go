package tests

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfun/joanie-sub003/internal/organization"
	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
	"github.com/openfun/joanie-sub003/internal/pkg/attachment"
	"github.com/openfun/joanie-sub003/internal/resource"
)

func TestOrganizationCRUD(t *testing.T) {
	e := startEnv(t)
	ctx := context.Background()
	repo := e.app.Organizations

	// Shared between sub-tests
	var orgID string

	t.Run("List seeded organizations", func(t *testing.T) {
		page, err := repo.List(ctx, resource.ListParams{})
		require.NoError(t, err)
		assert.Equal(t, 4, page.Count)
		assert.Len(t, page.Results, 4)
	})

	t.Run("Search by title", func(t *testing.T) {
		page, err := repo.List(ctx, resource.ListParams{Search: "saclay"})
		require.NoError(t, err)
		require.Equal(t, 1, page.Count)
		assert.Equal(t, "UPS", page.Results[0].Code)
	})

	t.Run("Filter by country", func(t *testing.T) {
		page, err := repo.List(ctx, resource.ListParams{
			Query: organization.Filters{Country: "FR"}.Query(),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Count)
		for _, org := range page.Results {
			assert.Equal(t, "FR", org.Country)
		}
	})

	t.Run("Create organization", func(t *testing.T) {
		created, err := repo.Create(ctx, organization.WritePayload{
			Code:         "ENS",
			Title:        "École Normale Supérieure",
			Country:      "FR",
			ContactEmail: "contact@ens.example",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "ENS", created.Code)
		orgID = created.ID

		// The mutation flushed the cached list
		page, err := repo.List(ctx, resource.ListParams{})
		require.NoError(t, err)
		assert.Equal(t, 5, page.Count)
	})

	t.Run("Create with invalid payload", func(t *testing.T) {
		_, err := repo.Create(ctx, organization.WritePayload{
			Title:        "No code",
			ContactEmail: "not-an-email",
		})
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))

		fields := apperror.FieldsOf(err)
		assert.Contains(t, fields, "code")
		assert.Contains(t, fields, "contact_email")
	})

	t.Run("Get single organization", func(t *testing.T) {
		got, err := repo.GetByID(ctx, orgID)
		require.NoError(t, err)
		assert.Equal(t, "ENS", got.Code)
	})

	t.Run("Get unknown organization", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
		assert.Equal(t,
			"Cannot find the requested organization.",
			apperror.Localize(e.app.Translator, err),
		)
	})

	t.Run("Update organization", func(t *testing.T) {
		updated, err := repo.Update(ctx, orgID, organization.WritePayload{
			Code:    "ENS",
			Title:   "ENS Paris-Saclay",
			Country: "FR",
		})
		require.NoError(t, err)
		assert.Equal(t, "ENS Paris-Saclay", updated.Title)
	})

	t.Run("Upload logo", func(t *testing.T) {
		path := writeTestImage(t, "logo.png", 32, 32)
		logo, err := attachment.LoadImage(path, 512, 512)
		require.NoError(t, err)

		updated, err := repo.UploadLogo(ctx, orgID, logo)
		require.NoError(t, err)
		require.NotNil(t, updated.Logo)
		assert.Equal(t, "logo.png", updated.Logo.Filename)
	})

	t.Run("Delete organization", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, orgID))

		page, err := repo.List(ctx, resource.ListParams{})
		require.NoError(t, err)
		assert.Equal(t, 4, page.Count)
	})
}

// writeTestImage renders a small PNG into the test's temp dir.
func writeTestImage(t *testing.T, name string, width, height int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	require.NoError(t, png.Encode(file, img))
	return path
}
