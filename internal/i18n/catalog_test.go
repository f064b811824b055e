package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)

	t.Run("resolves English messages", func(t *testing.T) {
		trans := catalog.Translator("en")
		assert.Equal(t,
			"An error occurred while fetching organizations. Please retry later.",
			trans.T("organizations.fetch_error"),
		)
		assert.Equal(t, "Cannot find the requested course.", trans.T("courses.not_found"))
	})

	t.Run("resolves French messages", func(t *testing.T) {
		trans := catalog.Translator("fr")
		assert.Equal(t,
			"Une erreur est survenue lors de la récupération des organisations. Veuillez réessayer plus tard.",
			trans.T("organizations.fetch_error"),
		)
		assert.Equal(t, "fr", trans.Locale())
	})

	t.Run("falls back to English for unknown locales", func(t *testing.T) {
		trans := catalog.Translator("de")
		assert.Equal(t, "en", trans.Locale())
		assert.Equal(t,
			"An unexpected error occurred. Please retry later.",
			trans.T("common.unexpected_error"),
		)
	})

	t.Run("returns the id for unknown messages", func(t *testing.T) {
		trans := catalog.Translator("en")
		assert.Equal(t, "does.not_exist", trans.T("does.not_exist"))
	})

	t.Run("registers the full message family for every resource", func(t *testing.T) {
		trans := catalog.Translator("en")
		for _, r := range resources {
			for _, suffix := range []string{".fetch_error", ".not_found", ".create_error", ".update_error", ".delete_error"} {
				id := r.key + suffix
				assert.NotEqual(t, id, trans.T(id), "missing translation for %s", id)
			}
		}
	})
}
