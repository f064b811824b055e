package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openfun/joanie-sub003/internal/resource"
	"github.com/openfun/joanie-sub003/internal/user"
)

func TestUserPicker(t *testing.T) {
	e := startEnv(t)
	ctx := context.Background()

	t.Run("Search accounts by username", func(t *testing.T) {
		page, err := e.app.Users.List(ctx, resource.ListParams{Search: "learner_0"})
		require.NoError(t, err)
		assert.Equal(t, 6, page.Count)
	})

	t.Run("Filter staff accounts", func(t *testing.T) {
		staff := true
		page, err := e.app.Users.List(ctx, resource.ListParams{
			Query: user.Filters{IsStaff: &staff}.Query(),
		})
		require.NoError(t, err)
		require.Equal(t, 1, page.Count)
		assert.Equal(t, "admin", page.Results[0].Username)
		assert.True(t, page.Results[0].IsStaff)
	})

	t.Run("Search accounts by email", func(t *testing.T) {
		page, err := e.app.Users.List(ctx, resource.ListParams{Search: "learner03@example.org"})
		require.NoError(t, err)
		require.Equal(t, 1, page.Count)
		assert.Equal(t, "learner_03", page.Results[0].Username)
	})
}
