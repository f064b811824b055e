package courserun

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

func TestFiltersQuery(t *testing.T) {
	t.Run("Unset booleans are omitted", func(t *testing.T) {
		values := queryfilter.Sanitize(Filters{}.Query()).Encode()
		assert.Empty(t, values)
	})

	t.Run("Explicit false still filters", func(t *testing.T) {
		listed := false
		values := queryfilter.Sanitize(Filters{IsListed: &listed}.Query()).Encode()
		assert.Equal(t, "false", values.Get("is_listed"))
	})

	t.Run("Course ids join as repeated parameters", func(t *testing.T) {
		values := queryfilter.Sanitize(Filters{CourseIDs: []string{"a", "b"}}.Query()).Encode()
		assert.Equal(t, []string{"a", "b"}, values["course_ids"])
	})
}
