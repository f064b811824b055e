package queryfilter

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDirtyQuery() *Query {
	return New().
		Set("page", 1).
		Set("id", 2).
		Set("a", "").
		Set("b", nil).
		Set("d", "none").
		Set("f", "None").
		Set("value", 3).
		Set("state", 4)
}

func TestSanitize(t *testing.T) {
	t.Run("drops reserved fields and every sentinel form", func(t *testing.T) {
		q := buildDirtyQuery()
		clean := Sanitize(q)

		assert.Equal(t, []string{"value", "state"}, clean.Keys())

		v, ok := clean.Get("value")
		require.True(t, ok)
		assert.Equal(t, 3, v)

		s, ok := clean.Get("state")
		require.True(t, ok)
		assert.Equal(t, 4, s)
	})

	t.Run("keeps meaningful zero values", func(t *testing.T) {
		q := New().Set("position", 0).Set("is_listed", false)
		clean := Sanitize(q)

		pos, ok := clean.Get("position")
		require.True(t, ok, "0 looks falsy but is a real filter value")
		assert.Equal(t, 0, pos)

		listed, ok := clean.Get("is_listed")
		require.True(t, ok)
		assert.Equal(t, false, listed)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		q := buildDirtyQuery()
		before := q.Keys()
		_ = Sanitize(q)
		assert.Equal(t, before, q.Keys(), "input query must keep all fields")
	})

	t.Run("is idempotent", func(t *testing.T) {
		q := buildDirtyQuery()
		once := Sanitize(q)
		twice := Sanitize(once)

		if diff := cmp.Diff(once.Encode(), twice.Encode()); diff != "" {
			t.Errorf("sanitize not idempotent (-once +twice):\n%s", diff)
		}
		assert.Equal(t, once.Keys(), twice.Keys())
	})

	t.Run("drops empty string slices but keeps populated ones", func(t *testing.T) {
		q := New().
			Set("state", []string{}).
			Set("organization_ids", []string{"a", "b"})
		clean := Sanitize(q)

		assert.Equal(t, []string{"organization_ids"}, clean.Keys())
	})

	t.Run("handles nil query", func(t *testing.T) {
		clean := Sanitize(nil)
		assert.Equal(t, 0, clean.Len())
	})
}

func TestAvailable(t *testing.T) {
	t.Run("preserves insertion order and skips reserved fields", func(t *testing.T) {
		q := New().Set("page", 1).Set("id", 2).Set("value", 3).Set("state", 4)
		assert.Equal(t, []string{"value", "state"}, Available(q))
	})

	t.Run("skips unset values", func(t *testing.T) {
		q := New().Set("query", "").Set("state", "validated").Set("type", "None")
		assert.Equal(t, []string{"state"}, Available(q))
	})
}

func TestQueryMerge(t *testing.T) {
	t.Run("overwrites in place and appends new fields", func(t *testing.T) {
		q := New().Set("state", "draft").Set("type", "credential")
		q.Merge(New().Set("type", "certificate").Set("organization_id", "abc"))

		assert.Equal(t, []string{"state", "type", "organization_id"}, q.Keys())
		v, _ := q.Get("type")
		assert.Equal(t, "certificate", v)
	})

	t.Run("merging nil is a no-op", func(t *testing.T) {
		q := New().Set("state", "draft")
		q.Merge(nil)
		assert.Equal(t, []string{"state"}, q.Keys())
	})
}

func TestQueryEncode(t *testing.T) {
	t.Run("repeats keys for slice values", func(t *testing.T) {
		q := New().Set("state", []string{"draft", "validated"}).Set("query", "math")
		encoded := q.Encode()

		expected := url.Values{
			"state": []string{"draft", "validated"},
			"query": []string{"math"},
		}
		assert.Equal(t, expected, encoded)
	})

	t.Run("prints scalar values", func(t *testing.T) {
		q := New().Set("page_size", 25).Set("is_active", true)
		encoded := q.Encode()

		assert.Equal(t, "25", encoded.Get("page_size"))
		assert.Equal(t, "true", encoded.Get("is_active"))
	})
}

func TestQueryClone(t *testing.T) {
	t.Run("slice values are not shared", func(t *testing.T) {
		q := New().Set("state", []string{"draft"})
		clone := q.Clone()

		original, _ := q.Get("state")
		original.([]string)[0] = "mutated"

		cloned, _ := clone.Get("state")
		assert.Equal(t, []string{"draft"}, cloned.([]string))
	})
}

func TestQueryDelete(t *testing.T) {
	q := New().Set("a", 1).Set("b", 2).Set("c", 3)
	q.Delete("b")

	assert.Equal(t, []string{"a", "c"}, q.Keys())
	_, ok := q.Get("b")
	assert.False(t, ok)

	// Deleting a missing field is harmless.
	q.Delete("missing")
	assert.Equal(t, 2, q.Len())
}
