// Package queryfilter holds the filter state a list view sends to the API.
// Filter values come from loosely shaped widgets (search boxes, selects,
// autocompletes), so a field can legitimately hold a scalar, a string slice
// or nothing at all; this package decides which fields are meaningful before
// they reach the query string.
package queryfilter

import (
	"fmt"
	"net/url"
	"slices"
)

// Reserved field names stripped by Sanitize regardless of value: pagination
// and identity are transport concerns, not content filters.
var reservedFields = []string{"page", "id"}

// Sentinel strings that mean "no constraint" despite looking like values.
// Exactly these two casings, per the API's select-widget conventions.
var sentinelStrings = []string{"none", "None"}

// Query is an insertion-ordered set of filter fields. Order matters so that
// derived views (filter chips, available-filter lists) render in the order
// the caller declared the fields, not in map-iteration order.
type Query struct {
	order  []string
	values map[string]any
}

// New creates an empty query.
func New() *Query {
	return &Query{values: make(map[string]any)}
}

// Set stores a field value, keeping the field's original position when it
// already exists. Returns the query for chaining.
func (q *Query) Set(name string, value any) *Query {
	if _, ok := q.values[name]; !ok {
		q.order = append(q.order, name)
	}
	q.values[name] = cloneValue(value)
	return q
}

// Get returns the value of a field and whether it is present.
func (q *Query) Get(name string) (any, bool) {
	v, ok := q.values[name]
	return v, ok
}

// Delete removes a field if present.
func (q *Query) Delete(name string) {
	if _, ok := q.values[name]; !ok {
		return
	}
	delete(q.values, name)
	q.order = slices.DeleteFunc(q.order, func(s string) bool { return s == name })
}

// Len returns the number of fields, including unset ones.
func (q *Query) Len() int {
	return len(q.values)
}

// Keys returns the field names in insertion order.
func (q *Query) Keys() []string {
	return slices.Clone(q.order)
}

// Clone returns a deep copy; slice values are copied, the input is never
// shared with the result.
func (q *Query) Clone() *Query {
	out := New()
	for _, name := range q.order {
		out.Set(name, q.values[name])
	}
	return out
}

// Merge copies every field of partial into q, overwriting existing values in
// place and appending new fields in the partial's order.
func (q *Query) Merge(partial *Query) *Query {
	if partial == nil {
		return q
	}
	for _, name := range partial.order {
		q.Set(name, partial.values[name])
	}
	return q
}

// Encode renders the query as url.Values. Slice values become repeated keys,
// scalars are printed as-is. Unset fields are still encoded: call Sanitize
// first to drop them.
func (q *Query) Encode() url.Values {
	out := url.Values{}
	for _, name := range q.order {
		switch v := q.values[name].(type) {
		case nil:
			out.Add(name, "")
		case []string:
			for _, item := range v {
				out.Add(name, item)
			}
		case string:
			out.Add(name, v)
		default:
			out.Add(name, fmt.Sprint(v))
		}
	}
	return out
}

// IsUnset reports whether a value means "no constraint": nil, the empty
// string, the sentinel strings, or an empty string slice. Meaningful zero
// values (0, false) are NOT unset.
func IsUnset(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		if v == "" {
			return true
		}
		return slices.Contains(sentinelStrings, v)
	case []string:
		return len(v) == 0
	default:
		return false
	}
}

// IsReserved reports whether the field name is stripped by Sanitize
// regardless of its value.
func IsReserved(name string) bool {
	return slices.Contains(reservedFields, name)
}

// Sanitize returns a copy of q with reserved fields and unset values removed.
// The input is never mutated and sanitizing an already-sanitized query is a
// no-op, so the operation is safe to apply after every merge.
func Sanitize(q *Query) *Query {
	out := New()
	if q == nil {
		return out
	}
	for _, name := range q.order {
		if IsReserved(name) || IsUnset(q.values[name]) {
			continue
		}
		out.Set(name, q.values[name])
	}
	return out
}

// Available returns the names of the meaningful, non-reserved fields in
// insertion order. This is what the filter-chip row is built from.
func Available(q *Query) []string {
	if q == nil {
		return nil
	}
	names := make([]string, 0, len(q.order))
	for _, name := range q.order {
		if IsReserved(name) || IsUnset(q.values[name]) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// DisplayValue renders a field value the way a chip shows it: slices joined
// for humans, scalars printed.
func DisplayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		out := ""
		for i, item := range v {
			if i > 0 {
				out += ", "
			}
			out += item
		}
		return out
	default:
		return fmt.Sprint(v)
	}
}

func cloneValue(value any) any {
	if v, ok := value.([]string); ok {
		return slices.Clone(v)
	}
	return value
}
