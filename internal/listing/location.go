package listing

import (
	"net/url"
	"sort"
	"sync"

	"github.com/openfun/joanie-sub003/internal/pkg/queryfilter"
)

// Location is the piece of navigation state a list view reads on start
// and writes back as the user pages through results. Implementations
// must preserve query parameters they do not own.
type Location interface {
	// Query returns the current query parameters.
	Query() url.Values
	// SetQuery replaces the query parameters without triggering a
	// reload of whatever the location points at.
	SetQuery(values url.Values)
}

// MemoryLocation keeps the query state in memory. It backs terminal
// views, which have no address bar, and tests.
type MemoryLocation struct {
	mu     sync.Mutex
	values url.Values
}

// NewMemoryLocation creates a location holding a copy of values.
func NewMemoryLocation(values url.Values) *MemoryLocation {
	return &MemoryLocation{values: cloneValues(values)}
}

// Query implements Location. The caller owns the returned copy.
func (l *MemoryLocation) Query() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneValues(l.values)
}

// SetQuery implements Location.
func (l *MemoryLocation) SetQuery(values url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values = cloneValues(values)
}

func cloneValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for key, items := range values {
		out[key] = append([]string(nil), items...)
	}
	return out
}

// queryFromValues lifts URL parameters into a filter query. Repeated
// parameters become string slices, single ones plain strings. Keys are
// visited in sorted order since url.Values has no insertion order.
func queryFromValues(values url.Values) *queryfilter.Query {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	q := queryfilter.New()
	for _, key := range keys {
		items := values[key]
		if len(items) == 1 {
			q.Set(key, items[0])
			continue
		}
		q.Set(key, items)
	}
	return q
}
