package mockapi

import (
	"slices"
	"sync"

	"github.com/openfun/joanie-sub003/internal/batchorder"
	"github.com/openfun/joanie-sub003/internal/certificatedefinition"
	"github.com/openfun/joanie-sub003/internal/contractdefinition"
	"github.com/openfun/joanie-sub003/internal/course"
	"github.com/openfun/joanie-sub003/internal/courserun"
	"github.com/openfun/joanie-sub003/internal/discount"
	"github.com/openfun/joanie-sub003/internal/offering"
	"github.com/openfun/joanie-sub003/internal/order"
	"github.com/openfun/joanie-sub003/internal/organization"
	"github.com/openfun/joanie-sub003/internal/product"
	"github.com/openfun/joanie-sub003/internal/quotedefinition"
	"github.com/openfun/joanie-sub003/internal/user"
	"github.com/openfun/joanie-sub003/internal/voucher"
)

// collection is an ordered in-memory table of one entity type. Items
// keep their insertion order so pagination is stable across requests.
type collection[T any] struct {
	mu    sync.RWMutex
	items []T
	id    func(T) string
}

func newCollection[T any](id func(T) string) *collection[T] {
	return &collection[T]{id: id}
}

// List returns a copy of all items.
func (c *collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Get returns the item with the given id.
func (c *collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if c.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Insert appends a new item.
func (c *collection[T]) Insert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// Replace swaps the stored item carrying the same id, keeping its
// position. Returns false when no such item exists.
func (c *collection[T]) Replace(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.items {
		if c.id(existing) == c.id(item) {
			c.items[i] = item
			return true
		}
	}
	return false
}

// Remove deletes the item with the given id.
func (c *collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.items {
		if c.id(existing) == id {
			c.items = slices.Delete(c.items, i, i+1)
			return true
		}
	}
	return false
}

// Len reports the number of stored items.
func (c *collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Store holds every collection the mock API serves.
type Store struct {
	Organizations          *collection[organization.Organization]
	Courses                *collection[course.Course]
	CourseRuns             *collection[courserun.CourseRun]
	Products               *collection[product.Product]
	Offerings              *collection[offering.Offering]
	Orders                 *collection[order.Order]
	BatchOrders            *collection[batchorder.BatchOrder]
	Vouchers               *collection[voucher.Voucher]
	Discounts              *collection[discount.Discount]
	CertificateDefinitions *collection[certificatedefinition.CertificateDefinition]
	ContractDefinitions    *collection[contractdefinition.ContractDefinition]
	QuoteDefinitions       *collection[quotedefinition.QuoteDefinition]
	Users                  *collection[user.User]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		Organizations:          newCollection(func(o organization.Organization) string { return o.ID }),
		Courses:                newCollection(func(c course.Course) string { return c.ID }),
		CourseRuns:             newCollection(func(r courserun.CourseRun) string { return r.ID }),
		Products:               newCollection(func(p product.Product) string { return p.ID }),
		Offerings:              newCollection(func(o offering.Offering) string { return o.ID }),
		Orders:                 newCollection(func(o order.Order) string { return o.ID }),
		BatchOrders:            newCollection(func(b batchorder.BatchOrder) string { return b.ID }),
		Vouchers:               newCollection(func(v voucher.Voucher) string { return v.ID }),
		Discounts:              newCollection(func(d discount.Discount) string { return d.ID }),
		CertificateDefinitions: newCollection(func(d certificatedefinition.CertificateDefinition) string { return d.ID }),
		ContractDefinitions:    newCollection(func(d contractdefinition.ContractDefinition) string { return d.ID }),
		QuoteDefinitions:       newCollection(func(d quotedefinition.QuoteDefinition) string { return d.ID }),
		Users:                  newCollection(func(u user.User) string { return u.ID }),
	}
}
