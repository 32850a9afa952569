// Package cache tracks named cache tags for the gateway's read paths. A tag
// version bumps after every successful mutation of the matching resource;
// readers compare versions to know their snapshot is stale. Mutations that
// return an error must not bump anything.
package cache

import (
	"sync"

	"github.com/medimart/storefront-gateway/internal/metrics"
)

// The tag names mirror the resource kinds the collaborators expose.
const (
	TagCart     = "Cart"
	TagCategory = "Category"
	TagMedicine = "Medicine"
	TagOrder    = "Order"
	TagUser     = "User"
	TagReview   = "Review"
)

// Tags is a concurrency-safe tag version store.
type Tags struct {
	mu       sync.RWMutex
	versions map[string]uint64
}

// NewTags creates an empty tag store; every tag starts at version 0.
func NewTags() *Tags {
	return &Tags{
		versions: make(map[string]uint64),
	}
}

// Invalidate bumps the tag's version. Callers must only invoke this after an
// error-free mutation response.
func (t *Tags) Invalidate(tag string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.versions[tag]++
	metrics.CacheInvalidationsTotal.WithLabelValues(tag).Inc()
}

// Version returns the tag's current version.
func (t *Tags) Version(tag string) uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.versions[tag]
}
