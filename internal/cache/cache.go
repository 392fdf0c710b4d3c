// Package cache stores the most recently parsed descriptor for each resource
// identity. The cache is the one piece of shared mutable state in the engine:
// a sub-request synthesized from a document resolves back through it to reach
// the original section content without re-parsing the document text.
package cache

import (
	"sync"

	"github.com/componentry/sfcsplit/internal/types"
)

// DescriptorCache maps an absolute resource identity to its most recent
// descriptor. Writes are last-write-wins per key; a later parse of the same
// identity replaces the prior entry wholesale. Entries live for the process
// lifetime, bounded by the host's module graph.
type DescriptorCache struct {
	descriptors map[string]*types.Descriptor
	mutex       sync.RWMutex
}

// NewDescriptorCache creates an empty descriptor cache.
func NewDescriptorCache() *DescriptorCache {
	return &DescriptorCache{
		descriptors: make(map[string]*types.Descriptor),
	}
}

// Set unconditionally stores the descriptor under the resource identity,
// replacing any prior entry. The descriptor is stored as a whole; readers
// observe either the previous or the new entry, never a partial write.
func (c *DescriptorCache) Set(resource string, d *types.Descriptor) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.descriptors[resource] = d
}

// Get returns the last stored descriptor for the resource identity.
func (c *DescriptorCache) Get(resource string) (*types.Descriptor, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	d, ok := c.descriptors[resource]
	return d, ok
}

// Count returns the number of cached descriptors.
func (c *DescriptorCache) Count() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.descriptors)
}
