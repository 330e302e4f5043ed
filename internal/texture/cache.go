package texture

import (
	"sync"

	"softraster/internal/raster"
)

// Resolver resolves an asset name to a decoded image.
type Resolver interface {
	Resolve(name string) *raster.Rasterizer
}

// Cache is a concurrency-safe asset cache. Decoded images are shared
// between callers and must be treated as read-only.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*raster.Rasterizer // keyed by path, or by "@"+stem for Put
	index *Index
}

// NewCache creates a cache backed by the given index.
func NewCache(index *Index) *Cache {
	if index == nil {
		index = &Index{entries: map[string]string{}}
	}
	return &Cache{
		items: make(map[string]*raster.Rasterizer),
		index: index,
	}
}

// Put registers an in-memory image under name, shadowing any indexed file.
func (c *Cache) Put(name string, img *raster.Rasterizer) {
	c.mu.Lock()
	c.items["@"+stemOf(name)] = img
	c.mu.Unlock()
}

// Resolve returns the image for name, loading it on first use. Unknown names
// return nil; files that fail to decode resolve to Placeholder.
func (c *Cache) Resolve(name string) *raster.Rasterizer {
	c.mu.RLock()
	if img, ok := c.items["@"+stemOf(name)]; ok {
		c.mu.RUnlock()
		return img
	}
	c.mu.RUnlock()

	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil
	}

	// Fast path: read lock
	c.mu.RLock()
	if img, ok := c.items[path]; ok {
		c.mu.RUnlock()
		return img
	}
	c.mu.RUnlock()

	img, _ := LoadOrPlaceholder(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[path]; ok {
		return existing
	}
	c.items[path] = img
	return img
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
