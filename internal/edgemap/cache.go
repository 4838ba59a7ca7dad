package edgemap

import (
	"fmt"
	"image"
	"os"
	"sync"
)

// Cache provides thread-safe caching of built edge maps keyed by file path.
//
// Building a map touches every pixel, so an editor that reopens the same
// image reuses the cached map instead. Maps are immutable and may be handed
// to any number of sessions.
//
// Each entry remembers the size and modification time of the file it was
// built from. When the file at a path is replaced, the next lookup rebuilds
// the map and discards the old one.
//
// # Memory Management
//
// Cached maps hold eight bytes per pixel and remain in memory until replaced
// or removed via Evict or Clear.
type Cache struct {
	mu   sync.RWMutex
	maps map[string]cacheEntry
	opts []Option
}

type cacheEntry struct {
	stamp string
	m     *Map
}

// NewCache creates an empty cache that builds maps with opts.
func NewCache(opts ...Option) *Cache {
	return &Cache{
		maps: make(map[string]cacheEntry),
		opts: opts,
	}
}

// fileStamp identifies the current contents of path by size and
// modification time. Keys that are not files share the empty stamp.
func fileStamp(path string) string {
	fi, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d:%d", fi.Size(), fi.ModTime().UnixNano())
}

// LoadImage returns the map cached under key, building it from an already
// decoded img on a miss.
//
// When key names a file, the entry is only reused while the file's size and
// modification time are unchanged. An entry whose dimensions differ from a
// non-nil img is also rebuilt. Failed builds are not cached.
func (c *Cache) LoadImage(key string, img image.Image) (*Map, error) {
	stamp := fileStamp(key)

	c.mu.RLock()
	e, ok := c.maps[key]
	c.mu.RUnlock()
	if ok && e.stamp == stamp && fits(e.m, img) {
		return e.m, nil
	}

	m, err := Build(img, c.opts...)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if e, ok := c.maps[key]; ok && e.stamp == stamp && fits(e.m, img) {
		m = e.m
	} else {
		c.maps[key] = cacheEntry{stamp: stamp, m: m}
	}
	c.mu.Unlock()

	return m, nil
}

func fits(m *Map, img image.Image) bool {
	if img == nil {
		return true
	}
	b := img.Bounds()
	return m.width == b.Dx() && m.height == b.Dy()
}

// Evict removes the map cached for key. Unknown keys are ignored.
func (c *Cache) Evict(key string) {
	c.mu.Lock()
	delete(c.maps, key)
	c.mu.Unlock()
}

// Clear removes every cached map.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.maps = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of cached maps.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.maps)
}
