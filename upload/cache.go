package upload

import (
	"image"
	"sync"
)

// Cache memoises decoded data URIs. It is safe for concurrent use, so the
// snapshot renderer can share it with the editor.
type Cache struct {
	mu     sync.Mutex
	images map[string]cacheEntry
}

type cacheEntry struct {
	img image.Image
	err error
}

func NewCache() *Cache {
	return &Cache{images: make(map[string]cacheEntry)}
}

// Image decodes uri once and returns the same result afterwards, errors
// included.
func (c *Cache) Image(uri string) (image.Image, error) {
	c.mu.Lock()
	if e, ok := c.images[uri]; ok {
		c.mu.Unlock()
		return e.img, e.err
	}
	c.mu.Unlock()

	img, err := DecodeImage(uri)

	c.mu.Lock()
	c.images[uri] = cacheEntry{img: img, err: err}
	c.mu.Unlock()
	return img, err
}

// Forget drops entries whose uri is not in keep.
func (c *Cache) Forget(keep map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for uri := range c.images {
		if !keep[uri] {
			delete(c.images, uri)
		}
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}
