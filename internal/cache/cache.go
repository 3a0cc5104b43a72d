package cache

import (
	"bytes"
	"encoding/gob"
	"os"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stahnma/pds-didweb/internal/pds"
)

const (
	defaultExpiration = 4 * time.Hour
	cleanupInterval   = 6 * time.Hour
)

// Cache memoises PDS listings per host, with GOB persistence.
type Cache struct {
	inner *gocache.Cache
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{inner: gocache.New(defaultExpiration, cleanupInterval)}
}

// ListingKey returns the cache key for a host's listRepos response.
func ListingKey(host string) string {
	return "listRepos:" + host
}

// LoadFromFile loads a cache from a GOB file. A missing file yields an empty
// cache; a corrupt one is reported through ErrCorrupt alongside an empty cache.
func LoadFromFile(filename string) (*Cache, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, err
	}
	items := map[string]gocache.Item{}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&items); err != nil {
		return New(), &CorruptError{Path: filename, Err: err}
	}
	return &Cache{inner: gocache.NewFrom(defaultExpiration, cleanupInterval, items)}, nil
}

// CorruptError reports a cache file that could not be decoded.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return "cache file " + e.Path + " is corrupt: " + e.Err.Error()
}

func (e *CorruptError) Unwrap() error { return e.Err }

// SaveToFile saves the cache to a GOB file.
func (c *Cache) SaveToFile(filename string) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c.inner.Items()); err != nil {
		return err
	}
	return os.WriteFile(filename, buf.Bytes(), 0600)
}

// Listing returns the cached listing for host, if any.
func (c *Cache) Listing(host string) (*pds.Listing, bool) {
	val, found := c.inner.Get(ListingKey(host))
	if !found {
		return nil, false
	}
	listing, ok := val.(pds.Listing)
	if !ok {
		return nil, false
	}
	return &listing, true
}

// SetListing stores a host's listing with the default expiration.
func (c *Cache) SetListing(host string, listing *pds.Listing) {
	c.inner.Set(ListingKey(host), *listing, gocache.DefaultExpiration)
}

// Len returns the number of unexpired entries.
func (c *Cache) Len() int {
	return c.inner.ItemCount()
}

// Flush clears all cached items.
func (c *Cache) Flush() {
	c.inner.Flush()
}
