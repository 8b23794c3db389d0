// Package mal provides a client for the MyAnimeList REST API.
package mal

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/mangasan-cli/mangasan/filesystem"
	"github.com/mangasan-cli/mangasan/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// cacheData defines the structured format for persisting cached MyAnimeList records to disk.
type cacheData[K comparable, T any] struct {
	Mangas map[K]T `json:"mangas"`
}

// cacher provides a generic, thread-safe wrapper for high-level caching operations.
type cacher[K comparable, T any] struct {
	internal   *gache.Cache[*cacheData[K, T]]
	keyWrapper func(K) K
	mu         sync.RWMutex
}

// Get retrieves a value from the cache associated with the specified key.
func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	mangas, ok := data.Mangas[c.keyWrapper(key)]
	if ok {
		return mo.Some(mangas)
	}

	return mo.None[T]()
}

// Set persists a key-value pair to the cache.
func (c *cacher[K, T]) Set(key K, t T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if !expired && data != nil {
		data.Mangas[c.keyWrapper(key)] = t
		return c.internal.Set(data)
	} else {
		internal := &cacheData[K, T]{Mangas: make(map[K]T)}
		internal.Mangas[c.keyWrapper(key)] = t
		return c.internal.Set(internal)
	}
}

// Delete removes the entry associated with the specified key from the cache.
func (c *cacher[K, T]) Delete(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if !expired {
		delete(data.Mangas, c.keyWrapper(key))
		return c.internal.Set(data)
	}

	return nil
}

// relationCacher provides persistence for manga title-to-ID mappings.
var relationCacher = &cacher[string, int]{
	internal: gache.New[*cacheData[string, int]](
		&gache.Options{
			Path:       filepath.Join(where.Config(), "mal.json"),
			FileSystem: &filesystem.GacheFs{},
		},
	),
	keyWrapper: normalizedName,
}

// idCacher provides local persistence for comprehensive manga metadata lookups.
var idCacher = &cacher[int, *Manga]{
	internal: gache.New[*cacheData[int, *Manga]](
		&gache.Options{
			Path:       filepath.Join(where.Cache(), "mal_id_cache.json"),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		},
	),
	keyWrapper: func(id int) int { return id },
}
