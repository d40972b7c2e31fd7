package anilist

import (
	"sync"

	"github.com/kurasora/kurasora/filesystem"
	"github.com/kurasora/kurasora/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

type cacheData[K comparable, T any] struct {
	Entries map[K]T `json:"entries"`
}

// cacher is a gache file holding a single map, guarded for concurrent LoadLinks/Load calls.
type cacher[K comparable, T any] struct {
	internal *gache.Cache[*cacheData[K, T]]
	mu       sync.RWMutex
}

func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	if value, ok := data.Entries[key]; ok {
		return mo.Some(value)
	}

	return mo.None[T]()
}

func (c *cacher[K, T]) Set(key K, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil || data.Entries == nil {
		data = &cacheData[K, T]{Entries: make(map[K]T)}
	}

	data.Entries[key] = value
	return c.internal.Set(data)
}

// malToAnilist maps MyAnimeList ids to Anilist ids. The mapping never changes, so entries do not expire.
var malToAnilist = sync.OnceValue(func() *cacher[int, int] {
	return &cacher[int, int]{
		internal: gache.New[*cacheData[int, int]](&gache.Options{
			Path:       where.AnilistIDs(),
			FileSystem: &filesystem.GacheFs{},
		}),
	}
})
