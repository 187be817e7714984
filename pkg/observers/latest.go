package observers

import (
	"context"
	"errors"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	go_cache "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/selectdb/feed_observer/pkg/xerror"
)

const cacheTimeout = 1 * time.Second

// Latest remembers the most recent snapshot per key, e.g. the last quote of
// every symbol. A zero expiration keeps entries forever.
type Latest[T any] struct {
	key        func(T) string
	expiration time.Duration
	cache      *cache.Cache[T]
}

func NewLatest[T any](key func(T) string, expiration time.Duration) *Latest[T] {
	client := gocache.New(expiration, 2*expiration)
	return &Latest[T]{
		key:        key,
		expiration: expiration,
		cache:      cache.New[T](go_cache.NewGoCache(client)),
	}
}

func (l *Latest[T]) Name() string {
	return "Latest"
}

func (l *Latest[T]) Update(state T) error {
	timeout, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	key := l.key(state)
	if err := l.cache.Set(timeout, key, state, store.WithExpiration(l.expiration)); err != nil {
		return xerror.Wrapf(err, xerror.Cache, "cache latest state of %s failed", key)
	}
	return nil
}

// Get returns false when nothing was cached for key or the entry expired.
func (l *Latest[T]) Get(key string) (T, bool, error) {
	timeout, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	value, err := l.cache.Get(timeout, key)
	if err != nil {
		var zero T
		var notFound *store.NotFound
		if errors.As(err, &notFound) {
			return zero, false, nil
		}
		return zero, false, xerror.Wrapf(err, xerror.Cache, "get latest state of %s failed", key)
	}
	return value, true, nil
}
