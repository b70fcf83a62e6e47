package rx

import (
	"fmt"
	"sync"

	"github.com/bluele/gcache"
)

// DefaultCacheSize is the number of compiled patterns the free functions keep.
const DefaultCacheSize = 256

var patternCache = struct {
	sync.RWMutex
	lru gcache.Cache
}{lru: gcache.New(DefaultCacheSize).LRU().Build()}

// SetCacheSize resizes the pattern cache used by the free functions,
// dropping every cached pattern. n <= 0 disables caching.
func SetCacheSize(n int) {
	patternCache.Lock()
	defer patternCache.Unlock()
	if n <= 0 {
		patternCache.lru = nil
	} else {
		patternCache.lru = gcache.New(n).LRU().Build()
	}
	PatternCacheSize.Set(0)
}

// CacheLen returns the number of cached patterns.
func CacheLen() int {
	patternCache.RLock()
	defer patternCache.RUnlock()
	if patternCache.lru == nil {
		return 0
	}
	return patternCache.lru.Len(false)
}

type cacheKey struct {
	pattern string
	config  string
}

// cached returns the compiled pattern for the given options, compiling it on
// a miss. Patterns that do not compile are not cached. A cached pattern keeps
// the logger of the call that compiled it.
func cached(pattern string, opts []Option) (*Regex, error) {
	cfg := newConfig(opts)
	key := cacheKey{
		pattern: pattern,
		config:  fmt.Sprintf("%s/%s/%s", cfg.Engine, cfg.Flags, cfg.Granularity),
	}

	patternCache.RLock()
	lru := patternCache.lru
	patternCache.RUnlock()

	if lru != nil {
		if v, err := lru.Get(key); err == nil {
			PatternCacheHits.Inc()
			return v.(*Regex), nil
		}
	}
	PatternCacheMisses.Inc()

	re, err := compile(pattern, cfg)
	if err != nil {
		return nil, err
	}
	if lru != nil {
		if err := lru.Set(key, re); err != nil {
			cfg.Logger.WithError(err).Warn("caching compiled pattern")
		}
	}
	return re, nil
}
