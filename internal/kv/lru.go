package kv

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type lruEntry struct {
	value   []byte
	expires time.Time
}

// LRU is a bounded in-process Store for cached data. The least recently used
// key is evicted past size, and entries older than ttl read as missing. A zero
// ttl keeps entries until eviction.
type LRU struct {
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewLRU(size int, ttl time.Duration) (*LRU, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRU{cache: c, ttl: ttl, now: time.Now}, nil
}

func (s *LRU) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	e := v.(lruEntry)
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		s.cache.Remove(key)
		return nil, ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

func (s *LRU) Set(_ context.Context, key string, value []byte) error {
	e := lruEntry{value: append([]byte(nil), value...)}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.cache.Add(key, e)
	return nil
}

func (s *LRU) Delete(_ context.Context, key string) error {
	s.cache.Remove(key)
	return nil
}

// Len is the number of resident entries, expired ones included.
func (s *LRU) Len() int { return s.cache.Len() }
