// Package cache is an in-process TTL cache for read-mostly catalog data.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/platform/resilience"
)

// sweepEvery is how many writes pass between scans for expired entries.
const sweepEvery = 64

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) live(now time.Time) bool {
	return e.expiresAt.IsZero() || now.Before(e.expiresAt)
}

// Store maps keys to values for ttl. A zero ttl never expires. Concurrent
// misses on one key share a single load.
type Store struct {
	ttl    time.Duration
	now    func() time.Time
	flight resilience.Flight[any]

	mu      sync.RWMutex
	entries map[string]entry
	writes  int
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Len counts stored entries, expired ones included until the next sweep.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !e.live(s.now()) {
		return nil, false
	}
	return e.value, true
}

func (s *Store) set(key string, value any) {
	now := s.now()
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
	s.writes++
	if s.writes%sweepEvery != 0 {
		return
	}
	for k, existing := range s.entries {
		if !existing.live(now) {
			delete(s.entries, k)
		}
	}
}

// GetOrLoad returns the cached value or runs loader once for all concurrent
// callers. Loader errors are not cached. A nil Store always loads.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, errors.New("cache: loader is required")
	}
	if s == nil || key == "" {
		return loader(ctx)
	}
	if value, ok := s.get(key); ok {
		return value, nil
	}

	value, _, err := s.flight.Do(ctx, key, func() (any, error) {
		if cached, ok := s.get(key); ok {
			return cached, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.set(key, loaded)
		return loaded, nil
	})
	return value, err
}

// Load is the typed form of GetOrLoad.
func Load[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	value, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cache: key %s holds %T", key, value)
	}
	return typed, nil
}
