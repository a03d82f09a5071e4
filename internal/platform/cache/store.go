package cache

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/courtflow/nba-stats-api/internal/platform/resilience"
)

const defaultMaxEntries = 1024

type entry struct {
	key       string
	value     any
	expiresAt time.Time
}

// Store is an in-process read-through cache with LRU eviction. A zero
// ttl means entries never expire and are only displaced by eviction.
type Store struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
	ttl        time.Duration
	flight     resilience.SingleFlight
}

func NewStore(maxEntries int, ttl time.Duration) *Store {
	if maxEntries < 1 {
		maxEntries = defaultMaxEntries
	}

	return &Store{
		entries:    make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		return nil, false
	}

	e := el.Value.(*entry)
	if s.ttl > 0 && !e.expiresAt.After(time.Now()) {
		s.removeLocked(el)
		return nil, false
	}

	s.order.MoveToFront(el)
	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[key]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.expiresAt = expiresAt
		s.order.MoveToFront(el)
		return
	}

	el := s.order.PushFront(&entry{key: key, value: value, expiresAt: expiresAt})
	s.entries[key] = el

	for s.order.Len() > s.maxEntries {
		s.removeLocked(s.order.Back())
	}
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.entries[key]; ok {
		s.removeLocked(el)
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// GetOrLoad returns the cached value for key, or runs loader once among
// concurrent callers and caches the result. Loader failures are never
// cached. The loader runs detached from the caller's cancellation so
// that a departed requester does not abort work shared with others.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(loadCtx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(loadCtx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(loadCtx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Store) removeLocked(el *list.Element) {
	if el == nil {
		return
	}
	e := el.Value.(*entry)
	s.order.Remove(el)
	delete(s.entries, e.key)
}
