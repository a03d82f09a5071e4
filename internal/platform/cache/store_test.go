package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(64, 0)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(64, 0)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	store := NewStore(64, 0)
	var calls atomic.Int32
	boom := errors.New("upstream down")

	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, boom
		}
		return "recovered", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}

	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}
	if got, _ := v.(string); got != "recovered" {
		t.Fatalf("expected retry to hit the loader, got %v", v)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	store := NewStore(2, 0)
	ctx := context.Background()

	store.Set(ctx, "a", 1)
	store.Set(ctx, "b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	if _, ok := store.Get(ctx, "a"); !ok {
		t.Fatal("expected a to be cached")
	}

	store.Set(ctx, "c", 3)

	if _, ok := store.Get(ctx, "b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := store.Get(ctx, "a"); !ok {
		t.Fatal("expected a to survive eviction")
	}
	if _, ok := store.Get(ctx, "c"); !ok {
		t.Fatal("expected c to be cached")
	}
	if got := store.Len(); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
}

func TestStore_GetOrLoad_SurvivesCallerCancellation(t *testing.T) {
	t.Parallel()

	store := NewStore(64, 0)
	started := make(chan struct{})
	var loaderCtxErr error

	ctx, cancel := context.WithCancel(context.Background())
	loader := func(lctx context.Context) (any, error) {
		close(started)
		time.Sleep(30 * time.Millisecond)
		loaderCtxErr = lctx.Err()
		return "done", nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = store.GetOrLoad(ctx, "k", loader)
	}()

	<-started
	cancel()
	<-done

	if loaderCtxErr != nil {
		t.Fatalf("loader context should stay live after caller cancel, got %v", loaderCtxErr)
	}
	if v, ok := store.Get(context.Background(), "k"); !ok || v != "done" {
		t.Fatalf("expected completed load to be cached, got %v (%t)", v, ok)
	}
}

func TestStore_TTLExpiresEntries(t *testing.T) {
	t.Parallel()

	store := NewStore(64, 10*time.Millisecond)
	ctx := context.Background()

	store.Set(ctx, "k", "v")
	if _, ok := store.Get(ctx, "k"); !ok {
		t.Fatal("expected fresh entry to be readable")
	}

	time.Sleep(20 * time.Millisecond)
	if v, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire, got %v", v)
	}
}

func TestStore_GetOrLoad_RequiresLoader(t *testing.T) {
	t.Parallel()

	store := NewStore(64, 0)
	if _, err := store.GetOrLoad(context.Background(), "k", nil); err == nil {
		t.Fatal("expected error for nil loader")
	} else if fmt.Sprint(err) == "" {
		t.Fatal("expected descriptive error")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
