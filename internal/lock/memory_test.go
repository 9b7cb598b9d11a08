package lock

import (
	"context"
	"sync"
	"testing"
)

func TestKeyedMutex(t *testing.T) {
	ctx := context.Background()

	t.Run("Given concurrent holders of one key Then critical sections never overlap", func(t *testing.T) {
		k := NewKeyedMutex()
		var inside, maxInside int
		var mu sync.Mutex
		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				release, err := k.Acquire(ctx, "order:1")
				if err != nil {
					t.Errorf("acquire: %v", err)
					return
				}
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				release()
			}()
		}
		wg.Wait()

		if maxInside != 1 {
			t.Fatalf("max concurrent holders = %d, want 1", maxInside)
		}
		if len(k.entries) != 0 {
			t.Fatalf("entries leaked: %d", len(k.entries))
		}
	})

	t.Run("Given different keys Then holders do not block each other", func(t *testing.T) {
		k := NewKeyedMutex()
		releaseA, err := k.Acquire(ctx, "order:1")
		if err != nil {
			t.Fatalf("acquire a: %v", err)
		}
		defer releaseA()

		releaseB, err := k.Acquire(ctx, "order:2")
		if err != nil {
			t.Fatalf("acquire b: %v", err)
		}
		releaseB()
	})

	t.Run("Given a cancelled context Then acquire fails", func(t *testing.T) {
		k := NewKeyedMutex()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := k.Acquire(cancelled, "order:1"); err == nil {
			t.Fatal("expected a context error")
		}
	})

	t.Run("Given a double release Then it is a no-op", func(t *testing.T) {
		k := NewKeyedMutex()
		release, err := k.Acquire(ctx, "order:1")
		if err != nil {
			t.Fatalf("acquire: %v", err)
		}
		release()
		release() // must not panic or unlock someone else's hold
	})
}
