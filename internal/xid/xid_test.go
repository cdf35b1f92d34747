package xid

import (
	"sync"
	"testing"
)

func TestNextIsMonotonic(t *testing.T) {
	prev := Next()
	for i := 0; i < 100; i++ {
		id := Next()
		if id <= prev {
			t.Fatalf("expected strictly increasing ids, got %d after %d", id, prev)
		}
		prev = id
	}
}

func TestNextIsUniqueUnderConcurrency(t *testing.T) {
	const n = 200
	ids := make(chan int64, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- Next()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
}
