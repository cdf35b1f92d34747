package xid

import (
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	last int64
)

// Next returns a unique millisecond-resolution id. Two calls inside the same
// millisecond get strictly increasing values, so ids stay unique within one
// process even under a burst of allocations.
func Next() int64 {
	mu.Lock()
	defer mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= last {
		id = last + 1
	}
	last = id
	return id
}
