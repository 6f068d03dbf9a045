package sessionoverride

import "sync"

// keyLock stripes a mutex per session key so concurrent updates on the
// same key serialize while different keys proceed in parallel (spec.md
// §5, "Concurrent updates to the same key must serialize..."). The
// teacher's stores use one global sync.RWMutex per table; a single lock
// here would serialize unrelated sessions against each other, so this
// is narrowed to per-key granularity instead.
type keyLock struct {
	locks sync.Map // string -> *sync.Mutex
}

func (k *keyLock) lock(key string) func() {
	v, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
