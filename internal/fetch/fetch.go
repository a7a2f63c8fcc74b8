// Package fetch holds the bookkeeping shared by remote lookups: request
// sequencing for stale-response rejection and a reference-counted busy signal.
package fetch

import (
	"sync"
	"sync/atomic"
)

// Sequence hands out strictly increasing request numbers. Only the most
// recently issued number is considered current.
type Sequence struct {
	latest atomic.Uint64
}

// Next allocates a new request number.
func (s *Sequence) Next() uint64 {
	return s.latest.Add(1)
}

// Latest returns the most recently issued number, zero if none.
func (s *Sequence) Latest() uint64 {
	return s.latest.Load()
}

// IsLatest reports whether n is the most recently issued number.
func (s *Sequence) IsLatest(n uint64) bool {
	return n != 0 && n == s.latest.Load()
}

// Busy counts outstanding requests across every lookup that shares it. It is
// active until the last outstanding request finishes.
type Busy struct {
	mu       sync.Mutex
	count    int
	onChange func(count int)
}

// NewBusy returns a tracker that reports every count change to onChange.
func NewBusy(onChange func(count int)) *Busy {
	return &Busy{onChange: onChange}
}

// Acquire marks one request outstanding. The returned release is safe to call
// more than once; only the first call counts. Defer it right away so no error
// path can skip it.
func (b *Busy) Acquire() (release func()) {
	b.add(1)
	var once sync.Once
	return func() {
		once.Do(func() { b.add(-1) })
	}
}

// Active reports whether any request is outstanding.
func (b *Busy) Active() bool {
	return b.Count() > 0
}

// Count returns the number of outstanding requests.
func (b *Busy) Count() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func (b *Busy) add(delta int) {
	b.mu.Lock()
	b.count += delta
	if b.count < 0 {
		b.count = 0
	}
	count := b.count
	notify := b.onChange
	b.mu.Unlock()

	if notify != nil {
		notify(count)
	}
}
