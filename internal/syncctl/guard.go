package syncctl

import "sync"

// Scheduler runs callbacks after the current synchronous work has finished.
type Scheduler interface {
	Schedule(fn func())
}

// Queue is a Scheduler that holds callbacks until Flush is called. Hosts flush
// it on their next loop turn; the UI does so with a follow-up message.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// Schedule enqueues fn.
func (q *Queue) Schedule(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Pending reports whether callbacks are waiting.
func (q *Queue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending) > 0
}

// Flush runs the callbacks queued before the call. Callbacks scheduled while
// flushing wait for the next Flush. It returns how many ran.
func (q *Queue) Flush() int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Guard is the "location update in progress" flag. Only the release scheduled
// by the latest Engage clears it, so overlapping location updates keep the
// guard held until the last one settles.
type Guard struct {
	sched      Scheduler
	engaged    bool
	generation uint64
}

// NewGuard returns a guard that defers releases through sched.
func NewGuard(sched Scheduler) *Guard {
	return &Guard{sched: sched}
}

// Engage sets the flag. Calling it while engaged is harmless.
func (g *Guard) Engage() {
	g.engaged = true
	g.generation++
}

// IsEngaged reads the flag.
func (g *Guard) IsEngaged() bool {
	return g.engaged
}

// ScheduleRelease clears the flag on the scheduler's next turn. Without a
// scheduler the guard stays engaged until Release.
func (g *Guard) ScheduleRelease() {
	if g.sched == nil {
		return
	}
	gen := g.generation
	g.sched.Schedule(func() {
		if g.generation == gen {
			g.engaged = false
		}
	})
}

// Release clears the flag immediately. Used on teardown so a release that
// never fires cannot leave the guard held.
func (g *Guard) Release() {
	g.engaged = false
	g.generation++
}
