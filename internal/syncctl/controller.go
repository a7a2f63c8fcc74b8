package syncctl

import (
	"github.com/golang/glog"

	"github.com/tommylowry/patriot-center/internal/filter"
	"github.com/tommylowry/patriot-center/internal/location"
)

// Phase is the controller's synchronization state.
type Phase int

const (
	// PhaseIdle means user edits publish to the history.
	PhaseIdle Phase = iota
	// PhaseApplyingLocation means a location-driven update has not settled yet.
	PhaseApplyingLocation
)

func (p Phase) String() string {
	if p == PhaseApplyingLocation {
		return "applying-location"
	}
	return "idle"
}

// Reasons passed to Recorder.PublishSuppressed.
const (
	SuppressGuard     = "guard"
	SuppressUnchanged = "unchanged"
	SuppressClosed    = "closed"
)

// Recorder observes controller activity.
type Recorder interface {
	HistoryPushed()
	PublishSuppressed(reason string)
	LocationApplied()
}

type nopRecorder struct{}

func (nopRecorder) HistoryPushed()           {}
func (nopRecorder) PublishSuppressed(string) {}
func (nopRecorder) LocationApplied()         {}

// Options configure a Controller.
type Options struct {
	Codec   location.Codec
	History *location.History
	// Scheduler runs the deferred guard release. It is required: without
	// it the guard would never drop and user edits would not publish.
	Scheduler Scheduler
	Recorder  Recorder
}

// Controller keeps a filter.State and a location.History in step.
//
// Location changes (mount, back, forward, opening a link) are decoded into
// the state with the guard engaged, so the publish step skips them. User edits
// run with the guard released and publish a new history entry when the
// encoded location differs from the current one.
//
// A Controller is owned by a single loop and is not safe for concurrent use.
type Controller struct {
	codec    location.Codec
	policy   location.Policy
	history  *location.History
	guard    *Guard
	recorder Recorder

	state  filter.State
	closed bool
}

// New builds a controller. The state starts at the codec's default until
// Mount applies the current history entry. It panics when opts.Scheduler is
// nil.
func New(opts Options) *Controller {
	if opts.Scheduler == nil {
		panic("syncctl: Options.Scheduler is nil")
	}
	history := opts.History
	if history == nil {
		history = location.NewHistory(location.Location{})
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Controller{
		codec:    opts.Codec,
		history:  history,
		guard:    NewGuard(opts.Scheduler),
		recorder: recorder,
		state:    opts.Codec.Decode(location.Location{}),
	}
}

// State returns the canonical filter state.
func (c *Controller) State() filter.State { return c.state }

// Location returns the current history entry.
func (c *Controller) Location() location.Location { return c.history.Current() }

// History exposes the underlying stack for read-only use.
func (c *Controller) History() *location.History { return c.history }

// Phase reports whether a location-driven update is still settling.
func (c *Controller) Phase() Phase {
	if c.guard.IsEngaged() {
		return PhaseApplyingLocation
	}
	return PhaseIdle
}

// Mount applies the current history entry, rewriting it in place to its
// canonical form first.
func (c *Controller) Mount() filter.State {
	loc := c.canonical(c.history.Current())
	if !loc.Equal(c.history.Current()) {
		c.history.Replace(loc)
	}
	c.applyLocation(loc)
	return c.state
}

// Back steps the history back and applies the entry it lands on.
func (c *Controller) Back() bool {
	if c.closed {
		return false
	}
	loc, ok := c.history.Back()
	if !ok {
		return false
	}
	c.applyLocation(loc)
	return true
}

// Forward steps the history forward and applies the entry it lands on.
func (c *Controller) Forward() bool {
	if c.closed {
		return false
	}
	loc, ok := c.history.Forward()
	if !ok {
		return false
	}
	c.applyLocation(loc)
	return true
}

// Open navigates to a typed or bookmarked link. The link is reduced to its
// canonical form, pushed unless it matches the current entry, and applied.
func (c *Controller) Open(raw string) filter.State {
	if c.closed {
		return c.state
	}
	loc := c.canonical(location.ParseLocation(raw))
	if c.policy.Decide(c.history.Current(), loc) == location.ActionPush {
		c.history.Push(loc)
	}
	c.applyLocation(loc)
	return c.state
}

// Set commits a user-driven state and runs the publish step. It reports
// whether a history entry was pushed.
func (c *Controller) Set(s filter.State) bool {
	c.state = s.Normalize()
	return c.publish()
}

// Update applies fn to the current state as a user-driven edit.
func (c *Controller) Update(fn func(filter.State) filter.State) bool {
	return c.Set(fn(c.state))
}

// Close releases the guard and stops the controller from reacting further.
func (c *Controller) Close() {
	c.guard.Release()
	c.closed = true
}

// canonical drops unknown keys and malformed values so history entries only
// hold what Encode produces.
func (c *Controller) canonical(loc location.Location) location.Location {
	return c.codec.Encode(c.codec.Decode(loc))
}

func (c *Controller) applyLocation(loc location.Location) {
	if c.closed {
		return
	}
	c.guard.Engage()
	c.state = c.codec.Decode(loc)
	c.recorder.LocationApplied()
	glog.V(1).Infof("sync: applied location %q -> %s", loc.String(), c.state)
	c.publish()
	c.guard.ScheduleRelease()
}

func (c *Controller) publish() bool {
	if c.closed {
		c.recorder.PublishSuppressed(SuppressClosed)
		return false
	}
	if c.guard.IsEngaged() {
		c.recorder.PublishSuppressed(SuppressGuard)
		return false
	}
	next := c.codec.Encode(c.state)
	if c.policy.Decide(c.history.Current(), next) != location.ActionPush {
		c.recorder.PublishSuppressed(SuppressUnchanged)
		return false
	}
	c.history.Push(next)
	c.recorder.HistoryPushed()
	glog.V(1).Infof("sync: pushed %q (%d entries)", next.String(), c.history.Len())
	return true
}
