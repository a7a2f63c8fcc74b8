// Package options resolves which filter values are currently legal for a
// partial selection, using the remote valid-options endpoint.
package options

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/tommylowry/patriot-center/internal/fetch"
	"github.com/tommylowry/patriot-center/internal/filter"
	"github.com/tommylowry/patriot-center/internal/patriot"
)

// Source is the remote collaborator consulted by a Resolver.
type Source interface {
	FetchValidOptions(ctx context.Context, query patriot.OptionsQuery) (patriot.ValidOptions, error)
}

// Outcome classifies what Commit did with a result.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeStale
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStale:
		return "stale"
	case OutcomeFailed:
		return "error"
	default:
		return "accepted"
	}
}

// Recorder observes resolver outcomes.
type Recorder interface {
	OptionsResolved(outcome Outcome, elapsed time.Duration)
}

// Config configures a Resolver.
type Config struct {
	Source Source
	// Busy is shared by every lookup feeding the same loading indicator.
	// A private tracker is used when nil.
	Busy *fetch.Busy
	// Timeout bounds each remote call; zero means no extra bound.
	Timeout time.Duration
	// ClearOnError empties the option set when the latest request fails
	// instead of keeping the previous one.
	ClearOnError bool
	Recorder     Recorder
}

// Request is one issued lookup.
type Request struct {
	Seq   uint64
	State filter.State
	Query patriot.OptionsQuery
}

// Result is the raw outcome of running a Request.
type Result struct {
	Seq     uint64
	State   filter.State
	Payload patriot.ValidOptions
	Err     error
	Elapsed time.Duration
}

// Resolver recomputes legal option sets and commits only the result of the
// most recently issued request, whatever order responses arrive in. It never
// touches the filter state it was asked about.
//
// Begin, Run and Commit are split so a host loop can run the remote call off
// its own goroutine and commit on return. Resolve chains them.
type Resolver struct {
	id           string
	source       Source
	busy         *fetch.Busy
	timeout      time.Duration
	clearOnError bool
	recorder     Recorder

	seq fetch.Sequence

	mu      sync.Mutex
	current Set
	err     error
}

// New builds a Resolver.
func New(cfg Config) *Resolver {
	busy := cfg.Busy
	if busy == nil {
		busy = &fetch.Busy{}
	}
	return &Resolver{
		id:           uuid.NewString(),
		source:       cfg.Source,
		busy:         busy,
		timeout:      cfg.Timeout,
		clearOnError: cfg.ClearOnError,
		recorder:     cfg.Recorder,
	}
}

// ID identifies this resolver instance in logs.
func (r *Resolver) ID() string { return r.id }

// Busy returns the shared busy tracker.
func (r *Resolver) Busy() *fetch.Busy { return r.busy }

// Begin allocates the next sequence number for s.
func (r *Resolver) Begin(s filter.State) Request {
	s = s.Normalize()
	return Request{
		Seq:   r.seq.Next(),
		State: s,
		Query: QueryFor(s),
	}
}

// Run performs the remote call. The busy signal is held for exactly the
// duration of the call, including when it fails.
func (r *Resolver) Run(ctx context.Context, req Request) (res Result) {
	release := r.busy.Acquire()
	defer release()

	res = Result{Seq: req.Seq, State: req.State}
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	if r.source == nil {
		res.Err = fmt.Errorf("options source is nil")
		return res
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	payload, err := r.source.FetchValidOptions(ctx, req.Query)
	if err != nil {
		res.Err = fmt.Errorf("fetch valid options: %w", err)
		return res
	}
	res.Payload = payload
	return res
}

// Commit stores res if it answers the latest request. Stale results are
// dropped silently. It reports whether res was the latest.
func (r *Resolver) Commit(res Result) bool {
	if !r.seq.IsLatest(res.Seq) {
		glog.V(2).Infof("options[%s]: dropped stale response %d (latest %d)", r.id, res.Seq, r.seq.Latest())
		r.record(OutcomeStale, res.Elapsed)
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if res.Err != nil {
		r.err = res.Err
		if r.clearOnError {
			r.current = Set{}
		}
		glog.Warningf("options[%s]: %v", r.id, res.Err)
		r.record(OutcomeFailed, res.Elapsed)
		return true
	}

	r.current = Normalize(res.Payload)
	r.err = nil
	r.record(OutcomeAccepted, res.Elapsed)
	return true
}

// Resolve runs a full lookup for s and returns the committed set afterwards.
// When a newer request was issued meanwhile, the returned set is whatever is
// committed at that point.
func (r *Resolver) Resolve(ctx context.Context, s filter.State) (Set, error) {
	req := r.Begin(s)
	r.Commit(r.Run(ctx, req))
	return r.Options(), r.Err()
}

// Options returns a copy of the committed set.
func (r *Resolver) Options() Set {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Clone()
}

// Err returns the error of the latest committed request, if any.
func (r *Resolver) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Resolver) record(outcome Outcome, elapsed time.Duration) {
	if r.recorder != nil {
		r.recorder.OptionsResolved(outcome, elapsed)
	}
}

// QueryFor converts a filter state into the valid-options query.
func QueryFor(s filter.State) patriot.OptionsQuery {
	s = s.Normalize()
	q := patriot.OptionsQuery{
		Year:    s.Year,
		Week:    s.Week,
		Manager: s.Manager,
	}
	if s.Position != filter.PositionAll {
		q.Position = s.Position
	}
	return q
}
