package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/tommylowry/patriot-center/internal/filter"
	"github.com/tommylowry/patriot-center/internal/patriot"
)

// Snapshot is the latest player data available to the UI.
type Snapshot struct {
	Filter              filter.State
	Players             []patriot.AggregatedPlayer
	HasPlayers          bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline reports whether the API has been unreachable for several loads.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored players for f. When err is non-nil the previous
// players are kept and only the error is recorded.
func (s *Store) Update(f filter.State, players []patriot.AggregatedPlayer, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Filter = f
	s.snapshot.Players = clonePlayers(players)
	s.snapshot.HasPlayers = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Players = clonePlayers(s.snapshot.Players)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func clonePlayers(items []patriot.AggregatedPlayer) []patriot.AggregatedPlayer {
	if len(items) == 0 {
		return nil
	}
	dup := make([]patriot.AggregatedPlayer, len(items))
	copy(dup, items)
	return dup
}
