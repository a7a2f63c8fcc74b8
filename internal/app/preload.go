package app

import (
	"context"
	"fmt"
	"time"

	"github.com/tommylowry/patriot-center/internal/filter"
	"github.com/tommylowry/patriot-center/internal/patriot"
	"github.com/tommylowry/patriot-center/internal/state"
	"github.com/tommylowry/patriot-center/internal/ui"
)

// preload fills the store for the starting filter so the first frame has
// rows. Failures are recorded in the store and returned for logging.
func preload(ctx context.Context, store *state.Store, source ui.PlayersSource, s filter.State, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	players, err := source.FetchAggregatedPlayers(ctx, patriot.PlayersQuery{Year: s.Year, Week: s.Week, Manager: s.Manager})
	if err != nil {
		err = fmt.Errorf("fetch players: %w", err)
	}
	store.Update(s, players, err)
	return err
}
