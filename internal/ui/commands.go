package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tommylowry/patriot-center/internal/filter"
	"github.com/tommylowry/patriot-center/internal/options"
	"github.com/tommylowry/patriot-center/internal/patriot"
)

// Messages

type tickMsg time.Time

// flushMsg runs the controller's deferred callbacks.
type flushMsg struct{}

type optionsMsg options.Result

type playersMsg struct {
	seq     uint64
	filter  filter.State
	players []patriot.AggregatedPlayer
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func flushCmd() tea.Msg { return flushMsg{} }

// resolveCmd allocates the request number now, so issue order decides which
// response wins regardless of arrival order.
func (m Model) resolveCmd(s filter.State) tea.Cmd {
	if m.resolver == nil {
		return nil
	}
	resolver := m.resolver
	req := resolver.Begin(s)
	ctx := m.ctx
	return func() tea.Msg {
		return optionsMsg(resolver.Run(ctx, req))
	}
}

func (m Model) loadPlayersCmd(s filter.State) tea.Cmd {
	if m.players == nil {
		return nil
	}
	source, busy := m.players, m.busy
	ctx, timeout := m.ctx, m.timeout
	seq := m.seq.Next()
	query := patriot.PlayersQuery{Year: s.Year, Week: s.Week, Manager: s.Manager}

	// Acquired at issue time so the spinner's first tick already sees it.
	release := busy.Acquire()
	return func() tea.Msg {
		defer release()

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		players, err := source.FetchAggregatedPlayers(ctx, query)
		if err != nil {
			err = fmt.Errorf("fetch players: %w", err)
		}
		return playersMsg{seq: seq, filter: s, players: players, err: err}
	}
}

func keyMatches(msg tea.KeyMsg, bindings ...key.Binding) bool {
	return key.Matches(msg, bindings...)
}

// stepFor returns +1 when msg matches forward, -1 otherwise.
func stepFor(msg tea.KeyMsg, forward key.Binding) int {
	if key.Matches(msg, forward) {
		return 1
	}
	return -1
}
