package ui

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tommylowry/patriot-center/internal/fetch"
	"github.com/tommylowry/patriot-center/internal/filter"
	"github.com/tommylowry/patriot-center/internal/location"
	"github.com/tommylowry/patriot-center/internal/options"
	"github.com/tommylowry/patriot-center/internal/patriot"
	"github.com/tommylowry/patriot-center/internal/syncctl"
)

type fakeAPI struct {
	mu           sync.Mutex
	optionsCalls []patriot.OptionsQuery
	playerCalls  []patriot.PlayersQuery
	playersErr   error
}

func (f *fakeAPI) FetchValidOptions(_ context.Context, q patriot.OptionsQuery) (patriot.ValidOptions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.optionsCalls = append(f.optionsCalls, q)
	return patriot.ValidOptions{
		Years:     patriot.Values{"2025", "2024", "2023"},
		Weeks:     patriot.Values{"1", "2", "3"},
		Managers:  patriot.Values{"Tommy", "Anthony"},
		Positions: patriot.Values{"QB", "RB", "WR"},
	}, nil
}

func (f *fakeAPI) FetchAggregatedPlayers(_ context.Context, q patriot.PlayersQuery) ([]patriot.AggregatedPlayer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playerCalls = append(f.playerCalls, q)
	if f.playersErr != nil {
		return nil, f.playersErr
	}
	return []patriot.AggregatedPlayer{
		{Player: "Josh Allen", Position: "QB", TotalPoints: 300, NumStarts: 15},
		{Player: "Bijan Robinson", Position: "RB", TotalPoints: 250, NumStarts: 10},
	}, nil
}

func (f *fakeAPI) lastPlayers() patriot.PlayersQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playerCalls[len(f.playerCalls)-1]
}

func newTestModel(t *testing.T, raw string) (Model, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	queue := &syncctl.Queue{}
	ctrl := syncctl.New(syncctl.Options{
		Codec:     location.NewCodec("2025"),
		History:   location.NewHistory(location.ParseLocation(raw)),
		Scheduler: queue,
	})
	busy := &fetch.Busy{}
	m := New(Options{
		Controller: ctrl,
		Queue:      queue,
		Resolver:   options.New(options.Config{Source: api, Busy: busy}),
		Players:    api,
		Busy:       busy,
		Season:     "2025",
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m = drive(t, m, m.Init())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), api
}

// drive executes cmd and feeds every message it yields back into the model.
// Commands that do not return promptly (timers) are skipped.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		next, c := m.Update(msg)
		m = drive(t, next.(Model), c)
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return drive(t, next.(Model), cmd)
}

func TestModel_InitAppliesLocationWithoutPush(t *testing.T) {
	m, api := newTestModel(t, "?year=2024&manager=Tommy")

	want := filter.State{Year: "2024", Manager: "Tommy", Position: filter.PositionAll}
	if got := m.state(); got != want {
		t.Fatalf("state = %#v, want %#v", got, want)
	}
	if got := m.ctrl.History().Len(); got != 1 {
		t.Fatalf("history len = %d, want 1", got)
	}
	if m.ctrl.Phase() != syncctl.PhaseIdle {
		t.Fatalf("phase = %v, want idle after flush", m.ctrl.Phase())
	}
	if got := api.lastPlayers(); got != (patriot.PlayersQuery{Year: "2024", Manager: "Tommy"}) {
		t.Fatalf("players query = %#v", got)
	}
	if len(m.options.Years) != 3 {
		t.Fatalf("options not committed: %#v", m.options)
	}
	if len(m.table.Rows()) != 2 {
		t.Fatalf("table rows = %d, want 2", len(m.table.Rows()))
	}
	if m.busy.Active() {
		t.Fatalf("busy still active after every lookup returned")
	}
}

func TestModel_FilterKeyPushesAndBackRestores(t *testing.T) {
	m, api := newTestModel(t, "")

	m = press(t, m, "p")
	if got := m.state().Position; got != "QB" {
		t.Fatalf("position = %q, want QB", got)
	}
	if got := m.locationString(); got != "?position=QB" {
		t.Fatalf("location = %q, want ?position=QB", got)
	}
	if got := m.ctrl.History().Len(); got != 2 {
		t.Fatalf("history len = %d, want 2", got)
	}
	if len(m.table.Rows()) != 1 {
		t.Fatalf("table rows = %d, want only the QB", len(m.table.Rows()))
	}

	calls := len(api.playerCalls)
	m = press(t, m, "[")
	if got := m.state().Position; got != filter.PositionAll {
		t.Fatalf("position after back = %q, want ALL", got)
	}
	if got := m.ctrl.History().Len(); got != 2 {
		t.Fatalf("back pushed an entry: len = %d", got)
	}
	if len(api.playerCalls) != calls+1 {
		t.Fatalf("back did not reload players")
	}

	m = press(t, m, "]")
	if got := m.state().Position; got != "QB" {
		t.Fatalf("position after forward = %q, want QB", got)
	}
}

func TestModel_WeekRequiresSeason(t *testing.T) {
	m, _ := newTestModel(t, "?year=ALL")

	m = press(t, m, "w")
	if m.state().Week != 0 {
		t.Fatalf("week = %d, want 0 without a season", m.state().Week)
	}
	if m.status == "" {
		t.Fatalf("expected a status hint")
	}
	if m.ctrl.History().Len() != 1 {
		t.Fatalf("week edit without season pushed history")
	}

	m = press(t, m, "y")
	if got := m.state().Year; got != "2025" {
		t.Fatalf("year = %q, want 2025", got)
	}
	m = press(t, m, "w")
	if got := m.state().Week; got != 1 {
		t.Fatalf("week = %d, want 1", got)
	}
	if got := m.locationString(); got != "?week=1" {
		t.Fatalf("location = %q, want ?week=1", got)
	}
}

func TestModel_OpenPrompt(t *testing.T) {
	m, _ := newTestModel(t, "")

	m = press(t, m, "o")
	if !m.prompting {
		t.Fatalf("prompt not opened")
	}
	m.prompt.SetValue("?year=2023&position=RB")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = drive(t, next.(Model), cmd)

	if m.prompting {
		t.Fatalf("prompt still open after enter")
	}
	want := filter.State{Year: "2023", Position: "RB"}
	if got := m.state(); got != want {
		t.Fatalf("state = %#v, want %#v", got, want)
	}
	if got := m.ctrl.History().Len(); got != 2 {
		t.Fatalf("history len = %d, want 2", got)
	}
}

func TestModel_PromptEscapeCancels(t *testing.T) {
	m, _ := newTestModel(t, "")
	m = press(t, m, "o")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.prompting {
		t.Fatalf("escape did not close the prompt")
	}
	if m.ctrl.History().Len() != 1 {
		t.Fatalf("cancelled prompt changed history")
	}
}

func TestModel_StalePlayersDropped(t *testing.T) {
	m, _ := newTestModel(t, "")

	stale := m.seq.Latest()
	m.seq.Next()

	next, _ := m.Update(playersMsg{seq: stale, players: []patriot.AggregatedPlayer{{Player: "old"}}})
	m = next.(Model)
	for _, row := range m.table.Rows() {
		if row[0] == "old" {
			t.Fatalf("stale players response was applied")
		}
	}
}

func TestModel_PlayersErrorKeepsRows(t *testing.T) {
	m, api := newTestModel(t, "")
	api.playersErr = errors.New("down")

	m = press(t, m, "r")
	if len(m.table.Rows()) != 2 {
		t.Fatalf("rows = %d, want previous 2", len(m.table.Rows()))
	}
	if m.snapshot.LastError == nil {
		t.Fatalf("LastError = nil, want error")
	}
	if m.statusLine() == "" {
		t.Fatalf("status line should report the error")
	}
}

func TestModel_SortIsLocal(t *testing.T) {
	m, _ := newTestModel(t, "")
	before := m.locationString()
	pushes := m.ctrl.History().Len()

	m = press(t, m, "s")
	if m.sortBy != sortPerStart {
		t.Fatalf("sortBy = %v, want Pts/GS", m.sortBy)
	}
	if got := m.table.Rows()[0][0]; got != "Bijan Robinson" {
		t.Fatalf("first row = %q, want the higher points-per-start player", got)
	}
	if m.locationString() != before || m.ctrl.History().Len() != pushes {
		t.Fatalf("sorting changed the location")
	}
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t, "")

	m = press(t, m, "?")
	if !m.showHelp {
		t.Fatalf("help not shown")
	}
	if m.View() == "" {
		t.Fatalf("help view empty")
	}
	m = press(t, m, "x")
	if m.showHelp {
		t.Fatalf("any key should close help")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if cmd == nil {
		t.Fatalf("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit command did not return tea.QuitMsg")
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	m, _ := newTestModel(t, "")
	start := m.theme.Name
	m = press(t, m, "T")
	if m.theme.Name == start {
		t.Fatalf("theme did not change")
	}
}
