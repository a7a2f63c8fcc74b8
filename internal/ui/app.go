package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tommylowry/patriot-center/internal/fetch"
	"github.com/tommylowry/patriot-center/internal/filter"
	"github.com/tommylowry/patriot-center/internal/options"
	"github.com/tommylowry/patriot-center/internal/patriot"
	"github.com/tommylowry/patriot-center/internal/prefs"
	"github.com/tommylowry/patriot-center/internal/state"
	"github.com/tommylowry/patriot-center/internal/syncctl"
)

// PlayersSource loads the aggregated player table.
type PlayersSource interface {
	FetchAggregatedPlayers(ctx context.Context, query patriot.PlayersQuery) ([]patriot.AggregatedPlayer, error)
}

// PlayersRecorder observes player loads.
type PlayersRecorder interface {
	PlayersLoaded(err error)
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *syncctl.Controller
	// Queue runs the controller's deferred callbacks; it is flushed on the
	// turn after each controller call.
	Queue    *syncctl.Queue
	Resolver *options.Resolver
	Players  PlayersSource
	Store    *state.Store
	// Busy is shared with the resolver so one spinner covers every lookup.
	Busy     *fetch.Busy
	Recorder PlayersRecorder

	Season          string
	RequestTimeout  time.Duration
	RefreshInterval time.Duration

	ThemeName string
	RowLimit  int
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	ctrl      *syncctl.Controller
	queue     *syncctl.Queue
	resolver  *options.Resolver
	players   PlayersSource
	store     *state.Store
	busy      *fetch.Busy
	seq       *fetch.Sequence
	recorder  PlayersRecorder
	season    string
	timeout   time.Duration
	refresh   time.Duration
	prefsPath string
	rowLimit  int

	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	table   table.Model
	spinner spinner.Model
	prompt  textinput.Model

	showHelp  bool
	prompting bool
	sortBy    sortKey
	status    string

	options  options.Set
	snapshot state.Snapshot
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	busy := opts.Busy
	if busy == nil && opts.Resolver != nil {
		busy = opts.Resolver.Busy()
	}
	if busy == nil {
		busy = &fetch.Busy{}
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	queue := opts.Queue
	if queue == nil {
		queue = &syncctl.Queue{}
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	prompt := textinput.New()
	prompt.Prompt = "open ▸ "
	prompt.Placeholder = "?year=2024&week=3&manager=..."
	prompt.CharLimit = 256

	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		queue:     queue,
		resolver:  opts.Resolver,
		players:   opts.Players,
		store:     store,
		busy:      busy,
		seq:       &fetch.Sequence{},
		recorder:  opts.Recorder,
		season:    opts.Season,
		timeout:   opts.RequestTimeout,
		refresh:   opts.RefreshInterval,
		prefsPath: prefsPath,
		rowLimit:  opts.RowLimit,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		spinner:   sp,
		prompt:    prompt,
		table:     newPlayersTable(),
	}
	m.applyTableTheme()
	m.snapshot = store.Snapshot()
	m.refreshTable()
	return m
}

// Init mounts the controller on its current location and issues the first
// lookups.
func (m Model) Init() tea.Cmd {
	if m.ctrl != nil {
		m.ctrl.Mount()
	}
	cmds := []tea.Cmd{m.reload(), m.flush()}
	if m.refresh > 0 {
		cmds = append(cmds, tickCmd(m.refresh))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeTable()
		return m, nil

	case flushMsg:
		m.queue.Flush()
		return m, nil

	case optionsMsg:
		if m.resolver != nil && m.resolver.Commit(options.Result(msg)) {
			m.options = m.resolver.Options()
		}
		return m, nil

	case playersMsg:
		if !m.seq.IsLatest(msg.seq) {
			return m, nil
		}
		m.store.Update(msg.filter, msg.players, msg.err)
		if m.recorder != nil {
			m.recorder.PlayersLoaded(msg.err)
		}
		m.snapshot = m.store.Snapshot()
		m.refreshTable()
		return m, nil

	case spinner.TickMsg:
		if !m.busy.Active() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		return m, tea.Batch(m.reload(), tickCmd(m.refresh))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	m.status = ""
	k := m.keys

	switch {
	case keyMatches(msg, k.Quit):
		return m, tea.Quit

	case keyMatches(msg, k.Help):
		m.showHelp = true
		return m, nil

	case keyMatches(msg, k.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTableTheme()
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, RowLimit: m.rowLimit})
		}
		return m, nil

	case keyMatches(msg, k.NextYear, k.PrevYear):
		cur := m.state()
		year := cycleString(yearChoices(m.options, cur), cur.Year, stepFor(msg, k.NextYear))
		return m.setFilter(cur.WithYear(year))

	case keyMatches(msg, k.NextWeek, k.PrevWeek):
		cur := m.state()
		if !cur.HasSeason() {
			m.status = "select a season to filter by week"
			return m, nil
		}
		week := cycleInt(weekChoices(m.options, cur), cur.Week, stepFor(msg, k.NextWeek))
		return m.setFilter(cur.WithWeek(week))

	case keyMatches(msg, k.NextManager, k.PrevManager):
		cur := m.state()
		manager := cycleString(managerChoices(m.options, cur), cur.Manager, stepFor(msg, k.NextManager))
		return m.setFilter(cur.WithManager(manager))

	case keyMatches(msg, k.NextPosition, k.PrevPosition):
		cur := m.state()
		position := cycleString(positionChoices(m.options, cur), cur.Position, stepFor(msg, k.NextPosition))
		return m.setFilter(cur.WithPosition(position))

	case keyMatches(msg, k.Reset):
		return m.setFilter(filter.Default(m.season))

	case keyMatches(msg, k.Back):
		if m.ctrl == nil {
			return m, nil
		}
		prev := m.state()
		if !m.ctrl.Back() {
			m.status = "no earlier entry"
			return m, nil
		}
		return m, m.afterSync(prev)

	case keyMatches(msg, k.Forward):
		if m.ctrl == nil {
			return m, nil
		}
		prev := m.state()
		if !m.ctrl.Forward() {
			m.status = "no later entry"
			return m, nil
		}
		return m, m.afterSync(prev)

	case keyMatches(msg, k.Open):
		m.prompting = true
		m.prompt.SetValue(m.locationString())
		m.prompt.CursorEnd()
		return m, m.prompt.Focus()

	case keyMatches(msg, k.Refresh):
		return m, m.reload()

	case keyMatches(msg, k.CycleSort):
		m.sortBy = m.sortBy.next()
		m.refreshTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Confirm):
		m.prompting = false
		m.prompt.Blur()
		if m.ctrl == nil {
			return m, nil
		}
		prev := m.state()
		m.ctrl.Open(strings.TrimSpace(m.prompt.Value()))
		return m, m.afterSync(prev)

	case keyMatches(msg, m.keys.Cancel):
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// setFilter commits a user edit through the controller.
func (m Model) setFilter(next filter.State) (tea.Model, tea.Cmd) {
	if m.ctrl == nil {
		return m, nil
	}
	prev := m.state()
	m.ctrl.Set(next)
	return m, m.afterSync(prev)
}

// afterSync reloads when the filter changed and flushes callbacks the
// controller deferred to the next turn.
func (m Model) afterSync(prev filter.State) tea.Cmd {
	var cmds []tea.Cmd
	if m.state() != prev {
		cmds = append(cmds, m.reload())
	}
	cmds = append(cmds, m.flush())
	return tea.Batch(cmds...)
}

func (m Model) flush() tea.Cmd {
	if !m.queue.Pending() {
		return nil
	}
	return flushCmd
}

// reload issues option and player lookups for the current filter.
func (m Model) reload() tea.Cmd {
	s := m.state()
	return tea.Batch(m.resolveCmd(s), m.loadPlayersCmd(s), m.spinner.Tick)
}

func (m Model) state() filter.State {
	if m.ctrl == nil {
		return filter.Default(m.season)
	}
	return m.ctrl.State()
}

func (m Model) locationString() string {
	if m.ctrl == nil {
		return ""
	}
	return m.ctrl.Location().String()
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(contextOrBackground(opts.Context)))
	_, err := p.Run()
	return err
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
