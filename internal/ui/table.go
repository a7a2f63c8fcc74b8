package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/tommylowry/patriot-center/internal/filter"
	"github.com/tommylowry/patriot-center/internal/patriot"
)

// sortKey orders the players table. It is view-only state and never part of
// the location.
type sortKey int

const (
	sortPoints sortKey = iota
	sortPerStart
	sortFFWAR
	sortName
)

func (k sortKey) next() sortKey {
	return (k + 1) % 4
}

func (k sortKey) String() string {
	switch k {
	case sortPerStart:
		return "Pts/GS"
	case sortFFWAR:
		return "ffWAR"
	case sortName:
		return "Name"
	default:
		return "Points"
	}
}

func playerColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "Player", Width: 22},
		{Title: "Pos", Width: 4},
		{Title: "Team", Width: 5},
		{Title: "Manager", Width: 12},
		{Title: "Points", Width: 8},
		{Title: "GS", Width: 4},
		{Title: "Pts/GS", Width: 7},
		{Title: "ffWAR", Width: 7},
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	if extra := width - used; extra > 0 {
		cols[0].Width += extra * 2 / 3 // player
		cols[3].Width += extra / 3     // manager
	}
	return cols
}

func newPlayersTable() table.Model {
	return table.New(
		table.WithColumns(playerColumns(0)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
}

func (m *Model) applyTableTheme() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(m.theme.Accent)).
		Bold(true)
	s.Cell = s.Cell.Foreground(lipgloss.Color(m.theme.Text))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Bold(false)
	m.table.SetStyles(s)
}

func (m *Model) resizeTable() {
	m.table.SetColumns(playerColumns(m.width))
	m.table.SetWidth(m.width)
	h := m.height - 5
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
}

// refreshTable rebuilds rows from the snapshot, the position filter, the
// local sort and the row limit.
func (m *Model) refreshTable() {
	rows := visiblePlayers(m.snapshot.Players, m.state().Position, m.sortBy, m.rowLimit)
	out := make([]table.Row, 0, len(rows))
	for _, p := range rows {
		out = append(out, table.Row{
			p.Player,
			p.Position,
			p.Team,
			p.Manager,
			fmt.Sprintf("%.1f", p.TotalPoints),
			fmt.Sprintf("%d", p.NumStarts),
			fmt.Sprintf("%.2f", p.PointsPerStart()),
			fmt.Sprintf("%.2f", p.FFWAR),
		})
	}
	m.table.SetRows(out)
	if c := m.table.Cursor(); c >= len(out) && len(out) > 0 {
		m.table.SetCursor(len(out) - 1)
	}
}

func visiblePlayers(players []patriot.AggregatedPlayer, position string, by sortKey, limit int) []patriot.AggregatedPlayer {
	out := make([]patriot.AggregatedPlayer, 0, len(players))
	for _, p := range players {
		if position != "" && position != filter.PositionAll && !strings.EqualFold(p.Position, position) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch by {
		case sortPerStart:
			return a.PointsPerStart() > b.PointsPerStart()
		case sortFFWAR:
			return a.FFWAR > b.FFWAR
		case sortName:
			return strings.ToLower(a.Player) < strings.ToLower(b.Player)
		default:
			return a.TotalPoints > b.TotalPoints
		}
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
