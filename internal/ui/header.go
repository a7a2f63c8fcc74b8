package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tommylowry/patriot-center/internal/filter"
	"github.com/tommylowry/patriot-center/internal/syncctl"
)

const logoText = "PATRIOT CENTER"

// renderMain renders the header, players table and footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderLocationBar())
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	cur := m.state()

	parts := []string{
		styles.Logo.Render(logoText),
		styles.Text.Render(cur.String()),
	}
	if cur.Position != "" && cur.Position != filter.PositionAll {
		parts = append(parts, styles.PositionStyle(cur.Position).Render(cur.Position))
	}
	if m.busy.Active() {
		parts = append(parts, styles.AccentText.Render(m.spinner.View()+" loading"))
	}
	if n := len(m.snapshot.Players); m.snapshot.HasPlayers {
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d players", n)))
	}

	return m.fill(styles.Header).Render(strings.Join(parts, "  "))
}

func (m Model) renderLocationBar() string {
	styles := m.theme.Styles()

	loc := m.locationString()
	if loc == "" {
		loc = "/"
	}
	parts := []string{styles.AccentText.Render(loc)}

	if m.ctrl != nil {
		h := m.ctrl.History()
		parts = append(parts, styles.FaintText.Render(fmt.Sprintf("history %d/%d", h.Index()+1, h.Len())))
		if m.ctrl.Phase() == syncctl.PhaseApplyingLocation {
			parts = append(parts, styles.WarningText.Render("applying link"))
		}
	}

	if msg := m.statusLine(); msg != "" {
		parts = append(parts, msg)
	}
	return m.fill(styles.Header).Render(strings.Join(parts, "  "))
}

// statusLine shows the transient message or the most relevant error.
func (m Model) statusLine() string {
	styles := m.theme.Styles()
	switch {
	case m.status != "":
		return styles.WarningText.Render(m.status)
	case m.snapshot.IsOffline():
		return styles.DangerText.Render("API unreachable")
	case m.snapshot.LastError != nil:
		return styles.DangerText.Render(m.snapshot.LastError.Error())
	case m.resolver != nil && m.resolver.Err() != nil:
		return styles.DangerText.Render(m.resolver.Err().Error())
	}
	return ""
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.prompting {
		return m.fill(styles.Footer).Render(m.prompt.View())
	}
	hints := []string{
		"y/w/m/p filters",
		"x reset",
		"[ ] back/fwd",
		"o open",
		"s sort: " + m.sortBy.String(),
		"h help",
	}
	return m.fill(styles.Footer).Render(strings.Join(hints, "  •  "))
}

func (m Model) fill(style lipgloss.Style) lipgloss.Style {
	if m.width <= 0 {
		return style
	}
	return style.Width(m.width)
}
