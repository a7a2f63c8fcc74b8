// Package filter holds the canonical record of the dashboard's filter dimensions.
package filter

import (
	"fmt"
	"strings"
)

const (
	// PositionAll is the unfiltered position value.
	PositionAll = "ALL"

	// DefaultSeason is the season selected when nothing else says otherwise.
	DefaultSeason = "2025"
)

// State is the canonical filter selection. The zero value of each field means
// "not filtered": Year "" is the no-season sentinel, Week 0 is absent,
// Manager "" is absent. Position is PositionAll when unfiltered.
//
// State is comparable; two normalized states describe the same selection iff
// they are ==.
type State struct {
	Year     string
	Week     int
	Manager  string
	Position string
}

// Default returns the state used on first load.
func Default(season string) State {
	season = strings.TrimSpace(season)
	if season == "" {
		season = DefaultSeason
	}
	return State{Year: season, Position: PositionAll}
}

// Normalize enforces the field invariants and returns the cleaned copy.
// A week only exists inside a concrete season, so a week set while no season
// is selected is dropped.
func (s State) Normalize() State {
	s.Year = strings.TrimSpace(s.Year)
	if strings.EqualFold(s.Year, PositionAll) {
		s.Year = ""
	}
	s.Manager = strings.TrimSpace(s.Manager)
	s.Position = normalizePosition(s.Position)
	if s.Week < 0 || s.Year == "" {
		s.Week = 0
	}
	return s
}

// HasSeason reports whether a concrete season is selected.
func (s State) HasSeason() bool {
	return strings.TrimSpace(s.Year) != ""
}

// WithYear returns a copy with the season changed. Passing "" clears the
// season filter, which also drops the week.
func (s State) WithYear(year string) State {
	s.Year = year
	return s.Normalize()
}

// WithWeek returns a copy with the week changed. Zero clears it.
func (s State) WithWeek(week int) State {
	s.Week = week
	return s.Normalize()
}

// WithManager returns a copy with the manager changed.
func (s State) WithManager(manager string) State {
	s.Manager = manager
	return s.Normalize()
}

// WithPosition returns a copy with the position changed.
func (s State) WithPosition(position string) State {
	s.Position = position
	return s.Normalize()
}

// IsDefault reports whether s equals the first-load state for season.
func (s State) IsDefault(season string) bool {
	return s.Normalize() == Default(season)
}

func (s State) String() string {
	year := s.Year
	if year == "" {
		year = "all seasons"
	}
	parts := []string{year}
	if s.Week > 0 {
		parts = append(parts, fmt.Sprintf("week %d", s.Week))
	}
	if s.Manager != "" {
		parts = append(parts, s.Manager)
	}
	if pos := normalizePosition(s.Position); pos != PositionAll {
		parts = append(parts, pos)
	}
	return strings.Join(parts, " / ")
}

func normalizePosition(position string) string {
	trimmed := strings.TrimSpace(position)
	if trimmed == "" || strings.EqualFold(trimmed, PositionAll) {
		return PositionAll
	}
	return trimmed
}
