package ui

import (
	"strings"

	"github.com/tommylowry/patriot-center/internal/filter"
	"github.com/tommylowry/patriot-center/internal/options"
)

// Choice lists start with the "not filtered" value and always contain the
// current selection, so cycling never silently drops it.

func yearChoices(set options.Set, cur filter.State) []string {
	return withCurrent(append([]string{""}, set.Years...), cur.Year)
}

func weekChoices(set options.Set, cur filter.State) []int {
	out := append([]int{0}, set.Weeks...)
	for _, w := range out {
		if w == cur.Week {
			return out
		}
	}
	return append(out, cur.Week)
}

func managerChoices(set options.Set, cur filter.State) []string {
	return withCurrent(append([]string{""}, set.Managers...), cur.Manager)
}

func positionChoices(set options.Set, cur filter.State) []string {
	out := []string{filter.PositionAll}
	for _, p := range set.Positions {
		if strings.EqualFold(p, filter.PositionAll) {
			continue
		}
		out = append(out, p)
	}
	return withCurrent(out, cur.Position)
}

func withCurrent(choices []string, current string) []string {
	for _, c := range choices {
		if c == current {
			return choices
		}
	}
	return append(choices, current)
}

func cycleString(choices []string, current string, step int) string {
	if len(choices) == 0 {
		return current
	}
	for i, c := range choices {
		if c == current {
			return choices[wrap(i+step, len(choices))]
		}
	}
	return choices[0]
}

func cycleInt(choices []int, current, step int) int {
	if len(choices) == 0 {
		return current
	}
	for i, c := range choices {
		if c == current {
			return choices[wrap(i+step, len(choices))]
		}
	}
	return choices[0]
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
