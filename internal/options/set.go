package options

import (
	"math"
	"sort"
	"strings"

	"github.com/tommylowry/patriot-center/internal/patriot"
)

// Set holds the currently legal values for each filter dimension.
type Set struct {
	Years     []string
	Weeks     []int
	Managers  []string
	Positions []string
	Players   []string
}

// Normalize turns a raw payload into a Set: missing lists become empty,
// blanks and duplicates are dropped, and weeks keep only finite positive
// integers sorted ascending.
func Normalize(p patriot.ValidOptions) Set {
	return Set{
		Years:     uniqueStrings(p.Years),
		Weeks:     normalizeWeeks(p.Weeks),
		Managers:  uniqueStrings(p.Managers),
		Positions: uniqueStrings(p.Positions),
		Players:   uniqueStrings(p.Players),
	}
}

// Clone returns a deep copy.
func (s Set) Clone() Set {
	return Set{
		Years:     append([]string{}, s.Years...),
		Weeks:     append([]int{}, s.Weeks...),
		Managers:  append([]string{}, s.Managers...),
		Positions: append([]string{}, s.Positions...),
		Players:   append([]string{}, s.Players...),
	}
}

// HasWeek reports whether week is legal.
func (s Set) HasWeek(week int) bool {
	for _, w := range s.Weeks {
		if w == week {
			return true
		}
	}
	return false
}

func uniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func normalizeWeeks(values patriot.Values) []int {
	out := make([]int, 0, len(values))
	seen := make(map[int]struct{}, len(values))
	for _, f := range values.Floats() {
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
			continue
		}
		week := int(f)
		if _, ok := seen[week]; ok {
			continue
		}
		seen[week] = struct{}{}
		out = append(out, week)
	}
	sort.Ints(out)
	return out
}
