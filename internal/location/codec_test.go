package location

import (
	"testing"

	"github.com/tommylowry/patriot-center/internal/filter"
)

func TestDecode_EmptyUsesDefaults(t *testing.T) {
	c := NewCodec("2025")
	got := c.DecodeString("")
	want := filter.State{Year: "2025", Position: filter.PositionAll}
	if got != want {
		t.Fatalf("Decode(empty) = %#v, want %#v", got, want)
	}
}

func TestDecode_Malformed(t *testing.T) {
	c := NewCodec("2025")
	cases := []struct {
		name string
		raw  string
		want filter.State
	}{
		{"all token", "?year=ALL", filter.State{Position: filter.PositionAll}},
		{"all token lowercase", "?year=all", filter.State{Position: filter.PositionAll}},
		{"blank year falls back", "?year=", filter.State{Year: "2025", Position: filter.PositionAll}},
		{"week without season", "?year=ALL&week=3", filter.State{Position: filter.PositionAll}},
		{"non numeric week", "?week=three", filter.State{Year: "2025", Position: filter.PositionAll}},
		{"zero week", "?week=0", filter.State{Year: "2025", Position: filter.PositionAll}},
		{"negative week", "?week=-4", filter.State{Year: "2025", Position: filter.PositionAll}},
		{"bad escape dropped", "?manager=%zz&week=2", filter.State{Year: "2025", Week: 2, Position: filter.PositionAll}},
		{"repeated key keeps first", "?year=2023&year=2024", filter.State{Year: "2023", Position: filter.PositionAll}},
		{"unknown keys ignored", "?sort=points&tab=2&position=QB", filter.State{Year: "2025", Position: "QB"}},
		{"garbage", "&&==&?", filter.State{Year: "2025", Position: filter.PositionAll}},
		{"no leading question mark", "year=2022&week=7", filter.State{Year: "2022", Week: 7, Position: filter.PositionAll}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.DecodeString(tc.raw); got != tc.want {
				t.Fatalf("Decode(%q) = %#v, want %#v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestEncode_OmitsDefaults(t *testing.T) {
	c := NewCodec("2025")
	cases := []struct {
		name  string
		state filter.State
		want  string
	}{
		{"default", filter.Default("2025"), ""},
		{"no season", filter.State{Position: filter.PositionAll}, "?year=ALL"},
		{"no season drops week", filter.State{Week: 3}, "?year=ALL"},
		{"other season", filter.State{Year: "2023", Week: 4}, "?year=2023&week=4"},
		{"default season keeps week", filter.State{Year: "2025", Week: 4}, "?week=4"},
		{"manager and position", filter.State{Year: "2025", Manager: "Tommy Lowry", Position: "QB"}, "?manager=Tommy+Lowry&position=QB"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Encode(tc.state).String(); got != tc.want {
				t.Fatalf("Encode(%#v) = %q, want %q", tc.state, got, tc.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	c := NewCodec("2025")
	years := []string{"", "2025", "2019", "2024"}
	weeks := []int{0, 1, 17}
	managers := []string{"", "Tommy", "Anne & Co", "ALL", "a=b?c"}
	positions := []string{filter.PositionAll, "QB", "D/ST", "K"}

	for _, y := range years {
		for _, w := range weeks {
			for _, m := range managers {
				for _, p := range positions {
					s := filter.State{Year: y, Week: w, Manager: m, Position: p}.Normalize()
					loc := c.Encode(s)
					if got := c.Decode(loc); got != s {
						t.Fatalf("Decode(Encode(%#v)) = %#v via %q", s, got, loc.String())
					}
					if again := c.Encode(c.Decode(loc)); !again.Equal(loc) {
						t.Fatalf("re-encode %q = %q, want identical", loc.String(), again.String())
					}
					if parsed := ParseLocation(loc.String()); !parsed.Equal(loc) {
						t.Fatalf("ParseLocation(%q) = %q", loc.String(), parsed.String())
					}
				}
			}
		}
	}
}

func TestCodec_ZeroValueUsesPackageDefault(t *testing.T) {
	var c Codec
	if got := c.DecodeString(""); got.Year != filter.DefaultSeason {
		t.Fatalf("Year = %q, want %q", got.Year, filter.DefaultSeason)
	}
}
