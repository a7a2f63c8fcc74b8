package location

import (
	"strconv"
	"strings"

	"github.com/tommylowry/patriot-center/internal/filter"
)

// Codec converts between filter.State and Location. Keys holding their
// default value are omitted so locations stay short and shareable.
type Codec struct {
	// DefaultSeason is the season implied when the year key is absent.
	DefaultSeason string
}

// NewCodec returns a codec for the given default season.
func NewCodec(defaultSeason string) Codec {
	return Codec{DefaultSeason: defaultSeason}
}

func (c Codec) season() string {
	if s := strings.TrimSpace(c.DefaultSeason); s != "" {
		return s
	}
	return filter.DefaultSeason
}

// Encode renders a state as a location.
func (c Codec) Encode(s filter.State) Location {
	s = s.Normalize()
	loc := Location{}
	switch {
	case !s.HasSeason():
		loc = loc.With(KeyYear, AllToken)
	case s.Year != c.season():
		loc = loc.With(KeyYear, s.Year)
	}
	if s.HasSeason() && s.Week > 0 {
		loc = loc.With(KeyWeek, strconv.Itoa(s.Week))
	}
	if s.Manager != "" {
		loc = loc.With(KeyManager, s.Manager)
	}
	if s.Position != filter.PositionAll {
		loc = loc.With(KeyPosition, s.Position)
	}
	return loc
}

// Decode reads a state from a location. It is total: anything malformed
// falls back to the default for that field.
func (c Codec) Decode(loc Location) filter.State {
	s := filter.Default(c.season())

	if raw, ok := loc.Get(KeyYear); ok {
		year := strings.TrimSpace(raw)
		switch {
		case strings.EqualFold(year, AllToken):
			s.Year = ""
		case year != "":
			s.Year = year
		}
	}
	if raw, ok := loc.Get(KeyWeek); ok {
		s.Week = parseWeek(raw)
	}
	if raw, ok := loc.Get(KeyManager); ok {
		s.Manager = raw
	}
	if raw, ok := loc.Get(KeyPosition); ok {
		s.Position = raw
	}
	return s.Normalize()
}

// DecodeString is Decode(ParseLocation(raw)).
func (c Codec) DecodeString(raw string) filter.State {
	return c.Decode(ParseLocation(raw))
}

func parseWeek(raw string) int {
	week, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || week <= 0 {
		return 0
	}
	return week
}
