package patriot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ValidOptions mirrors the payload returned by /valid-options.
type ValidOptions struct {
	Years     Values `json:"years"`
	Weeks     Values `json:"weeks"`
	Managers  Values `json:"managers"`
	Positions Values `json:"positions"`
	Players   Values `json:"players"`
}

// AggregatedPlayer is one row of /aggregated-players.
type AggregatedPlayer struct {
	Player        string  `json:"player"`
	Position      string  `json:"position"`
	Team          string  `json:"team"`
	Manager       string  `json:"manager"`
	TotalPoints   float64 `json:"total_points"`
	NumStarts     int     `json:"num_games_started"`
	FFWAR         float64 `json:"ffWAR"`
	PlayoffStarts int     `json:"num_playoff_appearances"`
	ImageURL      string  `json:"player_image_endpoint"`
}

// PointsPerStart returns the average points per start, zero without starts.
func (p AggregatedPlayer) PointsPerStart() float64 {
	if p.NumStarts <= 0 {
		return 0
	}
	return p.TotalPoints / float64(p.NumStarts)
}

// Values is a JSON list of scalars kept in their string form. Numbers and
// strings are both accepted; null entries and a null list decode to nothing.
type Values []string

// UnmarshalJSON implements json.Unmarshaler.
func (v *Values) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("values: %w", err)
	}
	out := make(Values, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || bytes.Equal(item, []byte("null")) {
			continue
		}
		switch item[0] {
		case '"':
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return fmt.Errorf("values: %w", err)
			}
			out = append(out, s)
		case '{', '[':
			// nested structures carry no option value
			continue
		default:
			var n json.Number
			if err := json.Unmarshal(item, &n); err != nil {
				// true/false
				out = append(out, string(item))
				continue
			}
			out = append(out, n.String())
		}
	}
	*v = out
	return nil
}

// Floats parses every entry as a number and skips the ones that do not parse.
func (v Values) Floats() []float64 {
	out := make([]float64, 0, len(v))
	for _, s := range v {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}
