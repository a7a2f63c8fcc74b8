// Package location maps filter state to an addressable query-string location
// and keeps the ordered navigation history those locations live in.
package location

import (
	"net/url"
	"sort"
	"strings"
)

// Query keys, in the order they are rendered.
const (
	KeyYear     = "year"
	KeyWeek     = "week"
	KeyManager  = "manager"
	KeyPosition = "position"
)

// AllToken is the literal value used for "no season filter".
const AllToken = "ALL"

var keyOrder = []string{KeyYear, KeyWeek, KeyManager, KeyPosition}

// Location is a flat set of key/value pairs. Each key carries one value.
type Location struct {
	values map[string]string
}

// ParseLocation reads a raw query string, with or without a leading '?'.
// It never fails: undecodable pairs are dropped and repeated keys keep the
// first value.
func ParseLocation(raw string) Location {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, "?"); idx >= 0 {
		raw = raw[idx+1:]
	}
	if idx := strings.Index(raw, "#"); idx >= 0 {
		raw = raw[:idx]
	}
	loc := Location{}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, err := url.QueryUnescape(key)
		if err != nil || k == "" {
			continue
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}
		if _, ok := loc.values[k]; ok {
			continue
		}
		loc = loc.With(k, v)
	}
	return loc
}

// FromValues builds a Location from url.Values, keeping the first value per key.
func FromValues(values url.Values) Location {
	loc := Location{}
	for k, vs := range values {
		if len(vs) == 0 {
			continue
		}
		loc = loc.With(k, vs[0])
	}
	return loc
}

// Get returns the value for key and whether it is present.
func (l Location) Get(key string) (string, bool) {
	v, ok := l.values[key]
	return v, ok
}

// With returns a copy of l with key set to value.
func (l Location) With(key, value string) Location {
	dup := make(map[string]string, len(l.values)+1)
	for k, v := range l.values {
		dup[k] = v
	}
	dup[key] = value
	return Location{values: dup}
}

// Len returns the number of keys.
func (l Location) Len() int {
	return len(l.values)
}

// Keys returns the keys in canonical order: known filter keys first, then
// anything else sorted.
func (l Location) Keys() []string {
	keys := make([]string, 0, len(l.values))
	for _, k := range keyOrder {
		if _, ok := l.values[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range l.values {
		if !isKnownKey(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// Equal reports whether both locations hold the same pairs.
func (l Location) Equal(other Location) bool {
	if len(l.values) != len(other.values) {
		return false
	}
	for k, v := range l.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Values converts the location to url.Values.
func (l Location) Values() url.Values {
	out := make(url.Values, len(l.values))
	for k, v := range l.values {
		out.Set(k, v)
	}
	return out
}

// Query renders the pairs without the leading '?'.
func (l Location) Query() string {
	var b strings.Builder
	for i, k := range l.Keys() {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(l.values[k]))
	}
	return b.String()
}

// String renders the location as "?k=v&..." or "" when empty.
func (l Location) String() string {
	if len(l.values) == 0 {
		return ""
	}
	return "?" + l.Query()
}

func isKnownKey(key string) bool {
	for _, k := range keyOrder {
		if k == key {
			return true
		}
	}
	return false
}
