package patriot

import (
	"encoding/json"
	"math"
	"testing"
)

func TestValues_UnmarshalMixed(t *testing.T) {
	var v Values
	if err := json.Unmarshal([]byte(`["a", 2, null, 1.5, {"x":1}, [3], true]`), &v); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	want := []string{"a", "2", "1.5", "true"}
	if len(v) != len(want) {
		t.Fatalf("Values = %#v, want %#v", v, want)
	}
	for i := range want {
		if v[i] != want[i] {
			t.Fatalf("Values = %#v, want %#v", v, want)
		}
	}
}

func TestValues_NullAndMissing(t *testing.T) {
	var payload ValidOptions
	if err := json.Unmarshal([]byte(`{"years":null}`), &payload); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if payload.Years != nil || payload.Weeks != nil {
		t.Fatalf("payload = %#v, want nil lists", payload)
	}
}

func TestValues_NotAList(t *testing.T) {
	var v Values
	if err := json.Unmarshal([]byte(`"2024"`), &v); err == nil {
		t.Fatalf("Unmarshal of a scalar returned nil error")
	}
}

func TestValues_Floats(t *testing.T) {
	got := Values{"1", "x", "NaN", "2.5", "Inf"}.Floats()
	if len(got) != 4 {
		t.Fatalf("Floats = %v, want 4 parsed values", got)
	}
	if got[0] != 1 || !math.IsNaN(got[1]) || got[2] != 2.5 || !math.IsInf(got[3], 1) {
		t.Fatalf("Floats = %v", got)
	}
}

func TestPointsPerStart_NoStarts(t *testing.T) {
	if got := (AggregatedPlayer{TotalPoints: 10}).PointsPerStart(); got != 0 {
		t.Fatalf("PointsPerStart = %v, want 0", got)
	}
}
