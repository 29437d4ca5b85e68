package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	// Jakarta (-6.2, 106.816) to Bandung (-6.9175, 107.6191) ~ 115-120 km
	d := HaversineKm(-6.2, 106.816, -6.9175, 107.6191)
	if d < 100 || d > 140 {
		t.Fatalf("unexpected distance: %v", d)
	}
	if HaversineKm(-6.2, 106.816, -6.2, 106.816) != 0 {
		t.Fatalf("expected zero distance for identical points")
	}
}

func TestHaversine3DKm(t *testing.T) {
	// Pure vertical displacement: a 1000 m climb on the same spot is 1 km.
	d := Haversine3DKm(-6.2, 106.816, 0, -6.2, 106.816, 1000)
	if math.Abs(d-1) > 1e-9 {
		t.Fatalf("unexpected 3D distance: %v", d)
	}

	d2 := HaversineKm(-6.2, 106.816, -6.21, 106.82)
	d3 := Haversine3DKm(-6.2, 106.816, 100, -6.21, 106.82, 150)
	if d3 <= d2 {
		t.Fatalf("3D distance %v should exceed 2D distance %v", d3, d2)
	}
}

func TestDMSToDecimal(t *testing.T) {
	dd, ok := DMSToDecimal([]float64{24, 26, 24}, "N")
	if !ok || math.Abs(dd-24.44) > 1e-9 {
		t.Fatalf("unexpected conversion: %v %v", dd, ok)
	}

	south, ok := DMSToDecimal([]float64{24, 26, 24}, "S")
	if !ok || south != -dd {
		t.Fatalf("expected negated value for S: %v", south)
	}
	west, ok := DMSToDecimal([]float64{118, 19, 48}, "W")
	if !ok || west >= 0 {
		t.Fatalf("expected negative value for W: %v", west)
	}

	if _, ok := DMSToDecimal([]float64{24, 26}, "N"); ok {
		t.Fatalf("expected failure for short component list")
	}
	if _, ok := DMSToDecimal(nil, "N"); ok {
		t.Fatalf("expected failure for nil components")
	}
	if _, ok := DMSToDecimal([]float64{math.NaN(), 0, 0}, "N"); ok {
		t.Fatalf("expected failure for NaN component")
	}
}

func TestDMSToDecimalRoundTrip(t *testing.T) {
	// Decompose a known decimal coordinate and convert back.
	orig := 121.517081
	deg := math.Floor(orig)
	minF := (orig - deg) * 60
	min := math.Floor(minF)
	sec := (minF - min) * 60

	dd, ok := DMSToDecimal([]float64{deg, min, sec}, "E")
	if !ok || math.Abs(dd-orig) > 1e-9 {
		t.Fatalf("round trip mismatch: got %v want %v", dd, orig)
	}
}

func TestFormatMinutesToHMS(t *testing.T) {
	cases := []struct {
		minutes float64
		want    string
	}{
		{0, "00:00:00"},
		{90.5, "01:30:30"},
		{1502, "25:02:00"},
		{-1, "N/A"},
		{math.NaN(), "N/A"},
	}
	for _, tc := range cases {
		if got := FormatMinutesToHMS(tc.minutes); got != tc.want {
			t.Fatalf("FormatMinutesToHMS(%v) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}
