package export

import (
	"strings"
	"testing"
	"time"

	"backend-trailmap/internal/gpx"
	"backend-trailmap/internal/trail"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	at, err := time.ParseInLocation(trail.DisplayTimeLayout, s, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return at
}

func TestTrailCSV(t *testing.T) {
	records := []trail.Record{
		{Order: 2, Time: "2024/05/01 09:00:00", Lat: 24.01, Lon: 121.01, TimeElapsedMin: 60, DistanceSinceLastKm: 1.5339, TotalTimeMin: 60, TotalDistanceKm: 1.5339},
		{Order: 1, Time: "2024/05/01 08:00:00", Lat: 24, Lon: 121},
	}

	out := string(TrailCSV(records))
	if !strings.HasPrefix(out, "\uFEFF") {
		t.Fatalf("missing byte-order mark")
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "\uFEFFOrder,Time,") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	// Rows come out ordered by ordinal regardless of input order.
	want1 := `1,"2024/05/01 08:00:00",24.000000,121.000000,00:00:00,0.000,00:00:00,0.000`
	if lines[1] != want1 {
		t.Fatalf("row 1:\n got %q\nwant %q", lines[1], want1)
	}
	want2 := `2,"2024/05/01 09:00:00",24.010000,121.010000,01:00:00,1.534,01:00:00,1.534`
	if lines[2] != want2 {
		t.Fatalf("row 2:\n got %q\nwant %q", lines[2], want2)
	}
}

func TestTrackCSVElevationColumns(t *testing.T) {
	points := []gpx.EnrichedPoint{
		{Lat: 24, Lon: 121, Time: mustTime(t, "2024/05/01 08:00:00"), Elevation: 1205.5, HasElevation: true},
		{
			Lat: 24.001, Lon: 121.001, Time: mustTime(t, "2024/05/01 08:10:00"),
			TimeElapsedMin: 10, Distance2DKm: 0.1512, Distance3DKm: 0.1512,
			TotalTimeMin: 10, TotalDistance2DKm: 0.1512, TotalDistance3DKm: 0.1512,
		},
	}

	lines := strings.Split(strings.TrimSuffix(string(TrackCSV(points)), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[1], ",1205.50,") {
		t.Fatalf("elevation not rendered: %q", lines[1])
	}
	want := `"2024/05/01 08:10:00",24.001000,121.001000,N/A,00:10:00,N/A,0.1512,0.1512,00:10:00,0.151,0.151`
	if lines[2] != want {
		t.Fatalf("row 2:\n got %q\nwant %q", lines[2], want)
	}
}

func TestConsolidatedCSVMergesByTimestamp(t *testing.T) {
	points := []gpx.EnrichedPoint{
		{Lat: 24, Lon: 121, Time: mustTime(t, "2024/05/01 08:00:00"), Elevation: 100, HasElevation: true},
		{Lat: 24.01, Lon: 121.01, Time: mustTime(t, "2024/05/01 10:00:00"), TimeElapsedMin: 120, Distance3DKm: 1.5, TotalDistance3DKm: 1.5},
	}
	records := []trail.Record{
		{Order: 1, Time: "2024/05/01 09:00:00", Lat: 24.005, Lon: 121.005, TimeElapsedMin: 60, DistanceSinceLastKm: 0.7, TotalDistanceKm: 0.7},
	}

	lines := strings.Split(strings.TrimSuffix(string(ConsolidatedCSV(points, records)), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(lines))
	}
	for i, prefix := range []string{"GPX,", "PHOTO,", "GPX,"} {
		if !strings.HasPrefix(lines[i+1], prefix) {
			t.Fatalf("row %d should start with %q: %q", i+1, prefix, lines[i+1])
		}
	}
	want := `PHOTO,"2024/05/01 09:00:00",24.005000,121.005000,N/A,01:00:00,N/A,0.7000,0.700,"Photo #1"`
	if lines[2] != want {
		t.Fatalf("photo row:\n got %q\nwant %q", lines[2], want)
	}
}

func TestConsolidatedCSVUnparseableRecordKeepsPosition(t *testing.T) {
	records := []trail.Record{
		{Order: 1, Time: "not a date", Lat: 24, Lon: 121},
		{Order: 2, Time: "2024/05/01 09:00:00", Lat: 24.01, Lon: 121.01},
	}

	lines := strings.Split(strings.TrimSuffix(string(ConsolidatedCSV(nil, records)), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[1], `"not a date"`) {
		t.Fatalf("undated row moved: %q", lines[1])
	}
}
