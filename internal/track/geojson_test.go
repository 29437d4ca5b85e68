package track

import (
	"testing"
	"time"

	"backend-trailmap/internal/gpx"

	"github.com/paulmach/orb"
)

func TestFeatureCollection(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	points := []gpx.EnrichedPoint{
		{Lat: 24.0, Lon: 121.0, Time: t0, Elevation: 100, HasElevation: true},
		{Lat: 24.001, Lon: 121.001, Time: t0.Add(time.Minute), TimeElapsedMin: 1, Distance2DKm: 0.15},
	}

	fc := FeatureCollection(points, ModeProportional)

	var segments, markers int
	for _, f := range fc.Features {
		switch f.Properties["kind"] {
		case "segment":
			segments++
			line, ok := f.Geometry.(orb.LineString)
			if !ok || len(line) != 2 {
				t.Fatalf("unexpected segment geometry: %v", f.Geometry)
			}
			// GeoJSON positions are lon/lat.
			if line[0][0] != 121.0 || line[0][1] != 24.0 {
				t.Fatalf("unexpected coordinate order: %v", line[0])
			}
		case "marker":
			markers++
			if f.Properties["label"] == "" {
				t.Fatalf("marker without label")
			}
		}
	}
	if segments != 1 {
		t.Fatalf("expected 1 segment feature, got %d", segments)
	}
	if markers != 2 {
		t.Fatalf("expected Start and End markers, got %d", markers)
	}
}

func TestMarkerFeatureElevation(t *testing.T) {
	m := Marker{EnrichedPoint: gpx.EnrichedPoint{Lat: 24, Lon: 121, Elevation: 850, HasElevation: true}, Label: "Hourly"}
	f := MarkerFeature(m)
	if f.Properties["elevation"] != 850.0 {
		t.Fatalf("expected elevation property, got %v", f.Properties)
	}

	m.HasElevation = false
	if _, ok := MarkerFeature(m).Properties["elevation"]; ok {
		t.Fatalf("elevation property must be omitted when absent")
	}
}

func TestPolylineFeature(t *testing.T) {
	f := PolylineFeature([]Coordinate{{24, 121}, {24.001, 121.001}})
	line, ok := f.Geometry.(orb.LineString)
	if !ok || len(line) != 2 {
		t.Fatalf("unexpected geometry: %v", f.Geometry)
	}
	if line[1] != (orb.Point{121.001, 24.001}) {
		t.Fatalf("unexpected point: %v", line[1])
	}
}
