package track

import (
	"time"

	"backend-trailmap/internal/gpx"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection projects the enriched sequence into the display shape:
// one LineString feature per filtered segment plus one Point feature per
// selected marker. GeoJSON positions are lon/lat ordered.
func FeatureCollection(points []gpx.EnrichedPoint, mode Mode) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, segment := range SplitSegments(points) {
		line := make(orb.LineString, 0, len(segment))
		for _, c := range segment {
			line = append(line, orb.Point{c[1], c[0]})
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = "segment"
		fc.Append(f)
	}

	for _, m := range SelectMarkers(points, mode) {
		fc.Append(MarkerFeature(m))
	}
	return fc
}

// MarkerFeature builds the Point feature for one downsampled marker,
// carrying everything its popup shows.
func MarkerFeature(m Marker) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{m.Lon, m.Lat})
	f.Properties["kind"] = "marker"
	f.Properties["label"] = m.Label
	f.Properties["time"] = m.Time.Format(time.RFC3339)
	if m.HasElevation {
		f.Properties["elevation"] = m.Elevation
	}
	return f
}

// PolylineFeature turns a bare coordinate list (an imported track with no
// per-point detail) into a single LineString feature.
func PolylineFeature(coords []Coordinate) *geojson.Feature {
	line := make(orb.LineString, 0, len(coords))
	for _, c := range coords {
		line = append(line, orb.Point{c[1], c[0]})
	}
	f := geojson.NewFeature(line)
	f.Properties["kind"] = "segment"
	return f
}
