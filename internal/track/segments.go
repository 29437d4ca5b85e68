package track

import "backend-trailmap/internal/gpx"

// Noise thresholds for connecting two consecutive points into one polyline.
const (
	MaxHumanSpeedKmh = 20  // faster than plausible hiking speed
	MaxTimeGapHours  = 0.3 // signal-loss gap, 18 minutes
	MaxZeroTimeKm    = 0.5 // teleport with no elapsed time
)

// Coordinate is a lat/lon pair.
type Coordinate [2]float64

// SplitSegments walks the enriched sequence and cuts it into polyline
// segments wherever a transition looks like GPS noise or signal loss.
// Segments of a single point are dropped from the output; the underlying
// points themselves are untouched and all distance/time math keeps using the
// unsegmented sequence.
func SplitSegments(points []gpx.EnrichedPoint) [][]Coordinate {
	if len(points) == 0 {
		return nil
	}

	var segments [][]Coordinate
	current := []Coordinate{{points[0].Lat, points[0].Lon}}

	for i := 1; i < len(points); i++ {
		p := points[i]
		if validConnection(p) {
			current = append(current, Coordinate{p.Lat, p.Lon})
			continue
		}
		if len(current) > 1 {
			segments = append(segments, current)
		}
		current = []Coordinate{{p.Lat, p.Lon}}
	}
	if len(current) > 1 {
		segments = append(segments, current)
	}
	return segments
}

func validConnection(p gpx.EnrichedPoint) bool {
	gapHours := p.TimeElapsedMin / 60
	switch {
	case gapHours > MaxTimeGapHours:
		return false
	case gapHours > 0:
		return p.Distance2DKm/gapHours <= MaxHumanSpeedKmh
	default:
		return p.Distance2DKm <= MaxZeroTimeKm
	}
}
