package track

import (
	"time"

	"backend-trailmap/internal/gpx"
)

// Mode selects the marker downsampling policy.
type Mode string

const (
	ModeProportional Mode = "proportional"
	ModeHourly       Mode = "hourly"
)

// MarkerDensity is every how many points a proportional marker is placed.
const MarkerDensity = 20

const hourlyWindow = 30 * time.Minute

// Marker is one representative point selected for display.
type Marker struct {
	gpx.EnrichedPoint
	Label string `json:"label"` // Start, Proportional, Hourly, End
}

// SelectMarkers downsamples the enriched sequence under the given policy.
// Unknown modes fall back to proportional.
func SelectMarkers(points []gpx.EnrichedPoint, mode Mode) []Marker {
	if mode == ModeHourly {
		return HourlyMarkers(points)
	}
	return ProportionalMarkers(points)
}

// ProportionalMarkers keeps the first and last point and every
// MarkerDensity-th point in between.
func ProportionalMarkers(points []gpx.EnrichedPoint) []Marker {
	if len(points) == 0 {
		return nil
	}

	markers := []Marker{{EnrichedPoint: points[0], Label: "Start"}}
	for i := MarkerDensity; i < len(points)-1; i += MarkerDensity {
		markers = append(markers, Marker{EnrichedPoint: points[i], Label: "Proportional"})
	}

	last := points[len(points)-1]
	if !markers[len(markers)-1].Time.Equal(last.Time) {
		markers = append(markers, Marker{EnrichedPoint: last, Label: "End"})
	}
	return markers
}

// HourlyMarkers places one marker near each whole-hour boundary between the
// start and end of the sequence. A boundary is matched by the closest point
// within a ±30 minute window; boundaries with no point in the window are
// skipped. The scan cursor only moves forward, which keeps the walk linear
// but does not affect which point wins a boundary.
func HourlyMarkers(points []gpx.EnrichedPoint) []Marker {
	if len(points) == 0 {
		return nil
	}

	start := points[0].Time
	end := points[len(points)-1].Time
	boundary := start.Truncate(time.Hour).Add(time.Hour)

	markers := []Marker{{EnrichedPoint: points[0], Label: "Start"}}

	cursor := 0
	for boundary.Before(end) {
		var closest *gpx.EnrichedPoint
		minDiff := time.Duration(1<<63 - 1)

		for i := cursor; i < len(points); i++ {
			p := points[i]
			if p.Time.After(boundary.Add(hourlyWindow)) {
				cursor = i
				break
			}
			diff := absDuration(p.Time.Sub(boundary))
			if diff <= hourlyWindow && diff < minDiff {
				minDiff = diff
				closest = &points[i]
			}
		}

		if closest != nil && !hasMarkerAt(markers, closest.Time) {
			markers = append(markers, Marker{EnrichedPoint: *closest, Label: "Hourly"})
		}

		boundary = boundary.Add(time.Hour)
		// Degenerate end times must not spin the loop forever.
		if boundary.After(end.Add(2 * time.Hour)) {
			break
		}
	}

	last := points[len(points)-1]
	if !hasMarkerAt(markers, last.Time) {
		markers = append(markers, Marker{EnrichedPoint: last, Label: "End"})
	}
	return markers
}

func hasMarkerAt(markers []Marker, t time.Time) bool {
	for _, m := range markers {
		if m.Time.Equal(t) {
			return true
		}
	}
	return false
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
