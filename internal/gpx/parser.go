package gpx

import (
	"errors"
	"math"
	"time"

	"backend-trailmap/internal/shared/geo"

	gpxgo "github.com/tkrajina/gpxgo/gpx"
)

// ErrNoUsablePoints means the file parsed but no point carried a valid
// position and timestamp. Callers must treat it as a failed upload, not an
// empty success.
var ErrNoUsablePoints = errors.New("gpx: no usable track points")

type rawPoint struct {
	lat, lon float64
	ele      float64
	hasEle   bool
	t        int64 // unix millis
}

// Parse reads GPX bytes and returns the enriched point sequence. Track
// points, route points and waypoints all participate. Points without a finite
// position or a timestamp are dropped: a point that cannot be ordered in time
// cannot take part in any elapsed/speed computation. File order is trusted;
// points are never re-sorted.
func Parse(data []byte) ([]EnrichedPoint, error) {
	doc, err := gpxgo.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	var raw []rawPoint
	keep := func(p *gpxgo.GPXPoint) {
		if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
			return
		}
		if p.Timestamp.IsZero() {
			return
		}
		rp := rawPoint{
			lat: p.Latitude,
			lon: p.Longitude,
			t:   p.Timestamp.UnixMilli(),
		}
		if p.Elevation.NotNull() {
			rp.ele = p.Elevation.Value()
			rp.hasEle = true
		}
		raw = append(raw, rp)
	}

	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			for i := range segment.Points {
				keep(&segment.Points[i])
			}
		}
	}
	for _, route := range doc.Routes {
		for i := range route.Points {
			keep(&route.Points[i])
		}
	}
	for i := range doc.Waypoints {
		keep(&doc.Waypoints[i])
	}

	if len(raw) == 0 {
		return nil, ErrNoUsablePoints
	}
	return enrich(raw), nil
}

func unixMilliUTC(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func enrich(raw []rawPoint) []EnrichedPoint {
	points := make([]EnrichedPoint, 0, len(raw))
	startMs := raw[0].t
	var total2D, total3D float64

	for i, p := range raw {
		ep := EnrichedPoint{
			Lat:          p.lat,
			Lon:          p.lon,
			Time:         unixMilliUTC(p.t),
			Elevation:    p.ele,
			HasElevation: p.hasEle,
		}

		if i > 0 {
			prev := raw[i-1]
			ep.TimeElapsedMin = float64(p.t-prev.t) / 60000

			ep.Distance2DKm = geo.HaversineKm(prev.lat, prev.lon, p.lat, p.lon)
			total2D += ep.Distance2DKm

			if p.hasEle && prev.hasEle {
				ep.Distance3DKm = geo.Haversine3DKm(prev.lat, prev.lon, prev.ele, p.lat, p.lon, p.ele)
				ep.ElevationChange = p.ele - prev.ele
				ep.HasElevDelta = true
			} else {
				// Missing elevation degrades the 3D step to the 2D step.
				ep.Distance3DKm = ep.Distance2DKm
			}
			total3D += ep.Distance3DKm
		}

		ep.TotalTimeMin = float64(p.t-startMs) / 60000
		ep.TotalDistance2DKm = total2D
		ep.TotalDistance3DKm = total3D
		points = append(points, ep)
	}
	return points
}
