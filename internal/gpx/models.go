package gpx

import "time"

// EnrichedPoint is one retained track point with incremental and cumulative
// distance/time fields. Enriched sequences are immutable: a new parse always
// produces a wholly new slice.
type EnrichedPoint struct {
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	Time         time.Time `json:"time"`
	Elevation    float64   `json:"elevation"`
	HasElevation bool      `json:"has_elevation"`

	// Deltas against the previous point in the sequence; zero for the first.
	TimeElapsedMin  float64 `json:"time_elapsed_min"`
	Distance2DKm    float64 `json:"distance_2d_km"`
	Distance3DKm    float64 `json:"distance_3d_km"`
	ElevationChange float64 `json:"elevation_change_m"`
	HasElevDelta    bool    `json:"has_elevation_change"`

	// Cumulative values since the first point.
	TotalTimeMin      float64 `json:"total_time_min"`
	TotalDistance2DKm float64 `json:"total_distance_2d_km"`
	TotalDistance3DKm float64 `json:"total_distance_3d_km"`
}
