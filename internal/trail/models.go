package trail

import (
	"regexp"
	"time"
)

// CategoryTrail tags records produced by the reconciler, keeping them apart
// from static point-of-interest categories.
const CategoryTrail = "trail-record"

// DisplayTimeLayout is the formatted time shown on records and kept in
// snapshots. Snapshot import re-parses it.
const DisplayTimeLayout = "2006/01/02 15:04:05"

// Record is one user photo placed on the trail timeline. The whole set is
// discarded and rebuilt on every reconciliation; no field survives an
// out-of-order insertion.
type Record struct {
	Order               int      `json:"order"`
	Time                string   `json:"time"`
	RawDate             string   `json:"rawDateStr,omitempty"`
	Lat                 float64  `json:"lat"`
	Lon                 float64  `json:"lon"`
	TimeElapsedMin      float64  `json:"timeElapsed"`
	DistanceSinceLastKm float64  `json:"distanceSinceLast"`
	TotalTimeMin        float64  `json:"totalTime"`
	TotalDistanceKm     float64  `json:"totalDistance"`
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Image               string   `json:"image,omitempty"`
	Categories          []string `json:"categories"`
}

// Snapshot is the round-trip JSON artifact. PhotoRecords is a pointer so a
// missing or null field can be told apart from an empty list on import.
type Snapshot struct {
	HikeName     string       `json:"hikeName"`
	ExportTime   time.Time    `json:"exportTime"`
	GPXTrack     [][2]float64 `json:"gpxTrack"`
	PhotoRecords *[]Record    `json:"photoRecords"`
}

var exifDatePrefix = regexp.MustCompile(`^(\d{4}):(\d{2}):(\d{2})`)

// ParseExifDate parses an EXIF-style datetime, normalizing the
// colon-delimited YYYY:MM:DD date prefix first.
func ParseExifDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	normalized := exifDatePrefix.ReplaceAllString(s, "$1/$2/$3")
	return parseAny(normalized)
}

// ParseRecordTime resolves the timestamp of an already-materialized record,
// preferring the retained raw date string over the display time.
func ParseRecordTime(r Record) (time.Time, bool) {
	if r.RawDate != "" {
		if t, ok := ParseExifDate(r.RawDate); ok {
			return t, ok
		}
	}
	return parseAny(r.Time)
}

var dateLayouts = []string{
	DisplayTimeLayout,
	"2006/01/02T15:04:05",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseAny(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
