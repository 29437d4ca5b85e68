// Package export renders the reconciled trail data into the downloadable
// artifacts: three CSV layouts and the round-trip JSON snapshot.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"backend-trailmap/internal/gpx"
	"backend-trailmap/internal/shared/geo"
	"backend-trailmap/internal/trail"
)

// bom prefixes every CSV so spreadsheet tools detect UTF-8.
const bom = "\uFEFF"

const trailHeader = "Order,Time,Latitude,Longitude,Time Since Previous (HH:MM:SS),Distance Since Previous (km),Total Time (HH:MM:SS),Total Distance (km)\n"

// TrailCSV renders the photo-record table, ordered by ordinal.
func TrailCSV(records []trail.Record) []byte {
	sorted := make([]trail.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(trailHeader)
	for _, r := range sorted {
		fmt.Fprintf(&b, "%d,%q,%.6f,%.6f,%s,%.3f,%s,%.3f\n",
			r.Order,
			r.Time,
			r.Lat,
			r.Lon,
			geo.FormatMinutesToHMS(r.TimeElapsedMin),
			r.DistanceSinceLastKm,
			geo.FormatMinutesToHMS(r.TotalTimeMin),
			r.TotalDistanceKm,
		)
	}
	return []byte(b.String())
}

const trackHeader = "Time,Latitude,Longitude,Elevation (m),Time Since Previous (HH:MM:SS),Elevation Change (m),2D Distance Since Previous (km),3D Distance Since Previous (km),Total Time (HH:MM:SS),Total 2D Distance (km),Total 3D Distance (km)\n"

// TrackCSV renders the per-point GPX detail table.
func TrackCSV(points []gpx.EnrichedPoint) []byte {
	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(trackHeader)
	for _, p := range points {
		fmt.Fprintf(&b, "%q,%.6f,%.6f,%s,%s,%s,%.4f,%.4f,%s,%.3f,%.3f\n",
			p.Time.Format(trail.DisplayTimeLayout),
			p.Lat,
			p.Lon,
			optional(p.Elevation, p.HasElevation),
			geo.FormatMinutesToHMS(p.TimeElapsedMin),
			optional(p.ElevationChange, p.HasElevDelta),
			p.Distance2DKm,
			p.Distance3DKm,
			geo.FormatMinutesToHMS(p.TotalTimeMin),
			p.TotalDistance2DKm,
			p.TotalDistance3DKm,
		)
	}
	return []byte(b.String())
}

const consolidatedHeader = "Type,Time,Latitude,Longitude,Elevation (m),Time Since Previous (HH:MM:SS),Elevation Change (m),3D Distance Since Previous (km),Total 3D Distance (km),Name/Note\n"

// consolidatedRow is one pre-formatted line of the merged table, with the
// parsed timestamp kept aside for sorting.
type consolidatedRow struct {
	at      time.Time
	hasTime bool
	line    string
}

// ConsolidatedCSV interleaves GPX points and photo records into a single
// table sorted by absolute timestamp. Rows with an unparseable timestamp
// keep their relative position.
func ConsolidatedCSV(points []gpx.EnrichedPoint, records []trail.Record) []byte {
	rows := make([]consolidatedRow, 0, len(points)+len(records))

	for _, p := range points {
		rows = append(rows, consolidatedRow{
			at:      p.Time,
			hasTime: true,
			line: fmt.Sprintf("GPX,%q,%.6f,%.6f,%s,%s,%s,%.4f,%.3f,%q\n",
				p.Time.Format(trail.DisplayTimeLayout),
				p.Lat,
				p.Lon,
				optional(p.Elevation, p.HasElevation),
				geo.FormatMinutesToHMS(p.TimeElapsedMin),
				optional(p.ElevationChange, p.HasElevDelta),
				p.Distance3DKm,
				p.TotalDistance3DKm,
				"N/A",
			),
		})
	}

	for _, r := range records {
		at, ok := trail.ParseRecordTime(r)
		rows = append(rows, consolidatedRow{
			at:      at,
			hasTime: ok,
			line: fmt.Sprintf("PHOTO,%q,%.6f,%.6f,N/A,%s,N/A,%.4f,%.3f,%q\n",
				r.Time,
				r.Lat,
				r.Lon,
				geo.FormatMinutesToHMS(r.TimeElapsedMin),
				r.DistanceSinceLastKm,
				r.TotalDistanceKm,
				fmt.Sprintf("Photo #%d", r.Order),
			),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].hasTime || !rows[j].hasTime {
			return false
		}
		return rows[i].at.Before(rows[j].at)
	})

	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(consolidatedHeader)
	for _, row := range rows {
		b.WriteString(row.line)
	}
	return []byte(b.String())
}

func optional(v float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}
