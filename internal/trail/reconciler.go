package trail

import (
	"fmt"
	"log"
	"sort"
	"time"

	"backend-trailmap/internal/photo"
	"backend-trailmap/internal/shared/geo"

	"github.com/google/uuid"
)

// mergeItem is the tagged union the reconciler sorts: either an existing
// record or a freshly uploaded photo.
type mergeItem struct {
	isNew  bool
	record Record       // when !isNew
	upload photo.Upload // when isNew

	sortTime time.Time
	hasTime  bool
}

// Reconcile merges already-materialized records with new photo uploads into a
// fresh, fully recomputed record sequence. Every cumulative field and ordinal
// is reassigned from scratch: inserting one out-of-order photo changes every
// record after it. Uploads without a usable GPS position and date are logged
// and excluded; they never fail the batch. The caller must have finished
// materializing upload images before calling (photo.ProcessBatch does).
func Reconcile(existing []Record, uploads []photo.Upload) []Record {
	items := make([]mergeItem, 0, len(existing)+len(uploads))

	for _, r := range existing {
		item := mergeItem{record: r}
		item.sortTime, item.hasTime = ParseRecordTime(r)
		items = append(items, item)
	}

	for _, u := range uploads {
		if _, ok := geo.DMSToDecimal(u.LatDMS, u.LatRef); !ok || u.DateString == "" {
			log.Printf("trail: upload %q has no usable GPS position or date, excluded", u.Name)
			continue
		}
		item := mergeItem{isNew: true, upload: u}
		item.sortTime, item.hasTime = ParseExifDate(u.DateString)
		items = append(items, item)
	}

	// Items with unparseable dates keep their incoming relative order; the
	// stable sort treats them as equal to every neighbor.
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].hasTime || !items[j].hasTime {
			return false
		}
		return items[i].sortTime.Before(items[j].sortTime)
	})

	return rebuild(items)
}

func rebuild(items []mergeItem) []Record {
	records := make([]Record, 0, len(items))

	var (
		startSet  bool
		start     time.Time
		totalKm   float64
		prev      *Record
		prevTime  time.Time
		prevTimed bool
	)

	for _, item := range items {
		lat, lon, ok := resolveCoords(item)
		if !ok {
			log.Printf("trail: record %q has invalid coordinates, skipped", itemName(item))
			continue
		}

		t, timed := resolveTime(item)
		if !startSet && timed {
			start = t
			startSet = true
		}

		rec := Record{
			Order:      len(records) + 1,
			Lat:        lat,
			Lon:        lon,
			ID:         uuid.NewString(),
			Categories: []string{CategoryTrail},
		}
		rec.Name = fmt.Sprintf("Trail photo #%d", rec.Order)

		if timed {
			rec.Time = t.Format(DisplayTimeLayout)
			rec.TotalTimeMin = t.Sub(start).Minutes()
		} else {
			rec.Time = "unknown"
		}
		if item.isNew {
			rec.RawDate = item.upload.DateString
			rec.Image = item.upload.ImageURI
		} else {
			rec.RawDate = item.record.RawDate
			rec.Image = item.record.Image
		}

		if prev != nil {
			if timed && prevTimed {
				rec.TimeElapsedMin = t.Sub(prevTime).Minutes()
			}
			rec.DistanceSinceLastKm = geo.HaversineKm(prev.Lat, prev.Lon, lat, lon)
			totalKm += rec.DistanceSinceLastKm
		}
		rec.TotalDistanceKm = totalKm

		records = append(records, rec)
		prev = &records[len(records)-1]
		prevTime, prevTimed = t, timed
	}
	return records
}

func resolveCoords(item mergeItem) (float64, float64, bool) {
	if item.isNew {
		lat, okLat := geo.DMSToDecimal(item.upload.LatDMS, item.upload.LatRef)
		lon, okLon := geo.DMSToDecimal(item.upload.LonDMS, item.upload.LonRef)
		return lat, lon, okLat && okLon
	}
	r := item.record
	return r.Lat, r.Lon, !(r.Lat == 0 && r.Lon == 0)
}

func resolveTime(item mergeItem) (time.Time, bool) {
	if item.isNew {
		return ParseExifDate(item.upload.DateString)
	}
	return ParseRecordTime(item.record)
}

func itemName(item mergeItem) string {
	if item.isNew {
		return item.upload.Name
	}
	return item.record.Name
}
