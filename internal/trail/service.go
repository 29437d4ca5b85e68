package trail

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"backend-trailmap/internal/gpx"
	"backend-trailmap/internal/photo"
	"backend-trailmap/internal/stream"
	"backend-trailmap/internal/track"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var (
	ErrTrailNotFound   = errors.New("trail: not found")
	ErrNoRecords       = errors.New("trail: no records")
	ErrNoTrackDetail   = errors.New("trail: no per-point track detail")
	ErrNothingToExport = errors.New("trail: nothing to export")
	ErrBadSnapshot     = errors.New("trail: snapshot missing photoRecords array")
)

// Trail is one in-memory session. Its mutex serializes reconciliations and
// every read of derived state; a second trigger waits for the first to
// finish instead of observing a half-rebuilt record list.
type Trail struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	mu       sync.Mutex
	records  []Record
	points   []gpx.EnrichedPoint
	imported []track.Coordinate
}

// Summary is the session view handed to clients: counts plus which export
// paths are currently live.
type Summary struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	CreatedAt          time.Time `json:"created_at"`
	RecordCount        int       `json:"record_count"`
	TrackPointCount    int       `json:"track_point_count"`
	HasImportedTrack   bool      `json:"has_imported_track"`
	TrackDetailExport  bool      `json:"track_detail_export"`
	TrailRecordsExport bool      `json:"trail_records_export"`
}

type Service struct {
	mu     sync.RWMutex
	trails map[string]*Trail

	hub        *stream.Hub
	extractor  photo.Extractor
	transcoder photo.Transcoder
}

func NewService(hub *stream.Hub) *Service {
	return &Service{
		trails:     map[string]*Trail{},
		hub:        hub,
		extractor:  photo.ExifExtractor{},
		transcoder: photo.UnsupportedTranscoder{},
	}
}

// SetTranscoder installs an external HEIC transcoder collaborator.
func (s *Service) SetTranscoder(tr photo.Transcoder) { s.transcoder = tr }

func (s *Service) Create(name string) *Trail {
	t := &Trail{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.trails[t.ID] = t
	s.mu.Unlock()
	return t
}

func (s *Service) get(id string) (*Trail, error) {
	s.mu.RLock()
	t, ok := s.trails[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrTrailNotFound
	}
	return t, nil
}

func (s *Service) Summary(id string) (Summary, error) {
	t, err := s.get(id)
	if err != nil {
		return Summary{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return Summary{
		ID:                 t.ID,
		Name:               t.Name,
		CreatedAt:          t.CreatedAt,
		RecordCount:        len(t.records),
		TrackPointCount:    len(t.points),
		HasImportedTrack:   len(t.imported) > 0,
		TrackDetailExport:  len(t.points) > 0,
		TrailRecordsExport: len(t.records) > 0,
	}, nil
}

// UploadTrack parses GPX bytes into the canonical enriched sequence,
// replacing any previous track state including an imported polyline.
func (s *Service) UploadTrack(ctx context.Context, id string, data []byte) (int, error) {
	t, err := s.get(id)
	if err != nil {
		return 0, err
	}

	points, err := gpx.Parse(data)
	if err != nil {
		// Prior state stays untouched on a failed upload.
		return 0, err
	}

	t.mu.Lock()
	t.points = points
	t.imported = nil
	t.mu.Unlock()

	s.publish(ctx, t.ID, event{Type: "track_uploaded", TrailID: t.ID, PointCount: len(points)})
	return len(points), nil
}

// Track projects the current track and records into GeoJSON under the given
// marker mode. An imported polyline renders as a single segment with no
// markers, since no per-point detail exists for it.
func (s *Service) Track(id string, mode track.Mode) (*geojson.FeatureCollection, error) {
	t, err := s.get(id)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var fc *geojson.FeatureCollection
	switch {
	case len(t.points) > 0:
		fc = track.FeatureCollection(t.points, mode)
	case len(t.imported) > 0:
		fc = geojson.NewFeatureCollection()
		fc.Append(track.PolylineFeature(t.imported))
	default:
		fc = geojson.NewFeatureCollection()
	}

	for _, r := range t.records {
		fc.Append(recordFeature(r))
	}
	return fc, nil
}

// UploadPhotos materializes a photo batch and reconciles it against the
// current record set.
func (s *Service) UploadPhotos(ctx context.Context, id string, files []photo.File) ([]Record, error) {
	t, err := s.get(id)
	if err != nil {
		return nil, err
	}

	uploads := photo.ProcessBatch(files, s.extractor, s.transcoder)

	t.mu.Lock()
	t.records = Reconcile(t.records, uploads)
	records := snapshotRecords(t.records)
	t.mu.Unlock()

	s.publishReconciled(ctx, t.ID, records)
	return records, nil
}

// Import replaces trail state from a JSON snapshot. photoRecords must be
// present and an array; its absence is a hard parse error. A non-empty
// gpxTrack replaces the polyline but restores no per-point detail, so the
// track-detail export path goes dark.
func (s *Service) Import(ctx context.Context, id string, data []byte) ([]Record, error) {
	t, err := s.get(id)
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.PhotoRecords == nil {
		return nil, ErrBadSnapshot
	}

	records := Reconcile(*snap.PhotoRecords, nil)

	t.mu.Lock()
	t.records = records
	if len(snap.GPXTrack) > 0 {
		t.imported = make([]track.Coordinate, 0, len(snap.GPXTrack))
		for _, c := range snap.GPXTrack {
			t.imported = append(t.imported, track.Coordinate(c))
		}
		t.points = nil
	}
	if snap.HikeName != "" {
		t.Name = snap.HikeName
	}
	out := snapshotRecords(t.records)
	t.mu.Unlock()

	s.publishReconciled(ctx, t.ID, out)
	return out, nil
}

// ClearData drops all trail records and track state. Static points of
// interest live in their own domain and are never touched.
func (s *Service) ClearData(ctx context.Context, id string) error {
	t, err := s.get(id)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.records = nil
	t.points = nil
	t.imported = nil
	t.mu.Unlock()

	s.publish(ctx, t.ID, event{Type: "cleared", TrailID: t.ID})
	return nil
}

// Records returns a copy of the current record sequence.
func (s *Service) Records(id string) ([]Record, error) {
	t, err := s.get(id)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return snapshotRecords(t.records), nil
}

// TrackPoints returns the enriched GPX sequence, or ErrNoTrackDetail when
// only an imported polyline (or nothing) is present.
func (s *Service) TrackPoints(id string) ([]gpx.EnrichedPoint, error) {
	t, err := s.get(id)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.points) == 0 {
		return nil, ErrNoTrackDetail
	}
	out := make([]gpx.EnrichedPoint, len(t.points))
	copy(out, t.points)
	return out, nil
}

// BuildSnapshot assembles the round-trip JSON artifact for export.
func (s *Service) BuildSnapshot(id string) (Snapshot, error) {
	t, err := s.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.records) == 0 {
		return Snapshot{}, ErrNoRecords
	}

	var coords [][2]float64
	switch {
	case len(t.points) > 0:
		// The exported track mirrors the drawn polyline: filtered segments,
		// flattened.
		for _, segment := range track.SplitSegments(t.points) {
			for _, c := range segment {
				coords = append(coords, c)
			}
		}
	case len(t.imported) > 0:
		for _, c := range t.imported {
			coords = append(coords, c)
		}
	}

	records := snapshotRecords(t.records)
	return Snapshot{
		HikeName:     t.Name,
		ExportTime:   time.Now().UTC(),
		GPXTrack:     coords,
		PhotoRecords: &records,
	}, nil
}

type event struct {
	Type       string  `json:"type"`
	TrailID    string  `json:"trail_id"`
	Records    int     `json:"records,omitempty"`
	PointCount int     `json:"points,omitempty"`
	LastRecord *Record `json:"last_record,omitempty"`
}

// publishReconciled emits the post-reconciliation event. Carrying the last
// record lets the display layer fly to it and open its popup.
func (s *Service) publishReconciled(ctx context.Context, trailID string, records []Record) {
	ev := event{Type: "reconciled", TrailID: trailID, Records: len(records)}
	if len(records) > 0 {
		last := records[len(records)-1]
		ev.LastRecord = &last
	}
	s.publish(ctx, trailID, ev)
}

func (s *Service) publish(_ context.Context, trailID string, ev event) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("trail: event marshal failed: %v", err)
		return
	}
	s.hub.Broadcast(trailID, payload)
}

func snapshotRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

func recordFeature(r Record) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{r.Lon, r.Lat})
	f.Properties["kind"] = "record"
	f.Properties["order"] = r.Order
	f.Properties["name"] = r.Name
	f.Properties["time"] = r.Time
	f.Properties["id"] = r.ID
	return f
}
