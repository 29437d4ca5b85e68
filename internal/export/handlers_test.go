package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backend-trailmap/internal/trail"

	"github.com/gofiber/fiber/v2"
)

func newTestApp() (*fiber.App, *trail.Service) {
	svc := trail.NewService(nil)
	app := fiber.New()
	g := app.Group("/trails")
	trail.RegisterRoutes(g, svc)
	RegisterRoutes(g, svc)
	return app, svc
}

func gpxBody(n int) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><gpx><trk><trkseg>`)
	base := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<trkpt lat="%f" lon="%f"><ele>%d</ele><time>%s</time></trkpt>`,
			24.0+float64(i)*0.0005, 121.0, 1000+i, base.Add(time.Duration(i)*time.Minute).Format(time.RFC3339))
	}
	b.WriteString(`</trkseg></trk></gpx>`)
	return []byte(b.String())
}

func seed(t *testing.T, app *fiber.App) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/trails/", bytes.NewReader([]byte(`{"name":"export test"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: %v %d", err, resp.StatusCode)
	}
	var tr trail.Trail
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &tr); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/trails/"+tr.ID+"/gpx", bytes.NewReader(gpxBody(5)))
	if resp, err = app.Test(req); err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("gpx: %v %d", err, resp.StatusCode)
	}

	snap := `{"hikeName":"export test","photoRecords":[
		{"order":1,"time":"2024/05/01 07:02:30","lat":24.001,"lon":121.0}
	]}`
	req = httptest.NewRequest(http.MethodPost, "/trails/"+tr.ID+"/import", bytes.NewReader([]byte(snap)))
	req.Header.Set("Content-Type", "application/json")
	if resp, err = app.Test(req); err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("import: %v %d", err, resp.StatusCode)
	}
	return tr.ID
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestExportEndpoints(t *testing.T) {
	app, _ := newTestApp()
	id := seed(t, app)

	resp, body := get(t, app, "/trails/"+id+"/export/trail.csv")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("trail.csv status %d", resp.StatusCode)
	}
	if !strings.HasPrefix(body, "\uFEFFOrder,") {
		t.Fatalf("trail.csv body: %q", body[:40])
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type %q", ct)
	}
	if cd := resp.Header.Get(fiber.HeaderContentDisposition); !strings.HasPrefix(cd, "attachment;") {
		t.Fatalf("content disposition %q", cd)
	}

	resp, body = get(t, app, "/trails/"+id+"/export/track.csv")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("track.csv status %d", resp.StatusCode)
	}
	if got := strings.Count(body, "\n"); got != 6 { // header + 5 points
		t.Fatalf("track.csv rows: %d", got)
	}

	resp, body = get(t, app, "/trails/"+id+"/export/consolidated.csv")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("consolidated.csv status %d", resp.StatusCode)
	}
	if !strings.Contains(body, "PHOTO,") || !strings.Contains(body, "GPX,") {
		t.Fatalf("consolidated.csv missing merged rows")
	}

	resp, body = get(t, app, "/trails/"+id+"/export/snapshot.json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("snapshot.json status %d", resp.StatusCode)
	}
	var snap trail.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		t.Fatalf("snapshot decode: %v", err)
	}
	if snap.PhotoRecords == nil || len(*snap.PhotoRecords) != 1 {
		t.Fatalf("snapshot records: %+v", snap.PhotoRecords)
	}
	if len(snap.GPXTrack) == 0 {
		t.Fatalf("snapshot track empty")
	}
}

func TestExportNothingToExport(t *testing.T) {
	app, svc := newTestApp()
	tr := svc.Create("empty")

	for _, name := range []string{"trail.csv", "track.csv", "consolidated.csv", "snapshot.json"} {
		resp, _ := get(t, app, "/trails/"+tr.ID+"/export/"+name)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", name, resp.StatusCode)
		}
	}
}

func TestExportUnknownTrail(t *testing.T) {
	app, _ := newTestApp()
	resp, _ := get(t, app, "/trails/missing/export/trail.csv")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
