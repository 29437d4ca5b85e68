package poi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"sync"
	"time"
)

// sourceEntry mirrors the upstream JSON shape. Coordinates are pointers so a
// missing field can be told apart from zero.
type sourceEntry struct {
	ID         string   `json:"id"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Name       string   `json:"name"`
	Date       string   `json:"date"`
	Image      string   `json:"image"`
	Categories []string `json:"categories"`
}

// Service holds the loaded markers and answers queries over them.
type Service struct {
	client  *http.Client
	sources []string

	mu      sync.RWMutex
	markers []StaticMarker
}

func NewService(sources []string, timeout time.Duration) *Service {
	return &Service{
		client:  &http.Client{Timeout: timeout},
		sources: sources,
	}
}

// Load fetches every configured source in parallel and joins the results in
// source order. A failing source is logged and skipped; it never blocks the
// others or the trail pipeline.
func (s *Service) Load(ctx context.Context) int {
	results := make([][]StaticMarker, len(s.sources))
	var wg sync.WaitGroup
	for i, url := range s.sources {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			markers, err := s.fetchSource(ctx, url)
			if err != nil {
				log.Printf("poi: source %s skipped: %v", url, err)
				return
			}
			results[i] = markers
		}(i, url)
	}
	wg.Wait()

	var all []StaticMarker
	for _, markers := range results {
		all = append(all, markers...)
	}

	s.mu.Lock()
	s.markers = all
	s.mu.Unlock()
	log.Printf("poi: loaded %d markers from %d sources", len(all), len(s.sources))
	return len(all)
}

func (s *Service) fetchSource(ctx context.Context, url string) ([]StaticMarker, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var entries []sourceEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("expected a JSON array: %w", err)
	}

	markers := make([]StaticMarker, 0, len(entries))
	for _, e := range entries {
		if !validCoords(e.Latitude, e.Longitude) {
			log.Printf("poi: source %s: dropping entry %q without coordinates", url, e.Name)
			continue
		}
		markers = append(markers, StaticMarker{
			ID:         e.ID,
			Latitude:   *e.Latitude,
			Longitude:  *e.Longitude,
			Name:       e.Name,
			Date:       e.Date,
			Image:      e.Image,
			Categories: e.Categories,
			Color:      ColorFor(e.Categories),
		})
	}
	return markers, nil
}

func validCoords(lat, lon *float64) bool {
	if lat == nil || lon == nil {
		return false
	}
	return !math.IsNaN(*lat) && !math.IsNaN(*lon)
}

// All returns the loaded markers, optionally filtered by category.
func (s *Service) All(category string) []StaticMarker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if category == "" {
		out := make([]StaticMarker, len(s.markers))
		copy(out, s.markers)
		return out
	}
	out := make([]StaticMarker, 0, len(s.markers))
	for _, m := range s.markers {
		if m.HasCategory(category) {
			out = append(out, m)
		}
	}
	return out
}
