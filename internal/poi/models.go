// Package poi serves the static point-of-interest layer. POIs come from
// configured JSON sources fetched at startup and are read-only afterwards;
// clearing a trail never touches them.
package poi

// StaticMarker is one point of interest as served to clients. Color is
// derived from the first matching category and is not part of the source
// payload.
type StaticMarker struct {
	ID         string   `json:"id,omitempty"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Name       string   `json:"name,omitempty"`
	Date       string   `json:"date,omitempty"`
	Image      string   `json:"image,omitempty"`
	Categories []string `json:"categories"`
	Color      string   `json:"color"`
}

// DefaultColor is used when no category matches the palette.
const DefaultColor = "blue"

// categoryPalette maps categories to pin colors. Order matters: the first
// category a marker carries that appears here wins.
var categoryPalette = []struct {
	Category string
	Color    string
}{
	{"landmark", "red"},
	{"building", "black"},
	{"shrine", "yellow"},
	{"military", "green"},
	{"other", "blue"},
}

// ColorFor resolves the display color for a set of categories.
func ColorFor(categories []string) string {
	for _, entry := range categoryPalette {
		for _, c := range categories {
			if c == entry.Category {
				return entry.Color
			}
		}
	}
	return DefaultColor
}

// HasCategory reports whether the marker carries the given tag.
func (m StaticMarker) HasCategory(category string) bool {
	for _, c := range m.Categories {
		if c == category {
			return true
		}
	}
	return false
}
