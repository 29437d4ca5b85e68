package geo

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371

// DMSToDecimal converts a degrees/minutes/seconds triple and a hemisphere
// reference ("N", "S", "E", "W") to decimal degrees. It reports false when
// fewer than three components are supplied or the result is not finite.
func DMSToDecimal(dms []float64, ref string) (float64, bool) {
	if len(dms) < 3 {
		return 0, false
	}
	dd := dms[0] + dms[1]/60 + dms[2]/3600
	if ref == "S" || ref == "W" {
		dd = -dd
	}
	if math.IsNaN(dd) || math.IsInf(dd, 0) {
		return 0, false
	}
	return dd, true
}

// HaversineKm returns the great-circle distance between two coordinates in
// kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Haversine3DKm combines the horizontal great-circle distance with the
// elevation change (meters) pythagorean-style. Good enough for short track
// segments; it is not a slant distance over curved terrain.
func Haversine3DKm(lat1, lon1, ele1, lat2, lon2, ele2 float64) float64 {
	d2 := HaversineKm(lat1, lon1, lat2, lon2)
	dEleKm := (ele2 - ele1) / 1000
	return math.Sqrt(d2*d2 + dEleKm*dEleKm)
}

// FormatMinutesToHMS renders a duration in minutes as zero-padded HH:MM:SS.
// Hours may exceed 24. Negative or NaN input yields "N/A".
func FormatMinutesToHMS(minutes float64) string {
	if math.IsNaN(minutes) || minutes < 0 {
		return "N/A"
	}
	totalSeconds := int(math.Round(minutes * 60))
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}
