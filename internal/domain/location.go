package domain

import "strconv"

// Immutable geographic coordinates (latitude, longitude).
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CentralLocation is the default hub used when no better location is known.
var CentralLocation = Location{Lat: 37.785808985747316, Lng: -122.40639245940856}

// Return coordinates as [lon, lat] for external API compatibility.
func (l Location) CoordsToList() []float64 { return []float64{l.Lng, l.Lat} }

// Key returns a stable string form usable as a cache or map key.
func (l Location) Key() string {
	return strconv.FormatFloat(l.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(l.Lng, 'f', 6, 64)
}
