// README: Geographic value objects shared by planner, maps and trip history.
package types

import "math"

// Coordinate is a (longitude, latitude) pair in decimal degrees.
type Coordinate struct {
	Lng float64 `json:"lng" bson:"lng"`
	Lat float64 `json:"lat" bson:"lat"`
}

// Valid reports whether both components are finite and within range.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lng) || math.IsNaN(c.Lat) || math.IsInf(c.Lng, 0) || math.IsInf(c.Lat, 0) {
		return false
	}
	return c.Lng >= -180 && c.Lng <= 180 && c.Lat >= -90 && c.Lat <= 90
}

// Pair returns the coordinate in [lon, lat] order.
func (c Coordinate) Pair() [2]float64 {
	return [2]float64{c.Lng, c.Lat}
}

// Waypoint is a named location.
type Waypoint struct {
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
}
