// Package geo holds the pure geospatial math every other component leans on.
package geo

import (
	"fmt"
	"math"

	"tourguide/internal/types"
)

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000

// Coordinate is any value exposing a decimal-degree lat/lng pair.
type Coordinate interface {
	Coords() (lat, lng float64)
}

// Point is the minimal Coordinate implementation.
type Point struct {
	Lat float64
	Lng float64
}

func (p Point) Coords() (float64, float64) { return p.Lat, p.Lng }

// PositionPoint adapts a types.Position to a Coordinate.
func PositionPoint(p types.Position) Point {
	return Point{Lat: p.Latitude, Lng: p.Longitude}
}

// AttractionPoint adapts a types.Attraction to a Coordinate.
func AttractionPoint(a types.Attraction) Point {
	return Point{Lat: a.Latitude, Lng: a.Longitude}
}

// DistanceMeters returns the great-circle distance between two coordinates
// using the haversine formula. NaN inputs propagate NaN; callers validate
// upstream.
func DistanceMeters(a, b Coordinate) float64 {
	lat1, lng1 := a.Coords()
	lat2, lng2 := b.Coords()

	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// IsWithinBounds reports whether the coordinate pair lies inside the bounding
// box. Edges are inclusive.
func IsWithinBounds(lat, lng float64, b types.Bounds) bool {
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}

// FormatDistance renders a distance for display: meters below 1km, otherwise
// kilometers with one decimal.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}
