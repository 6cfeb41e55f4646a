package routing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const EARTH_RADIUS_KM = 6371.0

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

// ParseCoordinate accepts "lat,lng".
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: expected lat,lng", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("coordinate %q out of range", s)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// HaversineMeters returns the great-circle distance in meters.
func HaversineMeters(coord1, coord2 Coordinate) float64 {
	phi1 := toRadians(coord1.Lat)
	phi2 := toRadians(coord2.Lat)
	deltaPhi := toRadians(coord2.Lat - coord1.Lat)
	deltaLambda := toRadians(coord2.Lon - coord1.Lon)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EARTH_RADIUS_KM * c * 1000
}

// GeoRoute is a straight source to destination polyline for the map view.
func GeoRoute(source, destination Coordinate) []Coordinate {
	return []Coordinate{source, destination}
}
