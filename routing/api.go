package routing

// GeoRouteResponse is what the map client draws
type GeoRouteResponse struct {
	Route     []Coordinate `json:"route"`
	DistanceM float64      `json:"distanceM"`
}

func PrepareGeoResponse(source, destination Coordinate) GeoRouteResponse {
	return GeoRouteResponse{
		Route:     GeoRoute(source, destination),
		DistanceM: HaversineMeters(source, destination),
	}
}
