package domain

// City is reference data resolving a city name to a fixed point.
type City struct {
	ID        int64
	Name      string
	Latitude  float64
	Longitude float64
}

// Point returns the city's coordinates.
func (c City) Point() Point {
	return Point{Lat: c.Latitude, Lon: c.Longitude}
}
