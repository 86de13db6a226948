package domain

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the great-circle distance between a and b in kilometres
// using the spherical law of cosines. The acos argument is clamped to
// [-1, 1] so identical and antipodal points never produce NaN.
func Distance(a, b Point) float64 {
	if a == b {
		return 0
	}
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLon := radians(b.Lon - a.Lon)

	x := math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon) + math.Sin(lat1)*math.Sin(lat2)
	x = math.Max(-1, math.Min(1, x))
	return EarthRadiusKm * math.Acos(x)
}

// Within reports whether b lies within radiusKm of a.
func Within(a, b Point, radiusKm float64) bool {
	return Distance(a, b) <= radiusKm
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
