package zone

import "math"

const defaultEarthRadiusMeters = 6_371_000.0

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// greatCircleMeters is the haversine distance on a sphere of the given
// radius.
func greatCircleMeters(lat1, lng1, lat2, lng2, radiusMeters float64) float64 {
	dlat := radians(lat2 - lat1)
	dlng := radians(lng2 - lng1)
	sinLat := math.Sin(dlat / 2)
	sinLng := math.Sin(dlng / 2)
	a := sinLat*sinLat + math.Cos(radians(lat1))*math.Cos(radians(lat2))*sinLng*sinLng
	return 2 * radiusMeters * math.Asin(math.Sqrt(a))
}

// pointInPolygon ray-casts against a GeoJSON ring of (lng, lat) vertices.
// Points exactly on an edge may resolve to either side. The 1e-9 stand-in
// keeps horizontal edges from dividing by zero.
func pointInPolygon(lat, lng float64, ring [][]float64) bool {
	inside := false
	j := len(ring) - 1
	for i, vertex := range ring {
		xi, yi := vertex[0], vertex[1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > lat) != (yj > lat) {
			denominator := yj - yi
			if denominator == 0 {
				denominator = 1e-9
			}
			xIntersect := (xj-xi)*(lat-yi)/denominator + xi
			if lng < xIntersect {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
