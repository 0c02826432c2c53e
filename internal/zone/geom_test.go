package zone

import "testing"

var squareRing = [][]float64{
	{-9.2, 38.7},
	{-9.1, 38.7},
	{-9.1, 38.8},
	{-9.2, 38.8},
	{-9.2, 38.7},
}

func TestGreatCircleMeters(t *testing.T) {
	same := greatCircleMeters(38.7223, -9.1393, 38.7223, -9.1393, defaultEarthRadiusMeters)
	if same != 0 {
		t.Fatalf("same point: got %f want 0", same)
	}
	// Lisbon to Porto is roughly 274 km.
	d := greatCircleMeters(38.7223, -9.1393, 41.1579, -8.6291, defaultEarthRadiusMeters)
	if d < 270_000 || d > 280_000 {
		t.Fatalf("Lisbon-Porto: got %f", d)
	}
	// Distances scale linearly with the sphere radius.
	if half := greatCircleMeters(38.7223, -9.1393, 41.1579, -8.6291, defaultEarthRadiusMeters/2); half < d/2-1 || half > d/2+1 {
		t.Fatalf("half sphere: got %f want %f", half, d/2)
	}
}

func TestPointInPolygon(t *testing.T) {
	cases := []struct {
		name string
		lat  float64
		lng  float64
		want bool
	}{
		{name: "inside", lat: 38.75, lng: -9.15, want: true},
		{name: "north of square", lat: 38.9, lng: -9.15, want: false},
		{name: "east of square", lat: 38.75, lng: -9.05, want: false},
		{name: "west of square", lat: 38.75, lng: -9.25, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pointInPolygon(tc.lat, tc.lng, squareRing); got != tc.want {
				t.Fatalf("got=%v want=%v", got, tc.want)
			}
		})
	}
}

func TestPointInPolygonAtVertex(t *testing.T) {
	// A point on a vertex may land on either side, but must not panic.
	for _, vertex := range squareRing {
		_ = pointInPolygon(vertex[1], vertex[0], squareRing)
	}
}
