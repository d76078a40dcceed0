package model

import "math"

// Point is a 2D coordinate on the driving plane. Trucks travel in straight
// lines at one distance unit per minute, so a distance is also a duration.
type Point struct {
	X float64
	Y float64
}

// Depot is the common origin and terminus of every route.
var Depot = Point{X: 0, Y: 0}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
