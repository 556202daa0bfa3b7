package view

import (
	"math"

	"github.com/ingyamilmolinar/rhythmlab/core/beat"
)

// MaxSides caps polygon vertices; a 400-sided figure is unreadable anyway.
const MaxSides = beat.MaxBeats

// PolygonStart points the first vertex straight up in screen coordinates.
const PolygonStart = 270.0

type Point struct{ X, Y float64 }

// Polygon returns the vertices of a regular polygon centred on (cx, cy),
// starting at angleDeg and going clockwise on screen. Sides are clamped to
// [1, MaxSides]; one side yields a single point, two a line.
func Polygon(sides int, angleDeg, cx, cy, r float64) []Point {
	if sides < 1 {
		sides = 1
	}
	if sides > MaxSides {
		sides = MaxSides
	}
	pts := make([]Point, sides)
	step := 360.0 / float64(sides)
	for i := range pts {
		rad := (angleDeg + step*float64(i)) * math.Pi / 180
		pts[i] = Point{X: cx + r*math.Cos(rad), Y: cy + r*math.Sin(rad)}
	}
	return pts
}

// OrbitPoint is where the rotating marker sits on a circle of radius r after
// rotating angleDeg clockwise from the top.
func OrbitPoint(angleDeg, cx, cy, r float64) Point {
	rad := (PolygonStart + angleDeg) * math.Pi / 180
	return Point{X: cx + r*math.Cos(rad), Y: cy + r*math.Sin(rad)}
}
