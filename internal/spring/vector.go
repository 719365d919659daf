package spring

import "math"

// Vec2 is a 2-D velocity or displacement. Positions use [Point]; keeping
// the two apart makes the fitting signatures read the way they mean.
type Vec2 struct {
	X, Y float64
}

// Norm returns the vector magnitude.
func (v Vec2) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Scale returns the vector multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Point is a 2-D animated position.
type Point struct {
	X, Y float64
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Norm()
}
