// Package vec provides the 2D vector arithmetic used by the rope engine.
//
// All functions are pure and operate on [Vec2] values; nothing here keeps
// state or allocates.
package vec

import "math"

// Vec2 is a 2D coordinate or displacement.
type Vec2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

func New(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func Zero() Vec2 { return Vec2{} }

func Add(a, b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }

func Sub(a, b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Mul multiplies componentwise.
func Mul(a, b Vec2) Vec2 { return Vec2{a.X * b.X, a.Y * b.Y} }

func Scale(v Vec2, k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Mag returns the Euclidean norm of v.
func Mag(v Vec2) float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Normalized returns the unit vector along v, or the zero vector when v has
// zero length. Coincident rope nodes rely on this to produce no correction.
func Normalized(v Vec2) Vec2 {
	m := Mag(v)
	if m == 0 {
		return Zero()
	}
	return Vec2{v.X / m, v.Y / m}
}

// Dist is the distance between two points.
func Dist(a, b Vec2) float64 { return Mag(Sub(b, a)) }

// Lerp interpolates between scalars: a + (b-a)*t.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// LerpVec applies Lerp to each component.
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// IsFinite reports whether both components are neither NaN nor Inf.
func IsFinite(v Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Slice returns v as a JSON-friendly pair.
func (v Vec2) Slice() [2]float64 { return [2]float64{v.X, v.Y} }
