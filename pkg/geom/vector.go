package geom

import (
	"fmt"
	"math"
)

// Vector2 is a 2D vector or point in document coordinates.
type Vector2 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// V is shorthand for Vector2{X: x, Y: y}.
func V(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

// Zero is the origin.
var Zero = Vector2{}

func (v Vector2) Add(o Vector2) Vector2   { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2   { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Neg() Vector2            { return Vector2{-v.X, -v.Y} }
func (v Vector2) Scale(s float64) Vector2 { return Vector2{v.X * s, v.Y * s} }
func (v Vector2) Min(o Vector2) Vector2   { return Vector2{math.Min(v.X, o.X), math.Min(v.Y, o.Y)} }
func (v Vector2) Max(o Vector2) Vector2   { return Vector2{math.Max(v.X, o.X), math.Max(v.Y, o.Y)} }
func (v Vector2) String() string          { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }
func (v Vector2) IsFinite() bool          { return isFinite(v.X) && isFinite(v.Y) }
func (v Vector2) ApproxEqual(o Vector2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
