package flatten

import (
	"math"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// Affine is a 2D affine transform in row-major 2x3 form:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the transform that leaves points unchanged.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Affine {
	return Affine{A: 1, C: x, E: 1, F: y}
}

// Scale returns a scaling about the origin.
func Scale(sx, sy float64) Affine {
	return Affine{A: sx, E: sy}
}

// Rotate returns a counter-clockwise rotation about the origin, in degrees.
func Rotate(deg float64) Affine {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return Affine{A: cos, B: -sin, D: sin, E: cos}
}

// Multiply returns m*o: o is applied first, then m. A nested block's world
// transform is parent.Multiply(child).
func (m Affine) Multiply(o Affine) Affine {
	return Affine{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// Apply transforms a point.
func (m Affine) Apply(p model.Point2D) model.Point2D {
	return model.Point2D{X: m.A*p.X + m.B*p.Y + m.C, Y: m.D*p.X + m.E*p.Y + m.F}
}

// ApplyVector transforms a direction, ignoring translation.
func (m Affine) ApplyVector(v model.Point2D) model.Point2D {
	return model.Point2D{X: m.A*v.X + m.B*v.Y, Y: m.D*v.X + m.E*v.Y}
}

// Determinant of the linear part. Negative means the transform mirrors.
func (m Affine) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// RotationDegrees is the angle the transform gives the local X axis.
func (m Affine) RotationDegrees() float64 {
	return math.Atan2(m.D, m.A) * 180 / math.Pi
}

// ScaleFactor is the average linear scale, used for text heights.
func (m Affine) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

// InsertTransform places a block: the block base point moves to the origin,
// then the insert is scaled, rotated (degrees) and translated to pos.
func InsertTransform(base, pos model.Point2D, sx, sy, rotation float64) Affine {
	return Translate(pos.X, pos.Y).
		Multiply(Rotate(rotation)).
		Multiply(Scale(sx, sy)).
		Multiply(Translate(-base.X, -base.Y))
}
