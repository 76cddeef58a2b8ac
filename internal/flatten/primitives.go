package flatten

import (
	"math"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// PrimitiveKind tags a flattened primitive.
type PrimitiveKind string

const (
	KindLine  PrimitiveKind = "line"
	KindCurve PrimitiveKind = "curve"
)

// Primitive is one renderable item in world (or centred) coordinates.
// Lines use Start and End; curves use Curve.
type Primitive struct {
	Kind        PrimitiveKind `json:"kind"`
	Layer       string        `json:"layer"`
	Color       int           `json:"color"` // resolved ACI, never ByLayer/ByBlock
	Start       model.Point2D `json:"start"`
	End         model.Point2D `json:"end"`
	Curve       *Curve        `json:"curve,omitempty"`
	Placeholder bool          `json:"placeholder,omitempty"`
}

// Curve describes circles, arcs and ellipses after transformation as
// p(t) = Center + U*cos(t) + V*sin(t) for t in [Start, End]. U and V are
// the transformed local axes, so non-uniform scaling stays exact.
type Curve struct {
	Center model.Point2D `json:"center"`
	U      model.Point2D `json:"u"`
	V      model.Point2D `json:"v"`
	Start  float64       `json:"start"` // radians
	End    float64       `json:"end"`
	Closed bool          `json:"closed,omitempty"`
}

// Radius is the effective radius: the mean of the two axis lengths.
func (c Curve) Radius() float64 {
	return (math.Hypot(c.U.X, c.U.Y) + math.Hypot(c.V.X, c.V.Y)) / 2
}

// At returns the point at parameter t.
func (c Curve) At(t float64) model.Point2D {
	cos, sin := math.Cos(t), math.Sin(t)
	return model.Point2D{
		X: c.Center.X + c.U.X*cos + c.V.X*sin,
		Y: c.Center.Y + c.U.Y*cos + c.V.Y*sin,
	}
}

// Points tessellates the curve into segments+1 points. Closed curves
// repeat their first point at the end.
func (c Curve) Points(segments int) []model.Point2D {
	if segments < 1 {
		segments = 1
	}
	pts := make([]model.Point2D, segments+1)
	for i := 0; i <= segments; i++ {
		pts[i] = c.At(c.Start + (c.End-c.Start)*float64(i)/float64(segments))
	}
	return pts
}

func (c Curve) translate(dx, dy float64) Curve {
	c.Center = model.Point2D{X: c.Center.X + dx, Y: c.Center.Y + dy}
	return c
}

// newCurve builds the world curve for a local ellipse with the given centre,
// axis angle (radians), radii and parameter range.
func newCurve(m Affine, center model.Point2D, axis, rx, ry, start, end float64, closed bool) Curve {
	cos, sin := math.Cos(axis), math.Sin(axis)
	return Curve{
		Center: m.Apply(center),
		U:      m.ApplyVector(model.Point2D{X: rx * cos, Y: rx * sin}),
		V:      m.ApplyVector(model.Point2D{X: -ry * sin, Y: ry * cos}),
		Start:  start,
		End:    end,
		Closed: closed,
	}
}

// TextItem is a positioned label. Rotation is in degrees.
type TextItem struct {
	Layer     string        `json:"layer"`
	Color     int           `json:"color"`
	Content   string        `json:"content"`
	Position  model.Point2D `json:"position"`
	Height    float64       `json:"height"`
	Rotation  float64       `json:"rotation"`
	MultiLine bool          `json:"multiline,omitempty"`
}

// Points returns the primitive's outline points, tessellating curves with
// the given segment count.
func (p Primitive) Points(segments int) []model.Point2D {
	if p.Kind == KindCurve && p.Curve != nil {
		return p.Curve.Points(segments)
	}
	return []model.Point2D{p.Start, p.End}
}
