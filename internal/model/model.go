package model

import "math"

// Point2D represents a 2D coordinate in drawing units.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dist returns the Euclidean distance between p and q.
func (p Point2D) Dist(q Point2D) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Point3D is a drawing coordinate with an optional elevation. The layout
// engine only ever uses X and Y.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// XY drops the elevation.
func (p Point3D) XY() Point2D {
	return Point2D{X: p.X, Y: p.Y}
}

// BBox is an axis-aligned bounding box. The zero value is "empty" only
// when Valid is false; use EmptyBBox to start an accumulation.
type BBox struct {
	MinX  float64 `json:"min_x"`
	MaxX  float64 `json:"max_x"`
	MinY  float64 `json:"min_y"`
	MaxY  float64 `json:"max_y"`
	Valid bool    `json:"valid"`
}

// EmptyBBox returns a box that contains nothing.
func EmptyBBox() BBox {
	return BBox{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
}

// NewBBox returns the box spanning the two corners in any order.
func NewBBox(a, b Point2D) BBox {
	return BBox{
		MinX:  math.Min(a.X, b.X),
		MaxX:  math.Max(a.X, b.X),
		MinY:  math.Min(a.Y, b.Y),
		MaxY:  math.Max(a.Y, b.Y),
		Valid: true,
	}
}

// Extend grows the box to include p.
func (b *BBox) Extend(p Point2D) {
	if !b.Valid {
		*b = BBox{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y, Valid: true}
		return
	}
	b.MinX = math.Min(b.MinX, p.X)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// Union grows the box to include o.
func (b *BBox) Union(o BBox) {
	if !o.Valid {
		return
	}
	b.Extend(Point2D{X: o.MinX, Y: o.MinY})
	b.Extend(Point2D{X: o.MaxX, Y: o.MaxY})
}

// Expand returns the box padded by d on every side.
func (b BBox) Expand(d float64) BBox {
	if !b.Valid {
		return b
	}
	return BBox{MinX: b.MinX - d, MaxX: b.MaxX + d, MinY: b.MinY - d, MaxY: b.MaxY + d, Valid: true}
}

// Width returns the horizontal extent (0 for an empty box).
func (b BBox) Width() float64 {
	if !b.Valid {
		return 0
	}
	return b.MaxX - b.MinX
}

// Height returns the vertical extent (0 for an empty box).
func (b BBox) Height() float64 {
	if !b.Valid {
		return 0
	}
	return b.MaxY - b.MinY
}

// Center returns the midpoint of the box.
func (b BBox) Center() Point2D {
	if !b.Valid {
		return Point2D{}
	}
	return Point2D{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Intersects reports whether the two boxes overlap with positive area.
// Touching edges do not count.
func (b BBox) Intersects(o BBox) bool {
	if !b.Valid || !o.Valid {
		return false
	}
	return b.MinX < o.MaxX && b.MaxX > o.MinX &&
		b.MinY < o.MaxY && b.MaxY > o.MinY
}

// Translate shifts the box by dx, dy.
func (b BBox) Translate(dx, dy float64) BBox {
	if !b.Valid {
		return b
	}
	return BBox{MinX: b.MinX + dx, MaxX: b.MaxX + dx, MinY: b.MinY + dy, MaxY: b.MaxY + dy, Valid: true}
}

// Outline represents a polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Polygon4 is a seating area described by four ordered corners. TopLeft and
// BottomLeft form the left side, TopRight and BottomRight the right side.
type Polygon4 struct {
	TopLeft     Point2D `json:"top_left"`
	TopRight    Point2D `json:"top_right"`
	BottomRight Point2D `json:"bottom_right"`
	BottomLeft  Point2D `json:"bottom_left"`
}

// RectPolygon builds an axis-aligned Polygon4 covering the box. Y grows
// downward, so the top edge is MinY.
func RectPolygon(b BBox) Polygon4 {
	return Polygon4{
		TopLeft:     Point2D{X: b.MinX, Y: b.MinY},
		TopRight:    Point2D{X: b.MaxX, Y: b.MinY},
		BottomRight: Point2D{X: b.MaxX, Y: b.MaxY},
		BottomLeft:  Point2D{X: b.MinX, Y: b.MaxY},
	}
}

// Points returns the corners in ring order.
func (p Polygon4) Points() []Point2D {
	return []Point2D{p.TopLeft, p.TopRight, p.BottomRight, p.BottomLeft}
}

// Outline returns the corners as an Outline.
func (p Polygon4) Outline() Outline {
	return Outline(p.Points())
}

// IsAxisAligned reports whether the polygon is an axis-aligned rectangle
// (within eps), in which case its bounding box is the polygon itself.
func (p Polygon4) IsAxisAligned(eps float64) bool {
	near := func(a, b float64) bool { return math.Abs(a-b) <= eps }
	return near(p.TopLeft.X, p.BottomLeft.X) && near(p.TopRight.X, p.BottomRight.X) &&
		near(p.TopLeft.Y, p.TopRight.Y) && near(p.BottomLeft.Y, p.BottomRight.Y)
}
