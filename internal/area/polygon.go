// Package area holds the pure geometry the packer runs against: seating
// area polygons, door exclusion zones and the stage-relative area adjuster.
// Nothing here keeps state.
package area

import (
	"github.com/piwi3910/SeatPlan/internal/model"
)

// PolygonBounds returns the bounding box of the area's four corners.
func PolygonBounds(p model.Polygon4) model.BBox {
	b := model.BBox{}
	for _, c := range p.Points() {
		b.Extend(c)
	}
	return b
}

// PointInPolygon is an even-odd ray cast towards +X. It works for any
// simple quadrilateral. A point on a left or top edge counts as inside and
// one on a right or bottom edge as outside, so adjacent areas never both
// claim a shared edge.
func PointInPolygon(p model.Point2D, poly model.Polygon4) bool {
	return pointInRing(p, poly.Points())
}

func pointInRing(p model.Point2D, ring []model.Point2D) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// RectInPolygon reports whether all four corners of the axis-aligned box
// lie inside the polygon.
func RectInPolygon(b model.BBox, poly model.Polygon4) bool {
	corners := [4]model.Point2D{
		{X: b.MinX, Y: b.MinY}, {X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY}, {X: b.MinX, Y: b.MaxY},
	}
	for _, c := range corners {
		if !PointInPolygon(c, poly) {
			return false
		}
	}
	return true
}
