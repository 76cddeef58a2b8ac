package flatten

import (
	"math"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// InterpolateBulgePoints samples the polyline arc from v1 to v2 described
// by a DXF bulge factor (tan of a quarter of the included angle; negative
// runs clockwise). A zero bulge returns exactly [v1, v2]. The result always
// starts at v1 and ends at v2, with segments+1 points for a real arc.
func InterpolateBulgePoints(v1, v2 model.Point2D, bulge float64, segments int) []model.Point2D {
	dx, dy := v2.X-v1.X, v2.Y-v1.Y
	chord := math.Hypot(dx, dy)
	if bulge == 0 || chord < 1e-12 {
		return []model.Point2D{v1, v2}
	}
	if segments < 2 {
		segments = 2
	}

	// the sagitta sits to the right of v1->v2 for a counter-clockwise arc
	sagitta := bulge * chord / 2
	nx, ny := dy/chord, -dx/chord
	mid := model.Point2D{X: (v1.X+v2.X)/2 + nx*sagitta, Y: (v1.Y+v2.Y)/2 + ny*sagitta}

	s := math.Abs(sagitta)
	radius := (chord*chord/4 + s*s) / (2 * s)
	dir := 1.0
	if sagitta < 0 {
		dir = -1
	}
	center := model.Point2D{X: mid.X - nx*dir*radius, Y: mid.Y - ny*dir*radius}

	start := math.Atan2(v1.Y-center.Y, v1.X-center.X)
	sweep := 4 * math.Atan(bulge)

	pts := make([]model.Point2D, segments+1)
	pts[0] = v1
	for i := 1; i < segments; i++ {
		a := start + sweep*float64(i)/float64(segments)
		pts[i] = model.Point2D{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	pts[segments] = v2
	return pts
}

// polylinePoints expands polyline vertices into a point path, replacing
// bulged segments with sampled arcs. Closed polylines end on their first
// vertex.
func polylinePoints(vs []vertexLike, closed bool, segments int) []model.Point2D {
	if len(vs) == 0 {
		return nil
	}
	pts := []model.Point2D{vs[0].p}
	n := len(vs) - 1
	if closed {
		n = len(vs)
	}
	for i := 0; i < n; i++ {
		a, b := vs[i], vs[(i+1)%len(vs)]
		arc := InterpolateBulgePoints(a.p, b.p, a.bulge, segments)
		pts = append(pts, arc[1:]...)
	}
	return pts
}

type vertexLike struct {
	p     model.Point2D
	bulge float64
}
