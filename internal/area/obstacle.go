package area

import (
	"sort"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// NudgeMargin is the extra distance NearestValidPosition keeps between a
// relocated unit and the obstacle it was pushed out of.
const NudgeMargin = 10.0

// ObstacleBounds is the bounding box of the obstacle's corners grown by its
// clearance on every side.
func ObstacleBounds(o model.ObstacleRect) model.BBox {
	b := model.BBox{}
	for _, c := range o.Corners {
		b.Extend(c)
	}
	return b.Expand(o.Clearance)
}

// UnitBounds is the axis-aligned box of a w x h unit centred on c.
func UnitBounds(c model.Point2D, w, h float64) model.BBox {
	return model.BBox{MinX: c.X - w/2, MaxX: c.X + w/2, MinY: c.Y - h/2, MaxY: c.Y + h/2, Valid: true}
}

// RectOverlapsObstacle tests a w x h unit centred on c against the
// obstacle's expanded box. The unit is treated as axis-aligned whatever
// its rotation; touching edges do not overlap.
func RectOverlapsObstacle(c model.Point2D, w, h, _ float64, o model.ObstacleRect) bool {
	return UnitBounds(c, w, h).Intersects(ObstacleBounds(o))
}

// OverlapsAny reports whether the unit overlaps any obstacle.
func OverlapsAny(c model.Point2D, w, h float64, obstacles []model.ObstacleRect) bool {
	for _, o := range obstacles {
		if RectOverlapsObstacle(c, w, h, 0, o) {
			return true
		}
	}
	return false
}

// NearestValidPosition returns p unchanged when a w x h unit centred there
// is clear of every obstacle. Otherwise it tries pushing the unit left,
// right, up and down just past the first obstacle it hits and returns the
// clear candidate with the smallest move. ok is false when none is clear.
func NearestValidPosition(p model.Point2D, obstacles []model.ObstacleRect, w, h float64) (model.Point2D, bool) {
	var hit *model.ObstacleRect
	for i := range obstacles {
		if RectOverlapsObstacle(p, w, h, 0, obstacles[i]) {
			hit = &obstacles[i]
			break
		}
	}
	if hit == nil {
		return p, true
	}

	ob := ObstacleBounds(*hit)
	candidates := []model.Point2D{
		{X: ob.MinX - w/2 - NudgeMargin, Y: p.Y},
		{X: ob.MaxX + w/2 + NudgeMargin, Y: p.Y},
		{X: p.X, Y: ob.MinY - h/2 - NudgeMargin},
		{X: p.X, Y: ob.MaxY + h/2 + NudgeMargin},
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return p.Dist(candidates[i]) < p.Dist(candidates[j])
	})
	for _, c := range candidates {
		if !OverlapsAny(c, w, h, obstacles) {
			return c, true
		}
	}
	return model.Point2D{}, false
}
