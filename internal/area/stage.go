package area

import (
	"math"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// StageBounds is the axis-aligned box of the stage footprint around its
// centre. At 0° Width runs along X; at 90° Depth does.
func StageBounds(s model.Stage) model.BBox {
	rad := s.Rotation * math.Pi / 180
	cos, sin := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
	hw, hd := s.Footprint.Width/2, s.Footprint.Depth/2
	halfX := hw*cos + hd*sin
	halfY := hw*sin + hd*cos
	return model.BBox{
		MinX:  s.Position.X - halfX,
		MaxX:  s.Position.X + halfX,
		MinY:  s.Position.Y - halfY,
		MaxY:  s.Position.Y + halfY,
		Valid: true,
	}
}

// StageRightEdge is the largest X the stage footprint reaches.
func StageRightEdge(s model.Stage) float64 {
	return StageBounds(s).MaxX
}

// Adjuster moves a seating area's left side to start a fixed clearance
// after the stage.
type Adjuster struct {
	ClearanceFeet float64
	Units         model.Units
}

// Adjust returns base with TopLeft.X and BottomLeft.X set to the stage's
// right edge plus the clearance. The right corners and all Y values are
// left as they were.
func (a Adjuster) Adjust(stage model.Stage, base model.Polygon4) model.Polygon4 {
	x := StageRightEdge(stage) + model.FeetToNativeUnits(a.ClearanceFeet, a.Units)
	out := base
	out.TopLeft.X = x
	out.BottomLeft.X = x
	return out
}

// AdjustAreaForStage is Adjuster{clearanceFeet, units}.Adjust(stage, base).
func AdjustAreaForStage(stage model.Stage, base model.Polygon4, clearanceFeet float64, units model.Units) model.Polygon4 {
	return Adjuster{ClearanceFeet: clearanceFeet, Units: units}.Adjust(stage, base)
}

// StageObstacle turns a stage into an exclusion zone for the packer.
func StageObstacle(s model.Stage, clearance float64) model.ObstacleRect {
	b := StageBounds(s)
	o := model.NewObstacle(model.ObstacleOther, b.MinX, b.MinY, b.Width(), b.Height(), clearance)
	o.Name = s.Name
	return o
}
