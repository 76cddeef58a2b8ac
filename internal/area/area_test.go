package area

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SeatPlan/internal/model"
)

func square(size float64) model.Polygon4 {
	return model.RectPolygon(model.NewBBox(model.Point2D{}, model.Point2D{X: size, Y: size}))
}

func TestPolygonBounds(t *testing.T) {
	p := model.Polygon4{
		TopLeft:     model.Point2D{X: 10, Y: 0},
		TopRight:    model.Point2D{X: 90, Y: -5},
		BottomRight: model.Point2D{X: 100, Y: 80},
		BottomLeft:  model.Point2D{X: 0, Y: 70},
	}
	assert.Equal(t, model.BBox{MinX: 0, MaxX: 100, MinY: -5, MaxY: 80, Valid: true}, PolygonBounds(p))
}

func TestPointInPolygonSquare(t *testing.T) {
	sq := square(100)

	assert.True(t, PointInPolygon(model.Point2D{X: 50, Y: 50}, sq))
	assert.False(t, PointInPolygon(model.Point2D{X: 150, Y: 50}, sq))

	// on-edge answers are fixed by the ray direction and repeat exactly
	for i := 0; i < 10; i++ {
		assert.True(t, PointInPolygon(model.Point2D{X: 0, Y: 50}, sq))
		assert.False(t, PointInPolygon(model.Point2D{X: 100, Y: 50}, sq))
		assert.True(t, PointInPolygon(model.Point2D{X: 50, Y: 0}, sq))
		assert.False(t, PointInPolygon(model.Point2D{X: 50, Y: 100}, sq))
	}
}

func TestPointInPolygonSlanted(t *testing.T) {
	// trapezoid narrowing towards the bottom
	trap := model.Polygon4{
		TopLeft:     model.Point2D{X: 0, Y: 0},
		TopRight:    model.Point2D{X: 100, Y: 0},
		BottomRight: model.Point2D{X: 70, Y: 100},
		BottomLeft:  model.Point2D{X: 30, Y: 100},
	}
	assert.True(t, PointInPolygon(model.Point2D{X: 50, Y: 90}, trap))
	assert.False(t, PointInPolygon(model.Point2D{X: 10, Y: 90}, trap))
	assert.False(t, PointInPolygon(model.Point2D{X: 90, Y: 90}, trap))

	assert.True(t, RectInPolygon(model.NewBBox(model.Point2D{X: 40, Y: 10}, model.Point2D{X: 60, Y: 90}), trap))
	assert.False(t, RectInPolygon(model.NewBBox(model.Point2D{X: 5, Y: 10}, model.Point2D{X: 60, Y: 90}), trap))
}

func TestObstacleBoundsAddsClearance(t *testing.T) {
	door := model.NewObstacle(model.ObstacleEntrance, 10, 20, 30, 5, 2)
	assert.Equal(t, model.BBox{MinX: 8, MaxX: 42, MinY: 18, MaxY: 27, Valid: true}, ObstacleBounds(door))
}

func TestRectOverlapsObstacle(t *testing.T) {
	door := model.NewObstacle(model.ObstacleExit, 100, 0, 50, 50, 10)

	// expanded box starts at x=90; a 20-wide unit centred at 79 ends at 89
	assert.False(t, RectOverlapsObstacle(model.Point2D{X: 79, Y: 25}, 20, 20, 0, door))
	assert.True(t, RectOverlapsObstacle(model.Point2D{X: 81, Y: 25}, 20, 20, 0, door))
	// touching is not overlapping
	assert.False(t, RectOverlapsObstacle(model.Point2D{X: 80, Y: 25}, 20, 20, 0, door))
	// rotation does not change the answer
	assert.True(t, RectOverlapsObstacle(model.Point2D{X: 81, Y: 25}, 20, 20, 45, door))
}

func TestNearestValidPosition(t *testing.T) {
	door := model.NewObstacle(model.ObstacleEntrance, 0, 0, 100, 20, 0)
	obstacles := []model.ObstacleRect{door}

	free := model.Point2D{X: 50, Y: 200}
	got, ok := NearestValidPosition(free, obstacles, 10, 10)
	require.True(t, ok)
	assert.Equal(t, free, got)

	// overlapping near the bottom edge: pushing down is the shortest move
	got, ok = NearestValidPosition(model.Point2D{X: 50, Y: 18}, obstacles, 10, 10)
	require.True(t, ok)
	assert.Equal(t, model.Point2D{X: 50, Y: 20 + 5 + NudgeMargin}, got)
	assert.False(t, OverlapsAny(got, 10, 10, obstacles))
}

func TestNearestValidPositionBoxedIn(t *testing.T) {
	center := model.NewObstacle(model.ObstacleOther, 0, 0, 20, 20, 0)
	// walls on every side leave no room for any candidate
	walls := []model.ObstacleRect{
		center,
		model.NewObstacle(model.ObstacleOther, -100, -100, 300, 70, 0),
		model.NewObstacle(model.ObstacleOther, -100, 40, 300, 70, 0),
		model.NewObstacle(model.ObstacleOther, -100, -100, 70, 300, 0),
		model.NewObstacle(model.ObstacleOther, 50, -100, 70, 300, 0),
	}
	_, ok := NearestValidPosition(model.Point2D{X: 10, Y: 10}, walls, 30, 30)
	assert.False(t, ok)
}

func TestStageRightEdgeRotation(t *testing.T) {
	s := model.Stage{Position: model.Point2D{X: 100, Y: 50}, Footprint: model.StageFootprint{Width: 40, Depth: 10}}
	assert.InDelta(t, 120, StageRightEdge(s), 1e-9)

	s.Rotation = 90
	assert.InDelta(t, 105, StageRightEdge(s), 1e-9)

	s.Rotation = 270
	assert.InDelta(t, 105, StageRightEdge(s), 1e-9)
}

func TestAdjustAreaForStage(t *testing.T) {
	base := model.Polygon4{
		TopLeft:     model.Point2D{X: 0, Y: 0},
		TopRight:    model.Point2D{X: 1000, Y: 0},
		BottomRight: model.Point2D{X: 1000, Y: 800},
		BottomLeft:  model.Point2D{X: 0, Y: 800},
	}
	stage := model.Stage{Position: model.Point2D{X: 100, Y: 400}, Footprint: model.StageFootprint{Width: 200, Depth: 400}}

	out := AdjustAreaForStage(stage, base, 6, model.UnitsCentimeters)
	want := 200 + 6*30.48
	assert.InDelta(t, want, out.TopLeft.X, 1e-9)
	assert.Equal(t, out.TopLeft.X, out.BottomLeft.X)
	assert.Equal(t, base.TopLeft.Y, out.TopLeft.Y)
	assert.Equal(t, base.BottomLeft.Y, out.BottomLeft.Y)
	assert.Equal(t, base.TopRight, out.TopRight)
	assert.Equal(t, base.BottomRight, out.BottomRight)

	feet := Adjuster{ClearanceFeet: 6, Units: model.UnitsFeet}.Adjust(stage, base)
	assert.InDelta(t, 206, feet.TopLeft.X, 1e-9)
}

func TestAdjusterKeepsRightCornersForAnyStage(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := model.Polygon4{
		TopLeft:     model.Point2D{X: 3, Y: 4},
		TopRight:    model.Point2D{X: 950, Y: -10},
		BottomRight: model.Point2D{X: 990, Y: 700},
		BottomLeft:  model.Point2D{X: -5, Y: 690},
	}
	for i := 0; i < 200; i++ {
		stage := model.Stage{
			Position:  model.Point2D{X: rng.Float64()*2000 - 1000, Y: rng.Float64()*2000 - 1000},
			Rotation:  float64(rng.Intn(4)) * 90,
			Footprint: model.StageFootprint{Width: rng.Float64() * 500, Depth: rng.Float64() * 500},
		}
		u := model.DefinedUnits[rng.Intn(len(model.DefinedUnits))]
		out := Adjuster{ClearanceFeet: rng.Float64() * 20, Units: u}.Adjust(stage, base)

		assert.Equal(t, base.TopRight, out.TopRight)
		assert.Equal(t, base.BottomRight, out.BottomRight)
		assert.Equal(t, out.TopLeft.X, out.BottomLeft.X)
	}
}

func TestStageObstacle(t *testing.T) {
	s := model.Stage{Name: "Main", Position: model.Point2D{X: 50, Y: 50}, Footprint: model.StageFootprint{Width: 20, Depth: 10}}
	o := StageObstacle(s, 5)
	assert.Equal(t, "Main", o.Name)
	assert.Equal(t, model.BBox{MinX: 35, MaxX: 65, MinY: 40, MaxY: 60, Valid: true}, ObstacleBounds(o))
}
