package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SeatPlan/internal/model"
)

func TestCompareModes(t *testing.T) {
	results := quietPacker().CompareModes(45, rectArea(420, 100), table8(), chair10(), nil)
	require.Len(t, results, 3)

	byMode := map[model.PackMode]ModeComparison{}
	for _, r := range results {
		require.NoError(t, r.Err)
		byMode[r.Mode] = r
	}

	tables := byMode[model.ModeTablesOnly]
	assert.Equal(t, 32, tables.Seated)
	assert.Equal(t, 13, tables.Shortfall)
	assert.Equal(t, 4, tables.TableColumns)

	chairs := byMode[model.ModeChairsOnly]
	assert.Equal(t, 45, chairs.Seated)
	assert.Equal(t, 0, chairs.Tables)
	assert.Equal(t, 5, chairs.ChairColumns)

	auto := byMode[model.ModeAuto]
	assert.Equal(t, 45, auto.Seated)
	assert.Equal(t, 4, auto.Tables)
	assert.Equal(t, 13, auto.Chairs)
	assert.Equal(t, 0, auto.Gap)

	best, ok := Best(results)
	require.True(t, ok)
	assert.Equal(t, model.ModeAuto, best.Mode)
}

func TestCompareModes_MissingChairSpec(t *testing.T) {
	results := quietPacker().CompareModes(20, rectArea(420, 100), table8(), nil, nil)
	require.Len(t, results, 3)

	for _, r := range results {
		if r.Mode == model.ModeChairsOnly {
			assert.ErrorIs(t, r.Err, ErrMissingChairSpec)
			assert.Equal(t, 20, r.Shortfall)
		} else {
			assert.NoError(t, r.Err)
			assert.Equal(t, 24, r.Seated)
		}
	}

	best, ok := Best(results)
	require.True(t, ok)
	assert.Equal(t, model.ModeTablesOnly, best.Mode)
}

func TestBest_AllFailed(t *testing.T) {
	_, ok := Best([]ModeComparison{{Mode: model.ModeChairsOnly, Err: ErrMissingChairSpec}})
	assert.False(t, ok)
}

func eventFloorPlan() *model.FloorPlan {
	return &model.FloorPlan{
		Name:  "Ballroom",
		Units: model.UnitsFeet,
		TableAreas: []model.Polygon4{
			rectArea(400, 100),
			model.RectPolygon(model.NewBBox(model.Point2D{X: 0, Y: 200}, model.Point2D{X: 400, Y: 300})),
		},
		Doors: []model.ObstacleRect{
			model.NewObstacle(model.ObstacleEmergencyExit, 1000, 1000, 10, 10, 0),
		},
		Stages: []model.Stage{
			{Name: "Main", Position: model.Point2D{X: 50, Y: 150}, Footprint: model.StageFootprint{Width: 20, Depth: 300}},
		},
	}
}

func TestPlanEvent_SpillsIntoNextArea(t *testing.T) {
	settings := model.DefaultSettings()
	settings.StageClearanceFeet = 10
	settings.DoorClearance = 5

	ev := model.Event{Name: "Gala", Stage: "Main", Guests: 40, Mode: model.ModeTablesOnly, Table: table8()}
	plan, err := quietPacker().PlanEvent(eventFloorPlan(), ev, settings)
	require.NoError(t, err)

	require.Len(t, plan.Areas, 2)
	for _, a := range plan.Areas {
		assert.Equal(t, 70.0, a.TopLeft.X, "stage edge 60 plus 10 ft")
		assert.Equal(t, 70.0, a.BottomLeft.X)
		assert.Equal(t, 400.0, a.TopRight.X)
	}

	require.Len(t, plan.Obstacles, 1)
	assert.Equal(t, 5.0, plan.Obstacles[0].Clearance)

	// 3 tables fit in each area after the stage
	require.Len(t, plan.Result.Tables, 5)
	assert.Equal(t, 40, plan.Result.ActualGuestsSeated)
	assert.Equal(t, 0, plan.Shortfall())
	for i, u := range plan.Result.Tables {
		assert.Equal(t, i, u.SourceIndex)
	}
	assert.Equal(t, 200.0, plan.Result.Tables[3].Y)
}

func TestPlanEvent_ReportsShortfall(t *testing.T) {
	ev := model.Event{Guests: 100, Mode: model.ModeTablesOnly, Table: table8()}
	plan, err := quietPacker().PlanEvent(eventFloorPlan(), ev, model.DefaultSettings())
	require.NoError(t, err)

	assert.Len(t, plan.Result.Tables, 8)
	assert.Equal(t, 36, plan.Shortfall())
}

func TestPlanEvent_Errors(t *testing.T) {
	fp := eventFloorPlan()
	_, err := quietPacker().PlanEvent(fp, model.Event{Stage: "Side", Guests: 10, Mode: model.ModeAuto, Table: table8()}, model.DefaultSettings())
	assert.Error(t, err)

	_, err = quietPacker().PlanEvent(&model.FloorPlan{Name: "Empty"}, model.Event{Guests: 10}, model.DefaultSettings())
	assert.ErrorIs(t, err, ErrNoTableArea)

	_, err = quietPacker().PlanEvent(fp, model.Event{Guests: 10, Mode: model.ModeChairsOnly, Table: table8()}, model.DefaultSettings())
	assert.ErrorIs(t, err, ErrMissingChairSpec)
}

func TestPrepareAreas(t *testing.T) {
	fp := eventFloorPlan()
	fp.Doors = append(fp.Doors, model.NewObstacle(model.ObstacleEntrance, 0, 0, 10, 10, 30))

	areas, obstacles, err := PrepareAreas(fp, "", model.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, fp.TableAreas, areas, "no stage leaves the areas as drawn")
	require.Len(t, obstacles, 2)
	assert.Equal(t, 100.0, obstacles[0].Clearance, "door without clearance gets the default")
	assert.Equal(t, 30.0, obstacles[1].Clearance)
	assert.Equal(t, 0.0, fp.Doors[0].Clearance, "floor plan doors are not mutated")

	areas, _, err = PrepareAreas(fp, "Main", model.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, 66.0, areas[0].TopLeft.X, "stage edge 60 plus 6 ft")

	_, _, err = PrepareAreas(fp, "Side", model.DefaultSettings())
	assert.Error(t, err)
}
