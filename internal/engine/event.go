package engine

import (
	"errors"
	"fmt"

	"github.com/piwi3910/SeatPlan/internal/area"
	"github.com/piwi3910/SeatPlan/internal/model"
)

// ErrNoTableArea is returned when a floor plan has nowhere to seat guests.
var ErrNoTableArea = errors.New("floor plan has no table area")

// EventPlan is the packed layout of one event across a floor plan's table
// areas.
type EventPlan struct {
	Areas     []model.Polygon4     `json:"areas"`
	Obstacles []model.ObstacleRect `json:"obstacles"`
	Result    model.SeatingResult  `json:"result"`
	Target    int                  `json:"target"`
}

// Shortfall is the number of guests left without a seat.
func (p EventPlan) Shortfall() int {
	return p.Result.Shortfall(p.Target)
}

// PrepareAreas returns the floor plan's table areas and door obstacles as
// the packer sees them for an event on the named stage. Every area starts
// settings.StageClearanceFeet after the stage's right edge, and doors
// without their own clearance get settings.DoorClearance. An empty stage
// name leaves the areas as drawn.
func PrepareAreas(fp *model.FloorPlan, stageName string, settings model.LayoutSettings) ([]model.Polygon4, []model.ObstacleRect, error) {
	if len(fp.TableAreas) == 0 {
		return nil, nil, fmt.Errorf("%w: %q", ErrNoTableArea, fp.Name)
	}

	var stage *model.Stage
	if stageName != "" {
		stage = fp.FindStage(stageName)
		if stage == nil {
			return nil, nil, fmt.Errorf("stage %q not found in floor plan %q", stageName, fp.Name)
		}
	}

	obstacles := make([]model.ObstacleRect, 0, len(fp.Doors))
	for _, d := range fp.Doors {
		if d.Clearance == 0 {
			d.Clearance = settings.DoorClearance
		}
		obstacles = append(obstacles, d)
	}

	areas := make([]model.Polygon4, 0, len(fp.TableAreas))
	for _, base := range fp.TableAreas {
		if stage != nil {
			base = area.AdjustAreaForStage(*stage, base, settings.StageClearanceFeet, fp.Units)
		}
		areas = append(areas, base)
	}
	return areas, obstacles, nil
}

// PlanEvent packs an event into a floor plan. Table areas are filled in
// order, each one taking what the previous areas could not seat.
func (p *Packer) PlanEvent(fp *model.FloorPlan, ev model.Event, settings model.LayoutSettings) (EventPlan, error) {
	plan := EventPlan{Target: ev.Guests, Result: model.SeatingResult{Mode: ev.Mode}}

	areas, obstacles, err := PrepareAreas(fp, ev.Stage, settings)
	if err != nil {
		return plan, err
	}
	plan.Areas, plan.Obstacles = areas, obstacles

	remaining := ev.Guests
	for i, poly := range areas {
		if remaining <= 0 {
			break
		}
		res, err := p.Pack(remaining, poly, ev.Table, ev.Chair, obstacles, ev.Mode)
		if err != nil {
			return plan, fmt.Errorf("area %d: %w", i+1, err)
		}
		p.logger().Debug("packed area", "area", i+1, "seated", res.ActualGuestsSeated, "remaining", remaining-res.ActualGuestsSeated)
		mergeResult(&plan.Result, res)
		remaining -= res.ActualGuestsSeated
	}
	plan.Result.Recount(ev.Table.ChairsPerTable)
	return plan, nil
}

// mergeResult appends src's placements to dst, renumbering source indexes.
func mergeResult(dst *model.SeatingResult, src model.SeatingResult) {
	for _, u := range src.Tables {
		u.SourceIndex = len(dst.Tables)
		dst.Tables = append(dst.Tables, u)
	}
	for _, u := range src.Chairs {
		u.SourceIndex = len(dst.Chairs)
		dst.Chairs = append(dst.Chairs, u)
	}
	dst.Columns = append(dst.Columns, src.Columns...)
}
