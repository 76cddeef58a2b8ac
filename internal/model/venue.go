package model

// ObstacleType tags a door/exclusion zone.
type ObstacleType string

const (
	ObstacleEntrance      ObstacleType = "entrance"
	ObstacleExit          ObstacleType = "exit"
	ObstacleEmergencyExit ObstacleType = "emergency_exit"
	ObstacleOther         ObstacleType = "other"
)

// ObstacleRect is a door area: four corners plus a uniform clearance that
// pads its bounding box on every side. The packer never mutates it.
type ObstacleRect struct {
	Name      string       `json:"name,omitempty"`
	Type      ObstacleType `json:"type"`
	Corners   [4]Point2D   `json:"corners"`
	Clearance float64      `json:"clearance,omitempty"`
}

// NewObstacle builds an axis-aligned obstacle from a top-left corner and size.
func NewObstacle(t ObstacleType, x, y, w, h, clearance float64) ObstacleRect {
	return ObstacleRect{
		Type: t,
		Corners: [4]Point2D{
			{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h},
		},
		Clearance: clearance,
	}
}

// StageFootprint is the stage's size when unrotated: Width along X, Depth along Y.
type StageFootprint struct {
	Width float64 `json:"width"`
	Depth float64 `json:"depth"`
}

// Stage is a stage placed on a floor plan. Position is the footprint centre.
type Stage struct {
	Name      string         `json:"name"`
	Position  Point2D        `json:"position"`
	Rotation  float64        `json:"rotation"` // degrees
	Footprint StageFootprint `json:"footprint"`
	Drawing   string         `json:"drawing,omitempty"` // source id of the stage symbol
}

// FloorPlan is one room of a venue.
type FloorPlan struct {
	Name       string         `json:"name"`
	Drawing    string         `json:"drawing"` // source id of the floor plan drawing
	Units      Units          `json:"units"`
	TableAreas []Polygon4     `json:"table_areas"`
	Doors      []ObstacleRect `json:"doors"`
	Stages     []Stage        `json:"stages"`
}

// FindStage returns the stage with the given name, or nil.
func (fp *FloorPlan) FindStage(name string) *Stage {
	for i := range fp.Stages {
		if fp.Stages[i].Name == name {
			return &fp.Stages[i]
		}
	}
	return nil
}

// Venue groups the floor plans of one location.
type Venue struct {
	Name       string      `json:"name"`
	FloorPlans []FloorPlan `json:"floor_plans"`
}

// FindFloorPlan returns the floor plan with the given name, or nil. An
// empty name selects the first plan.
func (v *Venue) FindFloorPlan(name string) *FloorPlan {
	if name == "" && len(v.FloorPlans) > 0 {
		return &v.FloorPlans[0]
	}
	for i := range v.FloorPlans {
		if v.FloorPlans[i].Name == name {
			return &v.FloorPlans[i]
		}
	}
	return nil
}

// Event is one seating request against a venue floor plan.
type Event struct {
	Name      string     `json:"name"`
	FloorPlan string     `json:"floor_plan"`
	Stage     string     `json:"stage,omitempty"`
	Guests    int        `json:"guests"`
	Mode      PackMode   `json:"mode"`
	Table     TableSpec  `json:"table"`
	Chair     *ChairSpec `json:"chair,omitempty"`
}
