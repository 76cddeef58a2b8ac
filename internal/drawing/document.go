// Package drawing defines the structured CAD document the layout engine
// consumes: a list of typed entities, named block definitions and a few
// header values. Parsers in the importer package produce it; the flatten
// package walks it.
package drawing

import (
	"strings"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// ACI colour sentinels.
const (
	ColorByBlock = 0
	ColorByLayer = 256
)

// Kind names an entity type using the DXF entity names.
type Kind string

const (
	KindLine      Kind = "LINE"
	KindPolyline  Kind = "POLYLINE"
	KindCircle    Kind = "CIRCLE"
	KindArc       Kind = "ARC"
	KindEllipse   Kind = "ELLIPSE"
	KindSpline    Kind = "SPLINE"
	KindText      Kind = "TEXT"
	KindMText     Kind = "MTEXT"
	KindInsert    Kind = "INSERT"
	KindHatch     Kind = "HATCH"
	KindSolid     Kind = "SOLID"
	KindPoint     Kind = "POINT"
	KindRay       Kind = "RAY"
	KindXLine     Kind = "XLINE"
	KindDimension Kind = "DIMENSION"
	KindLeader    Kind = "LEADER"
)

// Header carries the document-level variables the engine needs.
type Header struct {
	Units model.Units `json:"units"`
}

// Layer is a layer table entry.
type Layer struct {
	Name  string `json:"name"`
	Color int    `json:"color"`
}

// Block is a named, reusable group of entities. Base is the block's
// insertion base point in its own frame.
type Block struct {
	Name     string        `json:"name"`
	Base     model.Point2D `json:"base"`
	Entities []Entity      `json:"-"`
}

// Document is a parsed drawing.
type Document struct {
	Header   Header            `json:"header"`
	Layers   map[string]Layer  `json:"layers,omitempty"`
	Blocks   map[string]*Block `json:"-"`
	Entities []Entity          `json:"-"`

	// Warnings lists entities that could not be read as their declared
	// type and were kept as Unknown or dropped.
	Warnings []string `json:"-"`
}

// NewDocument returns an empty document with initialised maps.
func NewDocument() *Document {
	return &Document{
		Header: Header{Units: model.UnitsUnknown},
		Layers: map[string]Layer{},
		Blocks: map[string]*Block{},
	}
}

// Block looks a block up by exact name, then case-insensitively. When
// several names match case-insensitively the lexically smallest wins.
func (d *Document) Block(name string) (*Block, bool) {
	if d == nil {
		return nil, false
	}
	return lookupFold(d.Blocks, name)
}

// lookupFold returns m[name], else the value of the smallest key equal to
// name under case folding.
func lookupFold[V any](m map[string]V, name string) (V, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	var (
		best  V
		key   string
		found bool
	)
	for k, v := range m {
		if strings.EqualFold(k, name) && (!found || k < key) {
			best, key, found = v, k, true
		}
	}
	return best, found
}

// LayerColor returns the ACI colour of the named layer, or 7 (white/black)
// when the layer is not in the table.
func (d *Document) LayerColor(name string) int {
	if d != nil {
		if l, ok := lookupFold(d.Layers, name); ok && l.Color > 0 && l.Color < ColorByLayer {
			return l.Color
		}
	}
	return 7
}

// Entity is implemented by every entity variant. The set is closed: the
// flattener type-switches over the concrete structs in this package.
type Entity interface {
	Kind() Kind
	Attrs() Common
}

// Common carries the attributes every entity shares.
type Common struct {
	Layer  string `json:"layer,omitempty"`
	Color  int    `json:"color,omitempty"` // ACI; 0 ByBlock, 256 ByLayer
	Handle string `json:"handle,omitempty"`
}

// Attrs returns the shared attributes.
func (c Common) Attrs() Common { return c }

// Line is a straight segment.
type Line struct {
	Common
	Start model.Point2D `json:"start"`
	End   model.Point2D `json:"end"`
}

func (Line) Kind() Kind { return KindLine }

// Vertex is a polyline vertex. Bulge describes the arc from this vertex to
// the next one: tan(included angle / 4), negative for clockwise.
type Vertex struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Bulge float64 `json:"bulge,omitempty"`
}

// Point returns the vertex position.
func (v Vertex) Point() model.Point2D { return model.Point2D{X: v.X, Y: v.Y} }

// Polyline covers both LWPOLYLINE and POLYLINE.
type Polyline struct {
	Common
	Vertices []Vertex `json:"vertices"`
	Closed   bool     `json:"closed,omitempty"`
}

func (Polyline) Kind() Kind { return KindPolyline }

// Circle is a full circle.
type Circle struct {
	Common
	Center model.Point2D `json:"center"`
	Radius float64       `json:"radius"`
}

func (Circle) Kind() Kind { return KindCircle }

// Arc is a circular arc running counter-clockwise from StartAngle to
// EndAngle, both in degrees.
type Arc struct {
	Common
	Center     model.Point2D `json:"center"`
	Radius     float64       `json:"radius"`
	StartAngle float64       `json:"start_angle"`
	EndAngle   float64       `json:"end_angle"`
}

func (Arc) Kind() Kind { return KindArc }

// Ellipse is given by its centre, the major axis endpoint relative to the
// centre, the minor/major ratio and a parameter range in radians.
type Ellipse struct {
	Common
	Center     model.Point2D `json:"center"`
	MajorAxis  model.Point2D `json:"major_axis"`
	Ratio      float64       `json:"ratio"`
	StartParam float64       `json:"start_param"`
	EndParam   float64       `json:"end_param"`
}

func (Ellipse) Kind() Kind { return KindEllipse }

// Spline keeps the control and fit points; it is approximated by chords.
type Spline struct {
	Common
	ControlPoints []model.Point2D `json:"control_points"`
	FitPoints     []model.Point2D `json:"fit_points,omitempty"`
	Closed        bool            `json:"closed,omitempty"`
}

func (Spline) Kind() Kind { return KindSpline }

// Text covers TEXT and MTEXT. Rotation is in degrees.
type Text struct {
	Common
	Content   string        `json:"text"`
	Position  model.Point2D `json:"position"`
	Height    float64       `json:"height"`
	Rotation  float64       `json:"rotation,omitempty"`
	MultiLine bool          `json:"multiline,omitempty"`
}

func (t Text) Kind() Kind {
	if t.MultiLine {
		return KindMText
	}
	return KindText
}

// Insert places a block. Scale components of zero are read as 1.
type Insert struct {
	Common
	Block    string        `json:"block"`
	Position model.Point2D `json:"position"`
	ScaleX   float64       `json:"scale_x,omitempty"`
	ScaleY   float64       `json:"scale_y,omitempty"`
	Rotation float64       `json:"rotation,omitempty"`
}

func (Insert) Kind() Kind { return KindInsert }

// Scale returns the insert scale with zero components defaulted to 1.
func (i Insert) Scale() (float64, float64) {
	sx, sy := i.ScaleX, i.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// Hatch keeps only its boundary loops.
type Hatch struct {
	Common
	Loops [][]model.Point2D `json:"loops"`
}

func (Hatch) Kind() Kind { return KindHatch }

// Solid is a filled triangle or quadrilateral in DXF vertex order
// (1, 2, 4, 3 around the outline).
type Solid struct {
	Common
	Points []model.Point2D `json:"points"`
}

func (Solid) Kind() Kind { return KindSolid }

// Point is a single point entity.
type Point struct {
	Common
	Position model.Point2D `json:"position"`
}

func (Point) Kind() Kind { return KindPoint }

// Ray starts at Base and runs along Direction.
type Ray struct {
	Common
	Base      model.Point2D `json:"base"`
	Direction model.Point2D `json:"direction"`
}

func (Ray) Kind() Kind { return KindRay }

// XLine is an infinite construction line through Base.
type XLine struct {
	Common
	Base      model.Point2D `json:"base"`
	Direction model.Point2D `json:"direction"`
}

func (XLine) Kind() Kind { return KindXLine }

// Dimension references an anonymous block holding its rendered geometry.
// When the block is missing the definition points are drawn instead.
type Dimension struct {
	Common
	Block        string          `json:"block,omitempty"`
	Points       []model.Point2D `json:"points,omitempty"`
	Text         string          `json:"text,omitempty"`
	TextPosition model.Point2D   `json:"text_position"`
}

func (Dimension) Kind() Kind { return KindDimension }

// Leader is an annotation arrow path.
type Leader struct {
	Common
	Vertices []model.Point2D `json:"vertices"`
}

func (Leader) Kind() Kind { return KindLeader }

// Unknown stands in for any entity type the engine does not model. Points
// holds whatever point-like fields were found when the entity was decoded.
type Unknown struct {
	Common
	Type   string          `json:"type"`
	Points []model.Point2D `json:"points,omitempty"`
}

func (u Unknown) Kind() Kind { return Kind(u.Type) }
