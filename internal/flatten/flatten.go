// Package flatten turns a hierarchical drawing document into a flat list of
// renderable primitives. Block references are expanded depth-first with
// composed affine transforms, polyline bulges become sampled arcs, and every
// coordinate that is emitted also grows the natural and per-layer bounds.
//
// Flattening never fails: missing blocks, runaway nesting and entities with
// nothing drawable are reported as warnings and the walk continues.
package flatten

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/SeatPlan/internal/drawing"
	"github.com/piwi3910/SeatPlan/internal/model"
)

// Defaults for Options fields left at zero.
const (
	DefaultArcSegments     = 16
	DefaultCircleSegments  = 64
	DefaultMaxTexts        = 500
	DefaultMaxDepth        = 50
	DefaultPlaceholderSize = 10.0
	DefaultRayLength       = 10000.0
)

// ScaleRule enlarges inserts of blocks whose name contains Pattern
// (case-insensitive) by Factor.
type ScaleRule struct {
	Pattern string  `json:"pattern" koanf:"pattern"`
	Factor  float64 `json:"factor" koanf:"factor"`
}

// DefaultScaleRules are the symbol blocks drawn at life size in venue
// libraries but too small to see on a floor plan.
func DefaultScaleRules() []ScaleRule {
	return []ScaleRule{
		{Pattern: "person", Factor: 50},
		{Pattern: "human", Factor: 50},
	}
}

// ScaleFor returns the factor of the first rule matching the block name, or 1.
func ScaleFor(rules []ScaleRule, block string) float64 {
	lower := strings.ToLower(block)
	for _, r := range rules {
		if r.Pattern != "" && r.Factor > 0 && strings.Contains(lower, strings.ToLower(r.Pattern)) {
			return r.Factor
		}
	}
	return 1
}

// Options controls a flatten pass.
type Options struct {
	ArcSegments     int         // segments per bulge arc
	CircleSegments  int         // tessellation used for curve bounds
	MaxTexts        int         // texts kept, first come first kept; negative keeps all
	MaxDepth        int         // block nesting limit
	PlaceholderSize float64     // arm length of the cross drawn for unresolved inserts
	RayLength       float64     // length drawn for rays and construction lines
	IgnorePosition  bool        // skip centring and top-level insert translation
	ScaleRules      []ScaleRule // per-block extra scale
	Logger          *log.Logger
}

// DefaultOptions returns options with every default filled in.
func DefaultOptions() Options {
	return Options{
		ArcSegments:     DefaultArcSegments,
		CircleSegments:  DefaultCircleSegments,
		MaxTexts:        DefaultMaxTexts,
		MaxDepth:        DefaultMaxDepth,
		PlaceholderSize: DefaultPlaceholderSize,
		RayLength:       DefaultRayLength,
		ScaleRules:      DefaultScaleRules(),
	}
}

func (o Options) withDefaults() Options {
	if o.ArcSegments <= 0 {
		o.ArcSegments = DefaultArcSegments
	}
	if o.CircleSegments <= 0 {
		o.CircleSegments = DefaultCircleSegments
	}
	if o.MaxTexts == 0 {
		o.MaxTexts = DefaultMaxTexts
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.PlaceholderSize <= 0 {
		o.PlaceholderSize = DefaultPlaceholderSize
	}
	if o.RayLength <= 0 {
		o.RayLength = DefaultRayLength
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Stats counts what a flatten pass produced.
type Stats struct {
	Lines        int `json:"lines"`
	Curves       int `json:"curves"`
	Texts        int `json:"texts"`
	DroppedTexts int `json:"dropped_texts"`
	Placeholders int `json:"placeholders"`
	Inserts      int `json:"inserts"`
	Skipped      int `json:"skipped"`
}

// Result is the output of Flatten. NaturalBounds and LayerBounds are in the
// drawing's own coordinates; Primitives and Texts are shifted by -Center
// when Centered is set. Layer keys are lower-case.
type Result struct {
	Primitives    []Primitive           `json:"primitives"`
	Texts         []TextItem            `json:"texts"`
	LayerBounds   map[string]model.BBox `json:"layer_bounds"`
	NaturalBounds model.BBox            `json:"natural_bounds"`
	Center        model.Point2D         `json:"center"`
	Centered      bool                  `json:"centered"`
	Units         model.Units           `json:"units"`
	Stats         Stats                 `json:"stats"`
	Warnings      []string              `json:"warnings,omitempty"`
}

// Empty reports whether there is nothing to render.
func (r *Result) Empty() bool {
	return r == nil || (len(r.Primitives) == 0 && len(r.Texts) == 0)
}

// EmptyResult is what a failed load degrades to.
func EmptyResult() *Result {
	return &Result{LayerBounds: map[string]model.BBox{}, Units: model.UnitsUnknown}
}

// frame is the state inherited from the enclosing insert.
type frame struct {
	m       Affine
	layer   string
	color   int
	depth   int
	inBlock bool
}

type walker struct {
	doc  *drawing.Document
	opts Options
	res  *Result
	seen map[string]bool
}

// Flatten expands doc into primitives. A nil document yields an empty result.
func Flatten(doc *drawing.Document, opts Options) *Result {
	res := EmptyResult()
	if doc == nil {
		return res
	}
	opts = opts.withDefaults()
	res.Units = doc.Header.Units

	w := &walker{doc: doc, opts: opts, res: res, seen: map[string]bool{}}
	for _, msg := range doc.Warnings {
		w.warn("%s", msg)
	}
	w.walk(doc.Entities, frame{m: Identity()})

	if res.NaturalBounds.Valid {
		res.Center = res.NaturalBounds.Center()
		if !opts.IgnorePosition {
			res.shift(-res.Center.X, -res.Center.Y)
			res.Centered = true
		}
	}
	return res
}

func (r *Result) shift(dx, dy float64) {
	for i := range r.Primitives {
		p := &r.Primitives[i]
		if p.Curve != nil {
			c := p.Curve.translate(dx, dy)
			p.Curve = &c
			continue
		}
		p.Start = model.Point2D{X: p.Start.X + dx, Y: p.Start.Y + dy}
		p.End = model.Point2D{X: p.End.X + dx, Y: p.End.Y + dy}
	}
	for i := range r.Texts {
		t := &r.Texts[i]
		t.Position = model.Point2D{X: t.Position.X + dx, Y: t.Position.Y + dy}
	}
}

func (w *walker) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if w.seen[msg] {
		return
	}
	w.seen[msg] = true
	w.res.Warnings = append(w.res.Warnings, msg)
	w.opts.Logger.Warn(msg)
}

func (w *walker) walk(entities []drawing.Entity, f frame) {
	for _, e := range entities {
		w.entity(e, f)
	}
}

// resolve applies layer-0 inheritance and turns ByLayer/ByBlock colours
// into concrete ACI values.
func (w *walker) resolve(c drawing.Common, f frame) (string, int) {
	layer := c.Layer
	if f.inBlock && (layer == "" || layer == "0") && f.layer != "" {
		layer = f.layer
	}
	if layer == "" {
		layer = "0"
	}

	color := c.Color
	switch {
	case color == drawing.ColorByBlock && f.inBlock:
		color = f.color
	case color == drawing.ColorByBlock, color >= drawing.ColorByLayer:
		color = w.doc.LayerColor(layer)
	case color < 0:
		color = -color
	}
	return layer, color
}

func (w *walker) extend(layer string, p model.Point2D) {
	w.res.NaturalBounds.Extend(p)
	key := strings.ToLower(layer)
	b := w.res.LayerBounds[key]
	b.Extend(p)
	w.res.LayerBounds[key] = b
}

func (w *walker) line(a, b model.Point2D, layer string, color int) {
	w.extend(layer, a)
	w.extend(layer, b)
	w.res.Primitives = append(w.res.Primitives, Primitive{Kind: KindLine, Layer: layer, Color: color, Start: a, End: b})
	w.res.Stats.Lines++
}

// path emits consecutive segments through pts.
func (w *walker) path(pts []model.Point2D, layer string, color int) {
	for i := 0; i+1 < len(pts); i++ {
		w.line(pts[i], pts[i+1], layer, color)
	}
}

func (w *walker) curve(c Curve, layer string, color int) {
	for _, p := range c.Points(w.opts.CircleSegments) {
		w.extend(layer, p)
	}
	w.res.Primitives = append(w.res.Primitives, Primitive{Kind: KindCurve, Layer: layer, Color: color, Curve: &c})
	w.res.Stats.Curves++
}

// cross draws an X of the given arm length centred on p.
func (w *walker) cross(p model.Point2D, size float64, layer string, color int, placeholder bool) {
	h := size / 2
	segs := [2][2]model.Point2D{
		{{X: p.X - h, Y: p.Y - h}, {X: p.X + h, Y: p.Y + h}},
		{{X: p.X - h, Y: p.Y + h}, {X: p.X + h, Y: p.Y - h}},
	}
	for _, s := range segs {
		w.line(s[0], s[1], layer, color)
		w.res.Primitives[len(w.res.Primitives)-1].Placeholder = placeholder
	}
	if placeholder {
		w.res.Stats.Placeholders++
	}
}

// construction draws an unbounded line as a finite segment. Only the base
// point counts towards the bounds.
func (w *walker) construction(base, dir model.Point2D, both bool, layer string, color int) {
	n := math.Hypot(dir.X, dir.Y)
	if n < 1e-12 {
		w.res.Stats.Skipped++
		return
	}
	l := w.opts.RayLength
	ux, uy := dir.X/n*l, dir.Y/n*l
	start := base
	if both {
		start = model.Point2D{X: base.X - ux, Y: base.Y - uy}
	}
	end := model.Point2D{X: base.X + ux, Y: base.Y + uy}
	w.extend(layer, base)
	w.res.Primitives = append(w.res.Primitives, Primitive{Kind: KindLine, Layer: layer, Color: color, Start: start, End: end})
	w.res.Stats.Lines++
}

func (w *walker) entity(e drawing.Entity, f frame) {
	layer, color := w.resolve(e.Attrs(), f)
	m := f.m

	switch v := e.(type) {
	case drawing.Line:
		w.line(m.Apply(v.Start), m.Apply(v.End), layer, color)

	case drawing.Polyline:
		if len(v.Vertices) < 2 {
			w.res.Stats.Skipped++
			return
		}
		vs := make([]vertexLike, len(v.Vertices))
		for i, vx := range v.Vertices {
			vs[i] = vertexLike{p: vx.Point(), bulge: vx.Bulge}
		}
		pts := polylinePoints(vs, v.Closed, w.opts.ArcSegments)
		for i := range pts {
			pts[i] = m.Apply(pts[i])
		}
		w.path(pts, layer, color)

	case drawing.Circle:
		w.curve(newCurve(m, v.Center, 0, v.Radius, v.Radius, 0, 2*math.Pi, true), layer, color)

	case drawing.Arc:
		start := v.StartAngle * math.Pi / 180
		end := v.EndAngle * math.Pi / 180
		for end <= start {
			end += 2 * math.Pi
		}
		w.curve(newCurve(m, v.Center, 0, v.Radius, v.Radius, start, end, false), layer, color)

	case drawing.Ellipse:
		rx := math.Hypot(v.MajorAxis.X, v.MajorAxis.Y)
		ratio := v.Ratio
		if ratio <= 0 {
			ratio = 1
		}
		start, end := v.StartParam, v.EndParam
		closed := start == end || math.Abs(end-start-2*math.Pi) < 1e-9
		if closed {
			start, end = 0, 2*math.Pi
		}
		for end <= start {
			end += 2 * math.Pi
		}
		axis := math.Atan2(v.MajorAxis.Y, v.MajorAxis.X)
		w.curve(newCurve(m, v.Center, axis, rx, rx*ratio, start, end, closed), layer, color)

	case drawing.Spline:
		pts := v.ControlPoints
		if len(pts) < 2 {
			pts = v.FitPoints
		}
		if len(pts) < 2 {
			w.res.Stats.Skipped++
			return
		}
		world := make([]model.Point2D, 0, len(pts)+1)
		for _, p := range pts {
			world = append(world, m.Apply(p))
		}
		if v.Closed {
			world = append(world, world[0])
		}
		w.path(world, layer, color)

	case drawing.Text:
		w.text(v, m, layer, color)

	case drawing.Insert:
		w.insert(v, f, layer, color)

	case drawing.Hatch:
		for _, loop := range v.Loops {
			if len(loop) < 2 {
				continue
			}
			world := make([]model.Point2D, 0, len(loop)+1)
			for _, p := range loop {
				world = append(world, m.Apply(p))
			}
			w.path(append(world, world[0]), layer, color)
		}

	case drawing.Solid:
		pts := v.Points
		if len(pts) == 4 {
			// DXF stores the fourth corner third
			pts = []model.Point2D{pts[0], pts[1], pts[3], pts[2]}
		}
		if len(pts) < 2 {
			w.res.Stats.Skipped++
			return
		}
		world := make([]model.Point2D, 0, len(pts)+1)
		for _, p := range pts {
			world = append(world, m.Apply(p))
		}
		w.path(append(world, world[0]), layer, color)

	case drawing.Point:
		w.cross(m.Apply(v.Position), w.opts.PlaceholderSize/2, layer, color, false)

	case drawing.Ray:
		w.construction(m.Apply(v.Base), m.ApplyVector(v.Direction), false, layer, color)

	case drawing.XLine:
		w.construction(m.Apply(v.Base), m.ApplyVector(v.Direction), true, layer, color)

	case drawing.Dimension:
		if b, ok := w.doc.Block(v.Block); ok && v.Block != "" && f.depth < w.opts.MaxDepth {
			// dimension blocks are already in the dimension's frame
			w.walk(b.Entities, frame{m: m, layer: layer, color: color, depth: f.depth + 1, inBlock: true})
			return
		}
		pts := make([]model.Point2D, 0, len(v.Points))
		for _, p := range v.Points {
			pts = append(pts, m.Apply(p))
		}
		w.path(pts, layer, color)
		if v.Text != "" {
			w.text(drawing.Text{Content: v.Text, Position: v.TextPosition, Height: w.opts.PlaceholderSize / 4}, m, layer, color)
		}

	case drawing.Leader:
		pts := make([]model.Point2D, 0, len(v.Vertices))
		for _, p := range v.Vertices {
			pts = append(pts, m.Apply(p))
		}
		if len(pts) < 2 {
			w.res.Stats.Skipped++
			return
		}
		w.path(pts, layer, color)

	case drawing.Unknown:
		if len(v.Points) < 2 {
			w.res.Stats.Skipped++
			w.warn("unsupported entity %s on layer %q has no usable points", v.Type, layer)
			return
		}
		pts := make([]model.Point2D, 0, len(v.Points))
		for _, p := range v.Points {
			pts = append(pts, m.Apply(p))
		}
		w.path(pts, layer, color)

	default:
		w.res.Stats.Skipped++
		w.warn("unsupported entity %s", e.Kind())
	}
}

func (w *walker) text(t drawing.Text, m Affine, layer string, color int) {
	pos := m.Apply(t.Position)
	w.extend(layer, pos)
	if w.opts.MaxTexts > 0 && len(w.res.Texts) >= w.opts.MaxTexts {
		w.res.Stats.DroppedTexts++
		return
	}
	w.res.Texts = append(w.res.Texts, TextItem{
		Layer:     layer,
		Color:     color,
		Content:   t.Content,
		Position:  pos,
		Height:    t.Height * m.ScaleFactor(),
		Rotation:  t.Rotation + m.RotationDegrees(),
		MultiLine: t.MultiLine,
	})
	w.res.Stats.Texts++
}

func (w *walker) insert(v drawing.Insert, f frame, layer string, color int) {
	pos := v.Position
	if f.depth == 0 && w.opts.IgnorePosition {
		pos = model.Point2D{}
	}

	if f.depth >= w.opts.MaxDepth {
		w.warn("block %q nested deeper than %d levels, expansion stopped", v.Block, w.opts.MaxDepth)
		w.cross(f.m.Apply(pos), w.opts.PlaceholderSize, layer, color, true)
		return
	}
	b, ok := w.doc.Block(v.Block)
	if !ok {
		w.warn("block %q not found", v.Block)
		w.cross(f.m.Apply(pos), w.opts.PlaceholderSize, layer, color, true)
		return
	}

	sx, sy := v.Scale()
	k := ScaleFor(w.opts.ScaleRules, v.Block)
	local := InsertTransform(b.Base, pos, sx*k, sy*k, v.Rotation)

	w.res.Stats.Inserts++
	w.walk(b.Entities, frame{
		m:       f.m.Multiply(local),
		layer:   layer,
		color:   color,
		depth:   f.depth + 1,
		inBlock: true,
	})
}
