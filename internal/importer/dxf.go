package importer

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/SeatPlan/internal/drawing"
	"github.com/piwi3910/SeatPlan/internal/model"
)

// ErrMalformedDocument is returned when drawing bytes cannot be interpreted.
var ErrMalformedDocument = errors.New("malformed drawing document")

// ParseDrawing decodes drawing bytes. JSON documents are recognised by a
// .json name or a leading '{'; everything else is read as ASCII DXF.
func ParseDrawing(name string, data []byte) (*drawing.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%s: %w: empty input", name, ErrMalformedDocument)
	}
	if strings.EqualFold(filepath.Ext(name), ".json") || trimmed[0] == '{' {
		doc, err := drawing.Decode(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", name, ErrMalformedDocument, err)
		}
		return doc, nil
	}
	doc, err := ParseDXF(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}

// ParseDXF converts an ASCII DXF file into a drawing document.
//
// Header units, the layer table and the entities the dxf package models
// (lines, arcs, circles, lightweight polylines, text, points, splines) come
// from its reader. That reader stops at the first entity type it does not
// know and drops block contents, so the group-code scan supplies block
// definitions, entity order and everything after the point it stopped.
func ParseDXF(data []byte) (*drawing.Document, error) {
	raw, err := scanGroupCodes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	parsed := readDXF(data)
	doc := drawing.NewDocument()
	if raw.hasUnits {
		doc.Header.Units = parsed.units
	}
	for name, color := range parsed.layers {
		if name == "" {
			continue
		}
		if off, ok := raw.offLayers[name]; ok {
			color = off
		}
		doc.Layers[name] = drawing.Layer{Name: name, Color: color}
	}
	for _, rb := range raw.blocks {
		name := rb.head.str(2)
		if name == "" {
			continue
		}
		b := &drawing.Block{Name: name, Base: rb.head.point(10)}
		for _, r := range rb.entities {
			b.Entities = append(b.Entities, r.toEntity())
		}
		doc.Blocks[name] = b
	}

	for _, r := range raw.entities {
		if e, ok := parsed.queue.next(r); ok {
			doc.Entities = append(doc.Entities, e)
			continue
		}
		doc.Entities = append(doc.Entities, r.toEntity())
	}
	return doc, nil
}

// entityQueue holds the dxf reader's entities per type in file order so
// they can be matched back to the group-code records.
type entityQueue map[string][]drawing.Entity

func (q entityQueue) next(r record) (drawing.Entity, bool) {
	list := q[r.kind]
	if len(list) == 0 {
		return nil, false
	}
	e := list[0]
	q[r.kind] = list[1:]

	// the dxf reader does not surface these attributes
	c := r.common()
	switch v := e.(type) {
	case drawing.Line:
		v.Common = c
		return v, true
	case drawing.Circle:
		v.Common = c
		return v, true
	case drawing.Arc:
		v.Common = c
		return v, true
	case drawing.Polyline:
		v.Common = c
		v.Closed = r.integer(70)&1 != 0
		return v, true
	case drawing.Text:
		v.Common = c
		return v, true
	case drawing.Point:
		v.Common = c
		return v, true
	case drawing.Spline:
		// 2D files omit the 30 codes and the reader groups coordinates in threes
		if len(v.ControlPoints) != r.count(10) || len(v.FitPoints) != r.count(11) {
			return r.toEntity(), true
		}
		v.Common = c
		return v, true
	}
	return e, true
}

// dxfView is what the dxf package's reader recovered from a file.
type dxfView struct {
	units  model.Units
	layers map[string]int
	queue  entityQueue
}

// readDXF runs the dxf package's reader. The reader hands back everything
// it parsed before an error, so a partial drawing is still used. A reader
// panic yields an empty view and every entity falls back to the
// group-code conversion.
func readDXF(data []byte) (v dxfView) {
	v = dxfView{units: model.UnitsUnknown, queue: entityQueue{}}
	defer func() {
		// treat reader panics like parse errors
		if recover() != nil {
			v = dxfView{units: model.UnitsUnknown, queue: entityQueue{}}
		}
	}()
	d, _ := dxf.FromReader(bytes.NewReader(data))
	if d == nil {
		return v
	}
	v.units = model.UnitsFromCode(int(d.Header().InsUnit))
	v.layers = make(map[string]int, len(d.Layers))
	for name, l := range d.Layers {
		v.layers[name] = int(l.Color)
	}
	for _, ent := range d.Entities() {
		switch e := ent.(type) {
		case *entity.Line:
			v.queue.add("LINE", drawing.Line{
				Start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				End:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})
		case *entity.LwPolyline:
			v.queue.add("LWPOLYLINE", lwPolylineToPolyline(e))
		case *entity.Circle:
			v.queue.add("CIRCLE", drawing.Circle{
				Center: model.Point2D{X: e.Center[0], Y: e.Center[1]},
				Radius: e.Radius,
			})
		case *entity.Arc:
			v.queue.add("ARC", drawing.Arc{
				Center:     model.Point2D{X: e.Circle.Center[0], Y: e.Circle.Center[1]},
				Radius:     e.Circle.Radius,
				StartAngle: e.Angle[0],
				EndAngle:   e.Angle[1],
			})
		case *entity.Text:
			v.queue.add("TEXT", drawing.Text{
				Content:  e.Value,
				Position: model.Point2D{X: e.Coord1[0], Y: e.Coord1[1]},
				Height:   e.Height,
				Rotation: e.Rotation,
			})
		case *entity.Point:
			v.queue.add("POINT", drawing.Point{Position: model.Point2D{X: e.Coord[0], Y: e.Coord[1]}})
		case *entity.Spline:
			v.queue.add("SPLINE", drawing.Spline{
				ControlPoints: coordsToPoints(e.Controls),
				FitPoints:     coordsToPoints(e.Fits),
				Closed:        e.Flag&1 != 0,
			})
		default:
			// everything else comes from the group-code records
		}
	}
	return v
}

func (q entityQueue) add(kind string, e drawing.Entity) {
	q[kind] = append(q[kind], e)
}

func coordsToPoints(coords [][]float64) []model.Point2D {
	var pts []model.Point2D
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		pts = append(pts, model.Point2D{X: c[0], Y: c[1]})
	}
	return pts
}

// lwPolylineToPolyline copies vertices and bulges from a LWPOLYLINE.
func lwPolylineToPolyline(lw *entity.LwPolyline) drawing.Polyline {
	pl := drawing.Polyline{Vertices: make([]drawing.Vertex, 0, len(lw.Vertices))}
	for i, v := range lw.Vertices {
		vx := drawing.Vertex{X: v[0], Y: v[1]}
		if i < len(lw.Bulges) {
			vx.Bulge = lw.Bulges[i]
		}
		pl.Vertices = append(pl.Vertices, vx)
	}
	return pl
}
