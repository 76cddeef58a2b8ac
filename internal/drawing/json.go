package drawing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// documentJSON is the wire form of a Document. Entities carry a "type"
// discriminator using DXF entity names.
type documentJSON struct {
	Header   headerJSON           `json:"header"`
	Layers   map[string]Layer     `json:"layers,omitempty"`
	Blocks   map[string]blockJSON `json:"blocks,omitempty"`
	Entities []json.RawMessage    `json:"entities"`
}

type headerJSON struct {
	Units    *int `json:"units,omitempty"`
	InsUnits *int `json:"$INSUNITS,omitempty"`
}

type blockJSON struct {
	Name     string            `json:"name,omitempty"`
	Base     model.Point2D     `json:"base"`
	Position *model.Point2D    `json:"position,omitempty"`
	Entities []json.RawMessage `json:"entities"`
}

// Decode parses a JSON drawing document.
func Decode(data []byte) (*Document, error) {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode drawing: %w", err)
	}

	doc := NewDocument()
	switch {
	case raw.Header.Units != nil:
		doc.Header.Units = model.UnitsFromCode(*raw.Header.Units)
	case raw.Header.InsUnits != nil:
		doc.Header.Units = model.UnitsFromCode(*raw.Header.InsUnits)
	}
	for name, l := range raw.Layers {
		if l.Name == "" {
			l.Name = name
		}
		doc.Layers[name] = l
	}

	for name, rb := range raw.Blocks {
		b := &Block{Name: name, Base: rb.Base}
		if rb.Position != nil && rb.Base == (model.Point2D{}) {
			b.Base = *rb.Position
		}
		b.Entities = doc.decodeEntities(fmt.Sprintf("block %q", name), rb.Entities)
		doc.Blocks[name] = b
	}

	doc.Entities = doc.decodeEntities("drawing", raw.Entities)
	return doc, nil
}

// decodeEntities decodes each entity on its own. An entity whose fields
// do not fit its type is kept as Unknown with whatever points it has; one
// that is not a JSON object at all is dropped. Both are noted in
// d.Warnings.
func (d *Document) decodeEntities(where string, raws []json.RawMessage) []Entity {
	out := make([]Entity, 0, len(raws))
	for i, r := range raws {
		e, err := decodeEntity(r)
		if err == nil {
			out = append(out, e)
			continue
		}
		var head entityHead
		if json.Unmarshal(r, &head) == nil {
			if u, uerr := decodeUnknown(head, r); uerr == nil {
				d.Warnings = append(d.Warnings, fmt.Sprintf("%s entity %d (%s): %v; kept as unknown", where, i, strings.ToUpper(head.Type), err))
				out = append(out, u)
				continue
			}
		}
		d.Warnings = append(d.Warnings, fmt.Sprintf("%s entity %d: %v; dropped", where, i, err))
	}
	return out
}

// entityHead reads the discriminator and the common attributes.
type entityHead struct {
	Type string `json:"type"`
	Common
}

func decodeEntity(r json.RawMessage) (Entity, error) {
	var head entityHead
	if err := json.Unmarshal(r, &head); err != nil {
		return nil, err
	}

	switch strings.ToUpper(head.Type) {
	case "LINE":
		var e struct {
			Line
			Vertices []model.Point2D `json:"vertices"`
		}
		if err := json.Unmarshal(r, &e); err != nil {
			return nil, err
		}
		if len(e.Vertices) >= 2 {
			e.Line.Start, e.Line.End = e.Vertices[0], e.Vertices[1]
		}
		return e.Line, nil
	case "LWPOLYLINE", "POLYLINE":
		var e struct {
			Polyline
			Shape bool `json:"shape"`
		}
		if err := json.Unmarshal(r, &e); err != nil {
			return nil, err
		}
		e.Polyline.Closed = e.Polyline.Closed || e.Shape
		return e.Polyline, nil
	case "CIRCLE":
		return decodeAs[Circle](r)
	case "ARC":
		return decodeAs[Arc](r)
	case "ELLIPSE":
		return decodeAs[Ellipse](r)
	case "SPLINE":
		return decodeAs[Spline](r)
	case "TEXT", "ATTRIB", "ATTDEF":
		return decodeAs[Text](r)
	case "MTEXT":
		t, err := decodeAs[Text](r)
		t.MultiLine = true
		return t, err
	case "INSERT":
		var e struct {
			Insert
			Name string `json:"name"`
		}
		if err := json.Unmarshal(r, &e); err != nil {
			return nil, err
		}
		if e.Insert.Block == "" {
			e.Insert.Block = e.Name
		}
		return e.Insert, nil
	case "HATCH":
		return decodeAs[Hatch](r)
	case "SOLID", "TRACE", "3DFACE":
		return decodeAs[Solid](r)
	case "POINT":
		return decodeAs[Point](r)
	case "RAY":
		return decodeAs[Ray](r)
	case "XLINE":
		return decodeAs[XLine](r)
	case "DIMENSION":
		return decodeAs[Dimension](r)
	case "LEADER":
		return decodeAs[Leader](r)
	default:
		return decodeUnknown(head, r)
	}
}

func decodeAs[T Entity](r json.RawMessage) (T, error) {
	var e T
	err := json.Unmarshal(r, &e)
	return e, err
}

// pointFields are the keys scanned on entities of unmodelled types.
var pointFields = []string{
	"start", "end", "vertices", "position", "center", "controlPoints", "control_points",
}

// decodeUnknown keeps whatever point-like data an unmodelled entity has so
// the flattener can still draw something.
func decodeUnknown(head entityHead, r json.RawMessage) (Entity, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r, &fields); err != nil {
		return nil, err
	}
	u := Unknown{Common: head.Common, Type: strings.ToUpper(head.Type)}
	for _, key := range pointFields {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var p model.Point2D
		if err := json.Unmarshal(raw, &p); err == nil {
			u.Points = append(u.Points, p)
			continue
		}
		var ps []model.Point2D
		if err := json.Unmarshal(raw, &ps); err == nil {
			u.Points = append(u.Points, ps...)
		}
	}
	return u, nil
}

// Encode writes the document in the form Decode reads.
func Encode(doc *Document) ([]byte, error) {
	units := int(doc.Header.Units)
	out := struct {
		Header   headerJSON           `json:"header"`
		Layers   map[string]Layer     `json:"layers,omitempty"`
		Blocks   map[string]blockJSON `json:"blocks,omitempty"`
		Entities []json.RawMessage    `json:"entities"`
	}{
		Header: headerJSON{Units: &units},
		Layers: doc.Layers,
		Blocks: make(map[string]blockJSON, len(doc.Blocks)),
	}

	var err error
	if out.Entities, err = encodeEntities(doc.Entities); err != nil {
		return nil, err
	}
	for name, b := range doc.Blocks {
		ents, err := encodeEntities(b.Entities)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", name, err)
		}
		out.Blocks[name] = blockJSON{Name: b.Name, Base: b.Base, Entities: ents}
	}
	return json.MarshalIndent(out, "", "  ")
}

func encodeEntities(ents []Entity) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(ents))
	for _, e := range ents {
		body, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, err
		}
		typ, _ := json.Marshal(string(e.Kind()))
		fields["type"] = typ
		if u, ok := e.(Unknown); ok {
			// unknown entities round-trip their points under "vertices"
			pts, _ := json.Marshal(u.Points)
			fields["vertices"] = pts
			delete(fields, "points")
		}
		merged, err := json.Marshal(fields)
		if err != nil {
			return nil, err
		}
		out = append(out, merged)
	}
	return out, nil
}
