package importer

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/SeatPlan/internal/drawing"
	"github.com/piwi3910/SeatPlan/internal/model"
)

// groupPair is one DXF group code and its value.
type groupPair struct {
	code  int
	value string
}

// record is one DXF object (entity, table entry, block marker) with the
// pairs that follow its type marker. A POLYLINE also carries its VERTEX
// records up to SEQEND.
type record struct {
	kind     string
	pairs    []groupPair
	vertices []record
}

func (r record) str(code int) string {
	for _, p := range r.pairs {
		if p.code == code {
			return p.value
		}
	}
	return ""
}

func (r record) float(code int) float64 {
	v, _ := strconv.ParseFloat(r.str(code), 64)
	return v
}

func (r record) has(code int) bool {
	for _, p := range r.pairs {
		if p.code == code {
			return true
		}
	}
	return false
}

func (r record) count(code int) int {
	n := 0
	for _, p := range r.pairs {
		if p.code == code {
			n++
		}
	}
	return n
}

func (r record) integer(code int) int {
	v, _ := strconv.Atoi(r.str(code))
	return v
}

func (r record) point(xCode int) model.Point2D {
	return model.Point2D{X: r.float(xCode), Y: r.float(xCode + 10)}
}

func (r record) common() drawing.Common {
	c := drawing.Common{Layer: r.str(8), Handle: r.str(5), Color: drawing.ColorByLayer}
	if r.has(62) {
		c.Color = r.integer(62)
	}
	return c
}

// rawDXF is the group-code view of a file: block definitions, the entity
// section and the colours of layers that are switched off. hasUnits tells
// a missing $INSUNITS apart from an explicit unitless code.
type rawDXF struct {
	hasUnits  bool
	offLayers map[string]int
	blocks    []rawBlock
	entities  []record
}

type rawBlock struct {
	head     record
	entities []record
}

// readPairs splits ASCII DXF text into group code / value pairs.
func readPairs(data []byte) ([]groupPair, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var pairs []groupPair
	line := 0
	for sc.Scan() {
		line++
		codeText := strings.TrimSpace(sc.Text())
		if codeText == "" {
			continue
		}
		code, err := strconv.Atoi(codeText)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad group code %q", line, codeText)
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("line %d: group code %d has no value", line, code)
		}
		line++
		pairs = append(pairs, groupPair{code: code, value: strings.TrimSpace(sc.Text())})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// scanGroupCodes walks the pair stream and collects the parts of the file
// the dxf package's reader does not give us. An off layer stores a negative
// colour, which the reader's unsigned colour number cannot hold.
func scanGroupCodes(data []byte) (*rawDXF, error) {
	pairs, err := readPairs(data)
	if err != nil {
		return nil, err
	}

	out := &rawDXF{offLayers: map[string]int{}}
	var (
		section string
		cur     *record
		poly    *record
		block   *rawBlock
		sawSect bool
	)

	emit := func(r record) {
		switch section {
		case "TABLES":
			if r.kind == "LAYER" && r.str(2) != "" && r.integer(62) < 0 {
				out.offLayers[r.str(2)] = -r.integer(62)
			}
		case "BLOCKS":
			switch r.kind {
			case "BLOCK":
				out.blocks = append(out.blocks, rawBlock{head: r})
				block = &out.blocks[len(out.blocks)-1]
			case "ENDBLK":
				block = nil
			default:
				if block != nil {
					block.entities = append(block.entities, r)
				}
			}
		case "ENTITIES":
			out.entities = append(out.entities, r)
		}
	}
	// closePoly emits a POLYLINE once its vertex run has ended
	closePoly := func() {
		if poly != nil {
			emit(*poly)
			poly = nil
		}
	}
	flush := func() {
		if cur == nil {
			return
		}
		r := *cur
		cur = nil
		switch r.kind {
		case "POLYLINE":
			closePoly()
			poly = &r
		case "VERTEX":
			if poly != nil {
				poly.vertices = append(poly.vertices, r)
			}
		default:
			emit(r)
		}
	}

	for i := 0; i < len(pairs); i++ {
		p := pairs[i]
		if p.code != 0 {
			switch {
			case cur != nil:
				cur.pairs = append(cur.pairs, p)
			case section == "HEADER" && p.code == 9 && p.value == "$INSUNITS":
				out.hasUnits = true
			}
			continue
		}

		flush()
		if p.value != "VERTEX" {
			closePoly()
		}
		switch p.value {
		case "SECTION":
			sawSect = true
			if i+1 < len(pairs) && pairs[i+1].code == 2 {
				section = pairs[i+1].value
				i++
			}
		case "ENDSEC":
			section = ""
			block = nil
		case "EOF":
			i = len(pairs)
		case "SEQEND":
			// ends the vertex run closed above
		default:
			cur = &record{kind: p.value}
		}
	}
	flush()
	closePoly()

	if !sawSect {
		return nil, fmt.Errorf("no DXF sections found")
	}
	return out, nil
}

// toEntity converts a raw record into a drawing entity.
func (r record) toEntity() drawing.Entity {
	c := r.common()
	switch r.kind {
	case "LINE":
		return drawing.Line{Common: c, Start: r.point(10), End: r.point(11)}
	case "CIRCLE":
		return drawing.Circle{Common: c, Center: r.point(10), Radius: r.float(40)}
	case "ARC":
		return drawing.Arc{Common: c, Center: r.point(10), Radius: r.float(40), StartAngle: r.float(50), EndAngle: r.float(51)}
	case "LWPOLYLINE":
		return r.lwPolyline(c)
	case "POLYLINE":
		return r.polyline(c)
	case "TEXT", "ATTRIB", "ATTDEF":
		return drawing.Text{Common: c, Content: r.str(1), Position: r.point(10), Height: r.float(40), Rotation: r.float(50)}
	case "MTEXT":
		var sb strings.Builder
		for _, p := range r.pairs {
			if p.code == 3 {
				sb.WriteString(p.value)
			}
		}
		sb.WriteString(r.str(1))
		return drawing.Text{Common: c, Content: sb.String(), Position: r.point(10), Height: r.float(40), Rotation: r.float(50), MultiLine: true}
	case "POINT":
		return drawing.Point{Common: c, Position: r.point(10)}
	case "INSERT":
		return drawing.Insert{
			Common:   c,
			Block:    r.str(2),
			Position: r.point(10),
			ScaleX:   r.float(41),
			ScaleY:   r.float(42),
			Rotation: r.float(50),
		}
	case "ELLIPSE":
		return drawing.Ellipse{
			Common:     c,
			Center:     r.point(10),
			MajorAxis:  r.point(11),
			Ratio:      r.float(40),
			StartParam: r.float(41),
			EndParam:   r.float(42),
		}
	case "SPLINE":
		return drawing.Spline{Common: c, ControlPoints: r.points(10), FitPoints: r.points(11), Closed: r.integer(70)&1 != 0}
	case "SOLID", "TRACE", "3DFACE":
		var pts []model.Point2D
		for code := 10; code <= 13; code++ {
			if r.has(code) {
				pts = append(pts, r.point(code))
			}
		}
		return drawing.Solid{Common: c, Points: pts}
	case "RAY":
		return drawing.Ray{Common: c, Base: r.point(10), Direction: r.point(11)}
	case "XLINE":
		return drawing.XLine{Common: c, Base: r.point(10), Direction: r.point(11)}
	case "DIMENSION":
		return drawing.Dimension{
			Common:       c,
			Block:        r.str(2),
			Points:       []model.Point2D{r.point(10), r.point(13), r.point(14)},
			Text:         r.str(1),
			TextPosition: r.point(11),
		}
	case "LEADER":
		return drawing.Leader{Common: c, Vertices: r.points(10)}
	case "HATCH":
		return drawing.Hatch{Common: c, Loops: [][]model.Point2D{r.points(10)}}
	default:
		pts := r.points(10)
		pts = append(pts, r.points(11)...)
		return drawing.Unknown{Common: c, Type: r.kind, Points: pts}
	}
}

// points collects every (xCode, xCode+10) coordinate pair in order.
func (r record) points(xCode int) []model.Point2D {
	var pts []model.Point2D
	for i, p := range r.pairs {
		if p.code != xCode {
			continue
		}
		x, _ := strconv.ParseFloat(p.value, 64)
		var y float64
		if i+1 < len(r.pairs) && r.pairs[i+1].code == xCode+10 {
			y, _ = strconv.ParseFloat(r.pairs[i+1].value, 64)
		}
		pts = append(pts, model.Point2D{X: x, Y: y})
	}
	return pts
}

func (r record) lwPolyline(c drawing.Common) drawing.Polyline {
	pl := drawing.Polyline{Common: c, Closed: r.integer(70)&1 != 0}
	for i, p := range r.pairs {
		switch p.code {
		case 10:
			x, _ := strconv.ParseFloat(p.value, 64)
			var y float64
			if i+1 < len(r.pairs) && r.pairs[i+1].code == 20 {
				y, _ = strconv.ParseFloat(r.pairs[i+1].value, 64)
			}
			pl.Vertices = append(pl.Vertices, drawing.Vertex{X: x, Y: y})
		case 42:
			if n := len(pl.Vertices); n > 0 {
				pl.Vertices[n-1].Bulge, _ = strconv.ParseFloat(p.value, 64)
			}
		}
	}
	return pl
}

// polyline converts an old-style POLYLINE and its collected VERTEX records.
// Spline frame control points (vertex flag 16) are not part of the outline.
func (r record) polyline(c drawing.Common) drawing.Polyline {
	pl := drawing.Polyline{Common: c, Closed: r.integer(70)&1 != 0}
	for _, v := range r.vertices {
		if v.integer(70)&16 != 0 {
			continue
		}
		pl.Vertices = append(pl.Vertices, drawing.Vertex{X: v.float(10), Y: v.float(20), Bulge: v.float(42)})
	}
	return pl
}
