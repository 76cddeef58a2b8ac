package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/SeatPlan/internal/drawing"
	"github.com/piwi3910/SeatPlan/internal/model"
)

// dxfText joins group code / value pairs into ASCII DXF.
func dxfText(pairs ...string) string {
	return strings.Join(pairs, "\n") + "\n"
}

var sampleDXF = dxfText(
	"0", "SECTION", "2", "HEADER",
	"9", "$ACADVER", "1", "AC1015",
	"9", "$INSUNITS", "70", "5",
	"0", "ENDSEC",
	"0", "SECTION", "2", "TABLES",
	"0", "TABLE", "2", "LAYER",
	"0", "LAYER", "2", "Walls", "62", "-3",
	"0", "ENDTAB",
	"0", "ENDSEC",
	"0", "SECTION", "2", "BLOCKS",
	"0", "BLOCK", "8", "0", "2", "CHAIR", "10", "5.0", "20", "5.0",
	"0", "LINE", "8", "0", "10", "0.0", "20", "0.0", "11", "10.0", "21", "0.0",
	"0", "ENDBLK",
	"0", "ENDSEC",
	"0", "SECTION", "2", "ENTITIES",
	"0", "LINE", "5", "1A", "8", "Walls", "10", "0.0", "20", "0.0", "11", "100.0", "21", "0.0",
	"0", "LWPOLYLINE", "8", "Area", "90", "3", "70", "1",
	"10", "0.0", "20", "0.0", "42", "0.5",
	"10", "10.0", "20", "0.0",
	"10", "10.0", "20", "10.0",
	"0", "TEXT", "8", "Notes", "10", "1.0", "20", "2.0", "40", "2.5", "1", "Stage",
	"0", "INSERT", "8", "Seats", "2", "CHAIR", "10", "50.0", "20", "60.0", "41", "2.0", "42", "2.0", "50", "90.0",
	"0", "WIPEOUT", "8", "Misc", "10", "3.0", "20", "4.0",
	"0", "ENDSEC",
	"0", "EOF",
)

func TestParseDXF_HeaderLayersAndBlocks(t *testing.T) {
	doc, err := ParseDXF([]byte(sampleDXF))
	require.NoError(t, err)

	assert.Equal(t, model.UnitsCentimeters, doc.Header.Units)
	assert.Equal(t, 3, doc.LayerColor("Walls"))

	b, ok := doc.Block("chair")
	require.True(t, ok)
	assert.Equal(t, model.Point2D{X: 5, Y: 5}, b.Base)
	require.Len(t, b.Entities, 1)
	assert.Equal(t, drawing.KindLine, b.Entities[0].Kind())
}

func TestParseDXF_EntitiesInFileOrder(t *testing.T) {
	doc, err := ParseDXF([]byte(sampleDXF))
	require.NoError(t, err)
	require.Len(t, doc.Entities, 5)

	line, ok := doc.Entities[0].(drawing.Line)
	require.True(t, ok)
	assert.Equal(t, "Walls", line.Layer)
	assert.Equal(t, "1A", line.Handle)
	assert.Equal(t, model.Point2D{X: 100, Y: 0}, line.End)

	pl, ok := doc.Entities[1].(drawing.Polyline)
	require.True(t, ok)
	assert.True(t, pl.Closed)
	require.Len(t, pl.Vertices, 3)
	assert.Equal(t, 0.5, pl.Vertices[0].Bulge)
	assert.Equal(t, 0.0, pl.Vertices[1].Bulge)

	txt, ok := doc.Entities[2].(drawing.Text)
	require.True(t, ok)
	assert.Equal(t, "Stage", txt.Content)
	assert.Equal(t, 2.5, txt.Height)

	ins, ok := doc.Entities[3].(drawing.Insert)
	require.True(t, ok)
	assert.Equal(t, "CHAIR", ins.Block)
	assert.Equal(t, 90.0, ins.Rotation)
	sx, sy := ins.Scale()
	assert.Equal(t, 2.0, sx)
	assert.Equal(t, 2.0, sy)

	u, ok := doc.Entities[4].(drawing.Unknown)
	require.True(t, ok)
	assert.Equal(t, "WIPEOUT", u.Type)
	assert.Equal(t, []model.Point2D{{X: 3, Y: 4}}, u.Points)
}

func TestParseDXF_MissingUnitsIsUnknown(t *testing.T) {
	data := dxfText(
		"0", "SECTION", "2", "ENTITIES",
		"0", "CIRCLE", "8", "0", "10", "1.0", "20", "1.0", "40", "3.0",
		"0", "ENDSEC", "0", "EOF",
	)
	doc, err := ParseDXF([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, model.UnitsUnknown, doc.Header.Units)
	require.Len(t, doc.Entities, 1)
	assert.Equal(t, 3.0, doc.Entities[0].(drawing.Circle).Radius)
}

func TestParseDXF_ExplicitUnitlessIsKept(t *testing.T) {
	data := dxfText(
		"0", "SECTION", "2", "HEADER",
		"9", "$INSUNITS", "70", "0",
		"0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "POINT", "8", "0", "10", "1.0", "20", "1.0",
		"0", "ENDSEC", "0", "EOF",
	)
	doc, err := ParseDXF([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, model.UnitsUnitless, doc.Header.Units)
}

func TestParseDXF_OldStylePolyline(t *testing.T) {
	data := dxfText(
		"0", "SECTION", "2", "BLOCKS",
		"0", "BLOCK", "8", "0", "2", "TABLE8", "10", "0.0", "20", "0.0",
		"0", "POLYLINE", "8", "0", "66", "1", "70", "0",
		"0", "VERTEX", "8", "0", "10", "0.0", "20", "0.0",
		"0", "VERTEX", "8", "0", "10", "5.0", "20", "0.0",
		"0", "SEQEND", "8", "0",
		"0", "ENDBLK",
		"0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "POLYLINE", "5", "2F", "8", "WALLS", "66", "1", "70", "1",
		"0", "VERTEX", "8", "WALLS", "10", "0.0", "20", "0.0", "42", "1.0",
		"0", "VERTEX", "8", "WALLS", "10", "100.0", "20", "0.0",
		"0", "VERTEX", "8", "WALLS", "10", "50.0", "20", "20.0", "70", "16",
		"0", "VERTEX", "8", "WALLS", "10", "100.0", "20", "80.0",
		"0", "SEQEND", "8", "WALLS",
		"0", "LINE", "8", "WALLS", "10", "0.0", "20", "80.0", "11", "100.0", "21", "80.0",
		"0", "ENDSEC",
		"0", "EOF",
	)
	doc, err := ParseDXF([]byte(data))
	require.NoError(t, err)
	require.Len(t, doc.Entities, 2)

	pl, ok := doc.Entities[0].(drawing.Polyline)
	require.True(t, ok)
	assert.Equal(t, "WALLS", pl.Layer)
	assert.Equal(t, "2F", pl.Handle)
	assert.True(t, pl.Closed)
	assert.Equal(t, []drawing.Vertex{
		{X: 0, Y: 0, Bulge: 1},
		{X: 100, Y: 0},
		{X: 100, Y: 80},
	}, pl.Vertices)

	line, ok := doc.Entities[1].(drawing.Line)
	require.True(t, ok)
	assert.Equal(t, model.Point2D{X: 100, Y: 80}, line.End)

	b, ok := doc.Block("TABLE8")
	require.True(t, ok)
	require.Len(t, b.Entities, 1)
	bpl, ok := b.Entities[0].(drawing.Polyline)
	require.True(t, ok)
	assert.False(t, bpl.Closed)
	assert.Len(t, bpl.Vertices, 2)
}

func TestParseDXF_ReaderEntitiesAndFallbackAfterInsert(t *testing.T) {
	data := dxfText(
		"0", "SECTION", "2", "HEADER",
		"9", "$INSUNITS", "70", "4",
		"0", "ENDSEC",
		"0", "SECTION", "2", "TABLES",
		"0", "TABLE", "2", "LAYER",
		"0", "LAYER", "2", "Seats", "70", "0", "62", "5",
		"0", "LAYER", "2", "Notes", "70", "0", "62", "2",
		"0", "ENDTAB",
		"0", "ENDSEC",
		"0", "SECTION", "2", "ENTITIES",
		"0", "TEXT", "8", "Notes", "10", "10.0", "20", "20.0", "40", "250.0", "50", "90.0", "1", "Bar",
		"0", "POINT", "8", "Seats", "10", "7.0", "20", "8.0", "30", "0.0",
		"0", "SPLINE", "8", "Seats", "70", "1", "71", "3",
		"10", "0.0", "20", "0.0", "30", "0.0",
		"10", "10.0", "20", "5.0", "30", "0.0",
		"10", "20.0", "20", "0.0", "30", "0.0",
		"0", "SPLINE", "8", "Seats", "70", "0",
		"10", "0.0", "20", "0.0",
		"10", "3.0", "20", "4.0",
		"0", "INSERT", "8", "Seats", "2", "CHAIR", "10", "1.0", "20", "1.0",
		"0", "TEXT", "8", "Notes", "10", "30.0", "20", "40.0", "40", "100.0", "1", "Exit",
		"0", "ENDSEC",
		"0", "EOF",
	)
	doc, err := ParseDXF([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, model.UnitsMillimeters, doc.Header.Units)
	assert.Equal(t, 5, doc.LayerColor("Seats"))
	assert.Equal(t, 2, doc.LayerColor("Notes"))

	require.Len(t, doc.Entities, 6)

	txt, ok := doc.Entities[0].(drawing.Text)
	require.True(t, ok)
	assert.Equal(t, "Bar", txt.Content)
	assert.Equal(t, "Notes", txt.Layer)
	assert.Equal(t, model.Point2D{X: 10, Y: 20}, txt.Position)
	assert.Equal(t, 250.0, txt.Height)
	assert.Equal(t, 90.0, txt.Rotation)

	pt, ok := doc.Entities[1].(drawing.Point)
	require.True(t, ok)
	assert.Equal(t, model.Point2D{X: 7, Y: 8}, pt.Position)

	sp, ok := doc.Entities[2].(drawing.Spline)
	require.True(t, ok)
	assert.True(t, sp.Closed)
	assert.Equal(t, []model.Point2D{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 0}}, sp.ControlPoints)

	// 2D control points without 30 codes are read from the group codes
	flat, ok := doc.Entities[3].(drawing.Spline)
	require.True(t, ok)
	assert.False(t, flat.Closed)
	assert.Equal(t, []model.Point2D{{X: 0, Y: 0}, {X: 3, Y: 4}}, flat.ControlPoints)

	_, ok = doc.Entities[4].(drawing.Insert)
	require.True(t, ok)

	// the reader stops at INSERT; the rest comes from the group codes
	exit, ok := doc.Entities[5].(drawing.Text)
	require.True(t, ok)
	assert.Equal(t, "Exit", exit.Content)
	assert.Equal(t, 100.0, exit.Height)
}

func TestParseDrawing_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty.dxf":   "   ",
		"garbage.dxf": "hello\nworld\n",
		"nosect.dxf":  dxfText("999", "comment"),
		"bad.json":    `{"entities": [`,
	}
	for name, data := range cases {
		_, err := ParseDrawing(name, []byte(data))
		assert.True(t, errors.Is(err, ErrMalformedDocument), name)
	}
}

func TestParseDrawing_DetectsJSON(t *testing.T) {
	doc, err := ParseDrawing("stage.bin", []byte(`{"header": {"units": 2}, "entities": []}`))
	require.NoError(t, err)
	assert.Equal(t, model.UnitsFeet, doc.Header.Units)
}
