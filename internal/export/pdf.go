// Package export writes seating layouts to printable and shareable files:
// floor-plan PDFs, table cards and seating-chart workbooks.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/SeatPlan/internal/area"
	"github.com/piwi3910/SeatPlan/internal/flatten"
	"github.com/piwi3910/SeatPlan/internal/model"
)

// ErrNothingToExport is returned when an export has no content.
var ErrNothingToExport = errors.New("nothing to export")

// unitColor represents an RGB fill for a placed unit.
type unitColor struct {
	R, G, B int
}

var (
	tableColor = unitColor{R: 76, G: 175, B: 80}  // green
	chairColor = unitColor{R: 33, G: 150, B: 243} // blue
	stageColor = unitColor{R: 121, G: 85, B: 72}  // brown
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0

	curveSegments = 48
)

// FloorPlanSheet is one page of a floor-plan PDF: the room drawing with the
// seating areas, doors, stages and packed units on top. All coordinates
// are in the floor plan's own units.
type FloorPlanSheet struct {
	Title   string
	Drawing *flatten.Result // may be nil
	Areas   []model.Polygon4
	Doors   []model.ObstacleRect
	Stages  []model.Stage
	Result  model.SeatingResult
	Table   model.TableSpec
	Chair   *model.ChairSpec
	Target  int
	Units   model.Units
}

func (s FloorPlanSheet) chairFootprint() model.UnitFootprint {
	if s.Chair == nil {
		return model.UnitFootprint{}
	}
	return s.Chair.EffectiveFootprint()
}

// bounds covers everything drawn on the sheet.
func (s FloorPlanSheet) bounds() model.BBox {
	b := model.BBox{}
	if s.Drawing != nil {
		b.Union(s.Drawing.NaturalBounds)
	}
	for _, a := range s.Areas {
		b.Union(area.PolygonBounds(a))
	}
	for _, d := range s.Doors {
		b.Union(area.ObstacleBounds(d))
	}
	for _, st := range s.Stages {
		b.Union(area.StageBounds(st))
	}
	for _, u := range s.Result.Tables {
		b.Union(u.Bounds(s.Table.Footprint))
	}
	cf := s.chairFootprint()
	for _, u := range s.Result.Chairs {
		b.Union(u.Bounds(cf))
	}
	return b
}

// ExportFloorPlanPDF renders each sheet on its own page, followed by a
// summary page comparing requested and seated guests.
func ExportFloorPlanPDF(path string, sheets []FloorPlanSheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("%w: no floor plans", ErrNothingToExport)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, sheet := range sheets {
		pdf.AddPage()
		renderSheetPage(pdf, sheet, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, sheets)

	return pdf.OutputFileAndClose(path)
}

// pageMap maps floor-plan coordinates onto the drawing area of a page.
type pageMap struct {
	min     model.Point2D
	scale   float64
	offsetX float64
	offsetY float64
	canvasW float64
	canvasH float64
}

func newPageMap(b model.BBox) pageMap {
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	w, h := math.Max(b.Width(), 1), math.Max(b.Height(), 1)
	scale := math.Min(drawWidth/w, drawHeight/h)

	m := pageMap{
		min:     model.Point2D{X: b.MinX, Y: b.MinY},
		scale:   scale,
		canvasW: w * scale,
		canvasH: h * scale,
	}
	m.offsetX = marginLeft + (drawWidth-m.canvasW)/2
	m.offsetY = drawAreaTop
	return m
}

func (m pageMap) point(p model.Point2D) (float64, float64) {
	return m.offsetX + (p.X-m.min.X)*m.scale, m.offsetY + (p.Y-m.min.Y)*m.scale
}

func (m pageMap) rect(b model.BBox) (x, y, w, h float64) {
	x, y = m.point(model.Point2D{X: b.MinX, Y: b.MinY})
	return x, y, b.Width() * m.scale, b.Height() * m.scale
}

func (m pageMap) polygon(pts []model.Point2D) []fpdf.PointType {
	out := make([]fpdf.PointType, len(pts))
	for i, p := range pts {
		x, y := m.point(p)
		out[i] = fpdf.PointType{X: x, Y: y}
	}
	return out
}

// renderSheetPage draws a single floor plan on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, sheet FloorPlanSheet, num int) {
	title := sheet.Title
	if title == "" {
		title = fmt.Sprintf("Floor plan %d", num)
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, summaryLine(sheet), "", 0, "L", false, 0, "")

	b := sheet.bounds()
	if !b.Valid {
		return
	}
	m := newPageMap(b)

	drawBackground(pdf, m, sheet.Drawing)

	pdf.SetDrawColor(46, 125, 50)
	pdf.SetLineWidth(0.4)
	pdf.SetDashPattern([]float64{2, 1}, 0)
	for _, a := range sheet.Areas {
		pdf.Polygon(m.polygon(a.Points()), "D")
	}
	pdf.SetDashPattern([]float64{}, 0)

	for _, d := range sheet.Doors {
		drawDoor(pdf, m, d)
	}
	for _, st := range sheet.Stages {
		drawStage(pdf, m, st)
	}

	for i, u := range sheet.Result.Tables {
		drawUnit(pdf, m, u.Bounds(sheet.Table.Footprint), tableColor, fmt.Sprintf("%d", i+1))
	}
	cf := sheet.chairFootprint()
	for _, u := range sheet.Result.Chairs {
		drawUnit(pdf, m, u.Bounds(cf), chairColor, "")
	}

	drawDimensionAnnotations(pdf, b, sheet.Units, m)
	drawLegend(pdf, m.offsetY+m.canvasH+6)
}

// drawBackground strokes the flattened room drawing in its layer colours.
func drawBackground(pdf *fpdf.Fpdf, m pageMap, d *flatten.Result) {
	if d == nil {
		return
	}
	var shift model.Point2D
	if d.Centered {
		shift = d.Center
	}

	pdf.SetLineWidth(0.1)
	for _, p := range d.Primitives {
		r, g, b := flatten.ACIToRGB(p.Color)
		if r > 230 && g > 230 && b > 230 {
			// white on screen, black on paper
			r, g, b = 0, 0, 0
		}
		pdf.SetDrawColor(int(r), int(g), int(b))

		pts := p.Points(curveSegments)
		for i := 1; i < len(pts); i++ {
			x1, y1 := m.point(pts[i-1].Add(shift))
			x2, y2 := m.point(pts[i].Add(shift))
			pdf.Line(x1, y1, x2, y2)
		}
	}
}

// drawDoor renders a door's clearance zone with a hatch.
func drawDoor(pdf *fpdf.Fpdf, m pageMap, d model.ObstacleRect) {
	x, y, w, h := m.rect(area.ObstacleBounds(d))

	pdf.SetFillColor(255, 200, 200)
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x, y, w, h, "FD")
	drawHatchPattern(pdf, x, y, w, h)

	label := d.Name
	if label == "" {
		label = string(d.Type)
	}
	if w > 20 && h > 8 {
		pdf.SetFont("Helvetica", "B", 6)
		pdf.SetTextColor(180, 0, 0)
		labelW := pdf.GetStringWidth(label)
		pdf.SetXY(x+(w-labelW)/2, y+h/2-2)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func drawStage(pdf *fpdf.Fpdf, m pageMap, st model.Stage) {
	x, y, w, h := m.rect(area.StageBounds(st))
	pdf.SetFillColor(stageColor.R, stageColor.G, stageColor.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x, y, w, h, "FD")

	label := st.Name
	if label == "" {
		label = "STAGE"
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(255, 255, 255)
	if labelW := pdf.GetStringWidth(label); labelW < w-2 && h > 5 {
		pdf.SetXY(x+(w-labelW)/2, y+h/2-2)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func drawUnit(pdf *fpdf.Fpdf, m pageMap, b model.BBox, col unitColor, label string) {
	x, y, w, h := m.rect(b)
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, w, h, "FD")

	if label != "" && w > 6 && h > 4 {
		pdf.SetFont("Helvetica", "", labelFontSize(w, h))
		pdf.SetTextColor(0, 0, 0)
		if labelW := pdf.GetStringWidth(label); labelW < w-1 {
			pdf.SetXY(x+(w-labelW)/2, y+h/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark a
// keep-clear zone.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations labels the overall width and height of the plan.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, b model.BBox, units model.Units, m pageMap) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f %s (%.1f ft)", b.Width(), unitSuffix(units), model.NativeUnitsToFeet(b.Width(), units))
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(m.offsetX+(m.canvasW-wLabelW)/2, m.offsetY+m.canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f %s (%.1f ft)", b.Height(), unitSuffix(units), model.NativeUnitsToFeet(b.Height(), units))
	pdf.TransformBegin()
	pdf.TransformRotate(90, m.offsetX-3, m.offsetY+m.canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(m.offsetX-3-hLabelW/2, m.offsetY+m.canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func drawLegend(pdf *fpdf.Fpdf, y float64) {
	items := []struct {
		label string
		col   unitColor
	}{
		{"Table", tableColor},
		{"Chair", chairColor},
		{"Stage", stageColor},
		{"Door clearance", unitColor{R: 255, G: 200, B: 200}},
	}

	pdf.SetFont("Helvetica", "", 7)
	x := marginLeft
	for _, it := range items {
		pdf.SetFillColor(it.col.R, it.col.G, it.col.B)
		pdf.Rect(x, y+0.5, 3, 3, "F")
		pdf.SetXY(x+4, y)
		w := pdf.GetStringWidth(it.label) + 2
		pdf.CellFormat(w, 4, it.label, "", 0, "L", false, 0, "")
		x += w + 8
	}
}

func summaryLine(s FloorPlanSheet) string {
	r := s.Result
	line := fmt.Sprintf("Requested: %d | Seated: %d | Tables: %d | Chairs: %d",
		s.Target, r.ActualGuestsSeated, len(r.Tables), len(r.Chairs))
	if short := r.Shortfall(s.Target); short > 0 {
		line += fmt.Sprintf(" | Capacity exceeded by %d", short)
	}
	return line
}

// renderSummaryPage lists every floor plan with its seating totals.
func renderSummaryPage(pdf *fpdf.Fpdf, sheets []FloorPlanSheet) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Seating Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{15, 80, 30, 30, 30, 30, 40}
	headers := []string{"#", "Floor plan", "Requested", "Seated", "Tables", "Chairs", "Shortfall"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	var requested, seated, shortfall int
	pdf.SetFont("Helvetica", "", 9)
	for i, s := range sheets {
		r := s.Result
		requested += s.Target
		seated += r.ActualGuestsSeated
		shortfall += r.Shortfall(s.Target)

		rowData := []string{
			fmt.Sprintf("%d", i+1),
			s.Title,
			fmt.Sprintf("%d", s.Target),
			fmt.Sprintf("%d", r.ActualGuestsSeated),
			fmt.Sprintf("%d", len(r.Tables)),
			fmt.Sprintf("%d", len(r.Chairs)),
			fmt.Sprintf("%d", r.Shortfall(s.Target)),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y += 6
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(200, 7, fmt.Sprintf("Total: %d of %d guests seated", seated, requested), "", 0, "L", false, 0, "")

	if shortfall > 0 {
		y += 9
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, fmt.Sprintf("WARNING: capacity exceeded, %d guests without a seat", shortfall), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by SeatPlan", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns a font size that fits the rectangle.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

func unitSuffix(u model.Units) string {
	switch u {
	case model.UnitsInches:
		return "in"
	case model.UnitsFeet:
		return "ft"
	case model.UnitsMillimeters:
		return "mm"
	case model.UnitsCentimeters:
		return "cm"
	case model.UnitsMeters, model.UnitsUnitless:
		return "m"
	case model.UnitsYards:
		return "yd"
	case model.UnitsMiles:
		return "mi"
	case model.UnitsKilometers:
		return "km"
	}
	return "units"
}
