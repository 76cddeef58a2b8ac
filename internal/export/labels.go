package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// TableCard holds the data printed on, and QR-encoded into, a table card.
type TableCard struct {
	Event     string  `json:"event,omitempty"`
	Number    int     `json:"number"`
	ID        string  `json:"id"`
	TableType string  `json:"table_type,omitempty"`
	Seats     int     `json:"seats"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Column    int     `json:"column"`
	Row       int     `json:"row"`
}

// Card layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectTableCards builds one card per placed table, numbered in packing
// order.
func CollectTableCards(event string, result model.SeatingResult, table model.TableSpec) []TableCard {
	cards := make([]TableCard, 0, len(result.Tables))
	for i, t := range result.Tables {
		cards = append(cards, TableCard{
			Event:     event,
			Number:    i + 1,
			ID:        t.ID,
			TableType: table.Name,
			Seats:     table.ChairsPerTable,
			X:         t.X,
			Y:         t.Y,
			Column:    t.Column + 1,
			Row:       t.Row + 1,
		})
	}
	return cards
}

// ExportTableCards writes a label-sheet PDF with one card per table. Each
// card shows the table number and seat count next to a QR code of the
// card's JSON.
func ExportTableCards(path, event string, result model.SeatingResult, table model.TableSpec) error {
	cards := CollectTableCards(event, result, table)
	if len(cards) == 0 {
		return fmt.Errorf("%w: no tables placed", ErrNothingToExport)
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, card := range cards {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderCard(pdf, x, y, card); err != nil {
			return fmt.Errorf("render card for table %d: %w", card.Number, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderCard draws a single card at the given position.
func renderCard(pdf *fpdf.Fpdf, x, y float64, card TableCard) error {
	// cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("marshal card: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_table_%d_%s", card.Number, card.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 5.5, fmt.Sprintf("Table %d", card.Number), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+6.5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d seats", card.Seats), "", 1, "L", false, 0, "")

	if card.Event != "" {
		event := card.Event
		if pdf.GetStringWidth(event) > textW {
			for len(event) > 0 && pdf.GetStringWidth(event+"...") > textW {
				event = event[:len(event)-1]
			}
			event += "..."
		}
		pdf.SetXY(textX, y+labelPadding+10)
		pdf.CellFormat(textW, 3.5, event, "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+14)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Column %d, row %d", card.Column, card.Row), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
