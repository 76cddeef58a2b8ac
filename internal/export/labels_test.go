package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SeatPlan/internal/model"
)

func TestExportTableCards_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.pdf")

	if err := ExportTableCards(path, "Spring Gala", buildTestResult(), testTable()); err != nil {
		t.Fatalf("ExportTableCards returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("cards PDF was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("cards PDF seems too small: %d bytes", info.Size())
	}
}

func TestExportTableCards_NoTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.pdf")

	res := model.SeatingResult{Chairs: buildTestResult().Chairs}
	err := ExportTableCards(path, "", res, testTable())
	if !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
}

func TestExportTableCards_MultiplePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	res := model.SeatingResult{}
	for i := 0; i < labelsPerPage+5; i++ {
		res.Tables = append(res.Tables, model.NewPlacedUnit(model.KindTable, float64(i)*10, 0, 0, i))
	}
	if err := ExportTableCards(path, "A very long event name that will not fit on one card line", res, testTable()); err != nil {
		t.Fatalf("ExportTableCards returned error: %v", err)
	}
}

func TestCollectTableCards(t *testing.T) {
	res := buildTestResult()
	cards := CollectTableCards("Gala", res, testTable())

	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(cards))
	}
	for i, c := range cards {
		if c.Number != i+1 {
			t.Errorf("card %d: number %d", i, c.Number)
		}
		if c.ID != res.Tables[i].ID {
			t.Errorf("card %d: id %q, want %q", i, c.ID, res.Tables[i].ID)
		}
		if c.Seats != 8 || c.TableType != "Round 180" || c.Event != "Gala" {
			t.Errorf("card %d: unexpected fields %+v", i, c)
		}
	}
	if cards[1].Column != 1 || cards[1].Row != 2 {
		t.Errorf("card 2 should be column 1 row 2, got %d/%d", cards[1].Column, cards[1].Row)
	}
}

func TestTableCardJSON(t *testing.T) {
	card := TableCard{Event: "Gala", Number: 3, ID: "abc", Seats: 10, X: 1.5, Y: 2}

	data, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"event", "number", "id", "seats", "x", "y"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("QR payload is missing %q", key)
		}
	}
	if _, ok := raw["table_type"]; ok {
		t.Error("empty table_type should be omitted")
	}
}
