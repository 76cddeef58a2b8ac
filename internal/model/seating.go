package model

import (
	"fmt"

	"github.com/google/uuid"
)

// PackMode selects which unit kinds the packer may place.
type PackMode string

const (
	ModeTablesOnly PackMode = "tables-only"
	ModeChairsOnly PackMode = "chairs-only"
	ModeAuto       PackMode = "auto" // "smart mix": tables first, chair columns as overflow
)

// ParsePackMode accepts the canonical names plus a few short aliases.
func ParsePackMode(s string) (PackMode, error) {
	switch s {
	case "tables-only", "tables", "table":
		return ModeTablesOnly, nil
	case "chairs-only", "chairs", "chair":
		return ModeChairsOnly, nil
	case "auto", "mix", "smart", "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("unknown pack mode %q", s)
	}
}

// UnitKind tags a placed unit.
type UnitKind string

const (
	KindTable UnitKind = "table"
	KindChair UnitKind = "chair"
)

// UnitFootprint is the size and spacing rule shared by tables and chairs.
// Spacing applies between columns and rows unless ColumnSpacing or
// RowSpacing override it.
type UnitFootprint struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Spacing         float64 `json:"spacing"`
	ColumnSpacing   float64 `json:"column_spacing,omitempty"`
	RowSpacing      float64 `json:"row_spacing,omitempty"`
	Rotation        float64 `json:"rotation,omitempty"`          // degrees, carried through to placements
	RowsPerGroup    int     `json:"rows_per_group,omitempty"`    // 0 = no aisles
	RowGroupSpacing float64 `json:"row_group_spacing,omitempty"` // extra gap after every RowsPerGroup rows
}

// ColumnPitch is the horizontal advance from one column origin to the next.
func (f UnitFootprint) ColumnPitch() float64 {
	return f.Width + f.ColumnGap()
}

// ColumnGap is the horizontal gap between neighbouring columns.
func (f UnitFootprint) ColumnGap() float64 {
	if f.ColumnSpacing > 0 {
		return f.ColumnSpacing
	}
	return f.Spacing
}

// RowPitch is the vertical advance from one row origin to the next,
// excluding group aisles.
func (f UnitFootprint) RowPitch() float64 {
	if f.RowSpacing > 0 {
		return f.Height + f.RowSpacing
	}
	return f.Height + f.Spacing
}

// Valid reports whether the footprint has a positive size.
func (f UnitFootprint) Valid() bool {
	return f.Width > 0 && f.Height > 0
}

// TableSpec describes one table type.
type TableSpec struct {
	Name           string        `json:"name,omitempty"`
	Footprint      UnitFootprint `json:"footprint"`
	ChairsPerTable int           `json:"chairs_per_table"`
}

// ChairSpec describes one chair type. ChairsPerRow, when set, inserts an
// aisle of AisleSpacing after that many chairs in a column (a row of chairs
// facing the stage runs vertically).
type ChairSpec struct {
	Name         string        `json:"name,omitempty"`
	Footprint    UnitFootprint `json:"footprint"`
	ChairsPerRow int           `json:"chairs_per_row,omitempty"`
	AisleSpacing float64       `json:"aisle_spacing,omitempty"`
}

// EffectiveFootprint folds ChairsPerRow/AisleSpacing into the generic
// row-grouping fields. Explicit footprint grouping wins.
func (c ChairSpec) EffectiveFootprint() UnitFootprint {
	f := c.Footprint
	if f.RowsPerGroup == 0 && c.ChairsPerRow > 0 {
		f.RowsPerGroup = c.ChairsPerRow
		f.RowGroupSpacing = c.AisleSpacing
	}
	return f
}

// PlacedUnit is one table or chair in the output arrangement. X, Y is the
// unit's top-left corner in area coordinates, not its centre.
type PlacedUnit struct {
	ID          string   `json:"id"`
	Kind        UnitKind `json:"kind"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Rotation    float64  `json:"rotation"`
	SourceIndex int      `json:"source_index"`
	Column      int      `json:"column"`
	Row         int      `json:"row"`
}

// NewPlacedUnit creates a placement with a generated ID.
func NewPlacedUnit(kind UnitKind, x, y, rotation float64, index int) PlacedUnit {
	return PlacedUnit{
		ID:          uuid.New().String()[:8],
		Kind:        kind,
		X:           x,
		Y:           y,
		Rotation:    rotation,
		SourceIndex: index,
	}
}

// Center returns the centre of the unit given its footprint.
func (p PlacedUnit) Center(f UnitFootprint) Point2D {
	return Point2D{X: p.X + f.Width/2, Y: p.Y + f.Height/2}
}

// Bounds returns the unit's axis-aligned footprint box.
func (p PlacedUnit) Bounds(f UnitFootprint) BBox {
	return BBox{MinX: p.X, MaxX: p.X + f.Width, MinY: p.Y, MaxY: p.Y + f.Height, Valid: true}
}

// Column describes one filled packing column.
type Column struct {
	Kind  UnitKind `json:"kind"`
	X     float64  `json:"x"`
	Count int      `json:"count"`
}

// SeatingResult is the packer's output.
type SeatingResult struct {
	Tables             []PlacedUnit `json:"tables"`
	Chairs             []PlacedUnit `json:"chairs"`
	ActualGuestsSeated int          `json:"actual_guests_seated"`
	Columns            []Column     `json:"columns,omitempty"`
	Mode               PackMode     `json:"mode,omitempty"`
}

// Shortfall returns how many requested guests did not get a seat. It is
// zero when the result meets or exceeds the target.
func (r SeatingResult) Shortfall(target int) int {
	if r.ActualGuestsSeated >= target {
		return 0
	}
	return target - r.ActualGuestsSeated
}

// Gap returns |seated - target|.
func (r SeatingResult) Gap(target int) int {
	d := r.ActualGuestsSeated - target
	if d < 0 {
		return -d
	}
	return d
}

// ColumnCount returns the number of filled columns of the given kind.
func (r SeatingResult) ColumnCount(kind UnitKind) int {
	n := 0
	for _, c := range r.Columns {
		if c.Kind == kind && c.Count > 0 {
			n++
		}
	}
	return n
}

// Recount recomputes ActualGuestsSeated from the placements.
func (r *SeatingResult) Recount(chairsPerTable int) {
	r.ActualGuestsSeated = len(r.Tables)*chairsPerTable + len(r.Chairs)
}
