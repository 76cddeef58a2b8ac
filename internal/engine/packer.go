package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/SeatPlan/internal/area"
	"github.com/piwi3910/SeatPlan/internal/model"
)

var (
	// ErrMissingChairSpec is returned when chairs-only packing is requested
	// without a chair spec.
	ErrMissingChairSpec = errors.New("chairs-only packing needs a chair spec")
	// ErrInvalidFootprint is returned for units with no size or a
	// non-advancing pitch.
	ErrInvalidFootprint = errors.New("invalid unit footprint")
)

const eps = 1e-9

// Packer places tables and chairs into a seating area, one column at a
// time from left to right, each column filled top to bottom.
type Packer struct {
	Logger *log.Logger
}

// New returns a Packer that logs decisions to logger (log.Default() if nil).
func New(logger *log.Logger) *Packer {
	return &Packer{Logger: logger}
}

// Pack runs the default packer.
func Pack(target int, poly model.Polygon4, table model.TableSpec, chair *model.ChairSpec, obstacles []model.ObstacleRect, mode model.PackMode) (model.SeatingResult, error) {
	return New(nil).Pack(target, poly, table, chair, obstacles, mode)
}

func (p *Packer) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}

// Pack fills poly with units for target guests.
//
// A zero target or a degenerate area gives an empty result. Falling short of
// target is not an error: the result's ActualGuestsSeated says how many
// seats were placed. Errors are reserved for unusable inputs, such as a
// chairs-only request without a chair spec.
func (p *Packer) Pack(target int, poly model.Polygon4, table model.TableSpec, chair *model.ChairSpec, obstacles []model.ObstacleRect, mode model.PackMode) (model.SeatingResult, error) {
	res := model.SeatingResult{Mode: mode}

	switch mode {
	case model.ModeTablesOnly, model.ModeAuto:
		if err := validateFootprint("table", table.Footprint); err != nil {
			return res, err
		}
		if table.ChairsPerTable < 1 {
			return res, fmt.Errorf("%w: table %q seats %d", ErrInvalidFootprint, table.Name, table.ChairsPerTable)
		}
	case model.ModeChairsOnly:
		if chair == nil {
			return res, ErrMissingChairSpec
		}
	default:
		return res, fmt.Errorf("unknown pack mode %q", mode)
	}
	if chair != nil {
		if err := validateFootprint("chair", chair.EffectiveFootprint()); err != nil {
			return res, err
		}
	}

	if target <= 0 {
		return res, nil
	}
	g, ok := newGrid(poly, obstacles)
	if !ok {
		p.logger().Debug("degenerate seating area", "area", poly)
		return res, nil
	}

	switch mode {
	case model.ModeTablesOnly:
		p.packTables(&res, target, g, table)
	case model.ModeChairsOnly:
		p.packChairs(&res, target, g, *chair)
	case model.ModeAuto:
		p.packAuto(&res, target, g, table, chair)
	}
	res.Recount(table.ChairsPerTable)
	return res, nil
}

func validateFootprint(what string, f model.UnitFootprint) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %s is %gx%g", ErrInvalidFootprint, what, f.Width, f.Height)
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"spacing", f.Spacing},
		{"column spacing", f.ColumnSpacing},
		{"row spacing", f.RowSpacing},
		{"row group spacing", f.RowGroupSpacing},
	} {
		if v.val < 0 {
			return fmt.Errorf("%w: %s %s is negative (%g)", ErrInvalidFootprint, what, v.name, v.val)
		}
	}
	if f.RowsPerGroup < 0 {
		return fmt.Errorf("%w: %s rows per group is negative (%d)", ErrInvalidFootprint, what, f.RowsPerGroup)
	}
	return nil
}

func (p *Packer) packTables(res *model.SeatingResult, target int, g grid, table model.TableSpec) {
	cols := g.columns(table.Footprint, g.bounds.MinX)
	want := ceilDiv(target, table.ChairsPerTable)
	n := fill(res, model.KindTable, cols, want, table.Footprint.Rotation)
	p.logger().Debug("tables only", "columns", len(cols), "tables", n, "wanted", want)
}

func (p *Packer) packChairs(res *model.SeatingResult, target int, g grid, chair model.ChairSpec) {
	f := chair.EffectiveFootprint()
	cols := g.columns(f, g.bounds.MinX)
	n := fill(res, model.KindChair, cols, target, f.Rotation)
	p.logger().Debug("chairs only", "columns", len(cols), "chairs", n)
}

// mixPlan is one candidate split of the area into table columns on the
// left and chair columns on the right.
type mixPlan struct {
	tableCols int
	chairs    int
	chairCols []column
	gap       int
}

// packAuto prefers tables. When the table columns cannot seat everyone it
// walks the number of kept table columns down from the maximum and fills
// the freed space with chair columns, keeping the first plan whose gap is
// within one table's seats.
func (p *Packer) packAuto(res *model.SeatingResult, target int, g grid, table model.TableSpec, chair *model.ChairSpec) {
	tf := table.Footprint
	cpt := table.ChairsPerTable
	tableCols := g.columns(tf, g.bounds.MinX)

	if slotCount(tableCols)*cpt >= target {
		p.logger().Debug("auto: tables fit", "columns", len(tableCols))
		fill(res, model.KindTable, tableCols, ceilDiv(target, cpt), tf.Rotation)
		return
	}
	if chair == nil {
		p.logger().Debug("auto: no chair spec, tables only")
		fill(res, model.KindTable, tableCols, slotCount(tableCols), tf.Rotation)
		return
	}

	cf := chair.EffectiveFootprint()
	var best *mixPlan
	for k := len(tableCols); k >= 0; k-- {
		seats := slotCount(tableCols[:k]) * cpt
		remaining := target - seats

		var cand mixPlan
		if remaining <= 0 {
			cand = mixPlan{tableCols: k, gap: seats - target}
		} else {
			startX := g.bounds.MinX
			if k > 0 {
				startX = tableCols[k-1].x + tf.ColumnPitch()
			}
			chairCols := g.columns(cf, startX)
			need := columnsNeeded(chairCols, remaining)
			if need < 0 {
				continue
			}
			cand = mixPlan{tableCols: k, chairs: remaining, chairCols: chairCols[:need]}
		}

		if best == nil || cand.gap < best.gap {
			c := cand
			best = &c
		}
		if best.gap <= cpt {
			break
		}
	}

	if best == nil {
		p.logger().Debug("auto: no table/chair split fits, all chairs")
		fill(res, model.KindChair, g.columns(cf, g.bounds.MinX), target, cf.Rotation)
		return
	}

	p.logger().Debug("auto: mixed", "table_columns", best.tableCols, "chair_columns", len(best.chairCols), "chairs", best.chairs)
	kept := tableCols[:best.tableCols]
	fill(res, model.KindTable, kept, min(slotCount(kept), ceilDiv(target, cpt)), tf.Rotation)
	fill(res, model.KindChair, best.chairCols, best.chairs, cf.Rotation)
}

// column is one packing column: its left X and the free top-left slots in
// it from top to bottom.
type column struct {
	x     float64
	slots []model.Point2D
	rows  []int
}

func slotCount(cols []column) int {
	n := 0
	for _, c := range cols {
		n += len(c.slots)
	}
	return n
}

// columnsNeeded returns how many leading columns hold at least want slots,
// or -1 if all of them together do not.
func columnsNeeded(cols []column, want int) int {
	have := 0
	for i, c := range cols {
		have += len(c.slots)
		if have >= want {
			return i + 1
		}
	}
	return -1
}

// grid is a seating area prepared for column packing.
type grid struct {
	bounds    model.BBox
	poly      model.Polygon4
	clip      bool
	obstacles []model.ObstacleRect
}

func newGrid(poly model.Polygon4, obstacles []model.ObstacleRect) (grid, bool) {
	b := area.PolygonBounds(poly)
	if b.Width() <= 0 || b.Height() <= 0 {
		return grid{}, false
	}
	return grid{
		bounds:    b,
		poly:      poly,
		clip:      !poly.IsAxisAligned(eps),
		obstacles: obstacles,
	}, true
}

// rowOffsets lists the top Y of every row a column of f can hold.
func (g grid) rowOffsets(f model.UnitFootprint) []float64 {
	var ys []float64
	for r := 0; ; r++ {
		y := g.bounds.MinY + float64(r)*f.RowPitch()
		if f.RowsPerGroup > 0 {
			y += float64(r/f.RowsPerGroup) * f.RowGroupSpacing
		}
		if y+f.Height > g.bounds.MaxY+eps {
			return ys
		}
		ys = append(ys, y)
	}
}

// clearX returns the first X at or after x where a column of width w does
// not cross any obstacle within the area's vertical range. Each blocked
// attempt jumps past the rightmost blocking obstacle plus gap.
func (g grid) clearX(x, w, gap float64) float64 {
	for {
		col := model.BBox{MinX: x, MaxX: x + w, MinY: g.bounds.MinY, MaxY: g.bounds.MaxY, Valid: true}
		right := math.Inf(-1)
		for _, o := range g.obstacles {
			ob := area.ObstacleBounds(o)
			if ob.Intersects(col) && ob.MaxX > right {
				right = ob.MaxX
			}
		}
		if math.IsInf(right, -1) {
			return x
		}
		x = right + gap
	}
}

// columns lays out every column of f that fits from startX to the right
// edge of the area.
func (g grid) columns(f model.UnitFootprint, startX float64) []column {
	ys := g.rowOffsets(f)
	if len(ys) == 0 {
		return nil
	}
	var cols []column
	x := startX
	for {
		x = g.clearX(x, f.Width, f.ColumnGap())
		if x+f.Width > g.bounds.MaxX+eps {
			return cols
		}
		c := column{x: x}
		for r, y := range ys {
			if g.fits(x, y, f) {
				c.slots = append(c.slots, model.Point2D{X: x, Y: y})
				c.rows = append(c.rows, r)
			}
		}
		cols = append(cols, c)
		x += f.ColumnPitch()
	}
}

// fits re-checks a single slot against the obstacles and, for slanted
// areas, against the polygon itself.
func (g grid) fits(x, y float64, f model.UnitFootprint) bool {
	center := model.Point2D{X: x + f.Width/2, Y: y + f.Height/2}
	if area.OverlapsAny(center, f.Width, f.Height, g.obstacles) {
		return false
	}
	if g.clip {
		box := model.BBox{MinX: x, MaxX: x + f.Width, MinY: y, MaxY: y + f.Height, Valid: true}
		return area.RectInPolygon(box, g.poly)
	}
	return true
}

// fill places up to want units from cols in column-major order and records
// the non-empty columns. It returns the number placed.
func fill(res *model.SeatingResult, kind model.UnitKind, cols []column, want int, rotation float64) int {
	placed := 0
	for ci, c := range cols {
		if placed >= want {
			break
		}
		n := 0
		for i, s := range c.slots {
			if placed >= want {
				break
			}
			if kind == model.KindTable {
				u := model.NewPlacedUnit(kind, s.X, s.Y, rotation, len(res.Tables))
				u.Column, u.Row = ci, c.rows[i]
				res.Tables = append(res.Tables, u)
			} else {
				u := model.NewPlacedUnit(kind, s.X, s.Y, rotation, len(res.Chairs))
				u.Column, u.Row = ci, c.rows[i]
				res.Chairs = append(res.Chairs, u)
			}
			placed++
			n++
		}
		if n > 0 {
			res.Columns = append(res.Columns, model.Column{Kind: kind, X: c.x, Count: n})
		}
	}
	return placed
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
