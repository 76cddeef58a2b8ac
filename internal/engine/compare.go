package engine

import (
	"github.com/piwi3910/SeatPlan/internal/model"
)

// ModeComparison holds the packing result and derived statistics for a
// single pack mode.
type ModeComparison struct {
	Mode         model.PackMode
	Result       model.SeatingResult
	Seated       int
	Gap          int
	Shortfall    int
	Tables       int
	Chairs       int
	TableColumns int
	ChairColumns int
	Err          error
}

// AllModes lists the pack modes in comparison order.
var AllModes = []model.PackMode{model.ModeTablesOnly, model.ModeAuto, model.ModeChairsOnly}

// CompareModes packs the same input once per mode so the layouts can be
// judged side by side. A mode that cannot run, such as chairs-only without
// a chair spec, carries its error instead of a result.
func (p *Packer) CompareModes(target int, poly model.Polygon4, table model.TableSpec, chair *model.ChairSpec, obstacles []model.ObstacleRect) []ModeComparison {
	results := make([]ModeComparison, 0, len(AllModes))

	for _, mode := range AllModes {
		res, err := p.Pack(target, poly, table, chair, obstacles, mode)
		if err != nil {
			results = append(results, ModeComparison{Mode: mode, Err: err, Gap: target, Shortfall: target})
			continue
		}
		results = append(results, ModeComparison{
			Mode:         mode,
			Result:       res,
			Seated:       res.ActualGuestsSeated,
			Gap:          res.Gap(target),
			Shortfall:    res.Shortfall(target),
			Tables:       len(res.Tables),
			Chairs:       len(res.Chairs),
			TableColumns: res.ColumnCount(model.KindTable),
			ChairColumns: res.ColumnCount(model.KindChair),
		})
	}

	return results
}

// Best returns the error-free comparison with the smallest shortfall, then
// the smallest gap. Ties go to the earlier mode.
func Best(comparisons []ModeComparison) (ModeComparison, bool) {
	var best ModeComparison
	found := false
	for _, c := range comparisons {
		if c.Err != nil {
			continue
		}
		if !found || c.Shortfall < best.Shortfall || (c.Shortfall == best.Shortfall && c.Gap < best.Gap) {
			best = c
			found = true
		}
	}
	return best, found
}
