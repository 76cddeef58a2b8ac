package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SeatPlan/internal/engine"
	"github.com/piwi3910/SeatPlan/internal/export"
)

type packOpts struct {
	eventFlags
	pdf   string
	cards string
	xlsx  string
	json  string
}

func newPackCmd() *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Seat an event on a venue floor plan",
		Long: `Pack tables and chairs for an event into the floor plan's table areas,
starting after the stage and keeping clear of doors. Areas are filled in
order until every guest has a seat. A shortfall is reported, not treated as
a failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd, &opts)
		},
	}

	opts.eventFlags.register(cmd)
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write a floor-plan PDF")
	cmd.Flags().StringVar(&opts.cards, "cards", "", "write a table-card label PDF")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write a seating chart workbook")
	cmd.Flags().StringVar(&opts.json, "json", "", "write the layout as JSON")

	return cmd
}

func runPack(cmd *cobra.Command, opts *packOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	in, err := opts.load(logger)
	if err != nil {
		return err
	}
	ev, fp := in.event, in.floorPlan

	plan, err := engine.New(logger).PlanEvent(fp, ev, in.settings)
	if err != nil {
		return err
	}
	res := plan.Result

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s on %s: seated %d of %d guests with %d tables and %d chairs (%s)\n",
		ev.Name, fp.Name, res.ActualGuestsSeated, ev.Guests, len(res.Tables), len(res.Chairs), ev.Mode)
	if short := plan.Shortfall(); short > 0 {
		logger.Warn("capacity exceeded", "unseated", short)
	}

	if opts.json != "" {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		if err := os.WriteFile(opts.json, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", opts.json, err)
		}
		logger.Info("Wrote layout", "path", opts.json)
	}

	if opts.pdf != "" {
		sheet := export.FloorPlanSheet{
			Title:  fp.Name,
			Areas:  plan.Areas,
			Doors:  plan.Obstacles,
			Stages: fp.Stages,
			Result: res,
			Table:  ev.Table,
			Chair:  ev.Chair,
			Target: ev.Guests,
			Units:  fp.Units,
		}
		if fp.Drawing != "" {
			geo, err := newGeometry(ctx, configFromContext(ctx))
			if err != nil {
				return err
			}
			sheet.Drawing = geo.cache.LoadOrEmpty(ctx, fp.Drawing)
			geo.push(ctx)
		}
		if err := export.ExportFloorPlanPDF(opts.pdf, []export.FloorPlanSheet{sheet}); err != nil {
			return fmt.Errorf("export floor plan: %w", err)
		}
		logger.Info("Wrote floor plan", "path", opts.pdf)
	}

	if opts.cards != "" {
		if err := export.ExportTableCards(opts.cards, ev.Name, res, ev.Table); err != nil {
			return fmt.Errorf("export table cards: %w", err)
		}
		logger.Info("Wrote table cards", "path", opts.cards)
	}

	if opts.xlsx != "" {
		if err := export.ExportSeatingChart(opts.xlsx, ev.Name, res, ev.Table, ev.Guests); err != nil {
			return fmt.Errorf("export seating chart: %w", err)
		}
		logger.Info("Wrote seating chart", "path", opts.xlsx)
	}

	prog.done(fmt.Sprintf("Packed %d area(s)", len(plan.Areas)))
	return nil
}
