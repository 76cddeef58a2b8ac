package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SeatPlan/internal/engine"
)

type compareOpts struct {
	eventFlags
	area int
}

func newCompareCmd() *cobra.Command {
	var opts compareOpts

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Pack one table area in every mode and pick the best",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, &opts)
		},
	}

	opts.eventFlags.register(cmd)
	cmd.Flags().IntVar(&opts.area, "area", 1, "table area to compare, 1-based")

	return cmd
}

func runCompare(cmd *cobra.Command, opts *compareOpts) error {
	logger := loggerFromContext(cmd.Context())

	in, err := opts.load(logger)
	if err != nil {
		return err
	}
	ev := in.event

	areas, obstacles, err := engine.PrepareAreas(in.floorPlan, ev.Stage, in.settings)
	if err != nil {
		return err
	}
	if opts.area < 1 || opts.area > len(areas) {
		return fmt.Errorf("--area %d out of range, floor plan %q has %d", opts.area, in.floorPlan.Name, len(areas))
	}

	results := engine.New(logger).CompareModes(ev.Guests, areas[opts.area-1], ev.Table, ev.Chair, obstacles)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			rows = append(rows, []string{string(r.Mode), "-", strconv.Itoa(r.Shortfall), "-", "-", r.Err.Error()})
			continue
		}
		rows = append(rows, []string{
			string(r.Mode),
			strconv.Itoa(r.Seated),
			strconv.Itoa(r.Shortfall),
			strconv.Itoa(r.Tables),
			strconv.Itoa(r.Chairs),
			fmt.Sprintf("%d+%d", r.TableColumns, r.ChairColumns),
		})
	}
	headers := []string{"Mode", "Seated", "Shortfall", "Tables", "Chairs", "Columns"}
	if err := printTable(cmd.OutOrStdout(), headers, rows); err != nil {
		return err
	}

	best, ok := engine.Best(results)
	if !ok {
		return fmt.Errorf("no pack mode could run for this event")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "best: %s\n", best.Mode)
	return nil
}
