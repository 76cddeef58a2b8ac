package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SeatPlan/internal/area"
	"github.com/piwi3910/SeatPlan/internal/engine"
	"github.com/piwi3910/SeatPlan/internal/model"
	"github.com/piwi3910/SeatPlan/internal/project"
)

type nudgeOpts struct {
	venue      string
	floorPlan  string
	stage      string
	x, y, w, h float64
}

func newNudgeCmd() *cobra.Command {
	var opts nudgeOpts

	cmd := &cobra.Command{
		Use:   "nudge",
		Short: "Move a unit centred at --x,--y clear of the floor plan's doors",
		Long: `Report the nearest position at which a --w by --h unit centred at --x,--y
overlaps none of the floor plan's doors. With --stage the stage footprint
counts as an obstacle too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNudge(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.venue, "venue", "", "venue JSON file (required)")
	cmd.Flags().StringVar(&opts.floorPlan, "floor-plan", "", "floor plan name (default: the first)")
	cmd.Flags().StringVar(&opts.stage, "stage", "", "treat this stage as an obstacle")
	cmd.Flags().Float64Var(&opts.x, "x", 0, "unit centre x")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "unit centre y")
	cmd.Flags().Float64Var(&opts.w, "w", 0, "unit width")
	cmd.Flags().Float64Var(&opts.h, "h", 0, "unit height")
	_ = cmd.MarkFlagRequired("venue")

	return cmd
}

func runNudge(cmd *cobra.Command, opts nudgeOpts) error {
	if opts.w <= 0 || opts.h <= 0 {
		return fmt.Errorf("unit size must be positive, got %gx%g", opts.w, opts.h)
	}

	venue, err := project.LoadVenue(opts.venue)
	if err != nil {
		return err
	}
	fp := venue.FindFloorPlan(opts.floorPlan)
	if fp == nil {
		return fmt.Errorf("floor plan %q not found in venue %q", opts.floorPlan, venue.Name)
	}

	_, obstacles, err := engine.PrepareAreas(fp, "", model.DefaultSettings())
	if err != nil {
		return err
	}
	if opts.stage != "" {
		st := fp.FindStage(opts.stage)
		if st == nil {
			return fmt.Errorf("stage %q not found in floor plan %q", opts.stage, fp.Name)
		}
		obstacles = append(obstacles, area.StageObstacle(*st, 0))
	}

	from := model.Point2D{X: opts.x, Y: opts.y}
	to, ok := area.NearestValidPosition(from, obstacles, opts.w, opts.h)
	out := cmd.OutOrStdout()
	switch {
	case !ok:
		return fmt.Errorf("no clear position next to %.2f,%.2f", from.X, from.Y)
	case to == from:
		fmt.Fprintf(out, "%.2f,%.2f is already clear\n", from.X, from.Y)
	default:
		fmt.Fprintf(out, "%.2f,%.2f -> %.2f,%.2f (moved %.2f)\n", from.X, from.Y, to.X, to.Y, from.Dist(to))
	}
	return nil
}
