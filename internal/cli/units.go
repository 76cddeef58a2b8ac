package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SeatPlan/internal/model"
)

func newUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units [feet]",
		Short: "List drawing units, converting a distance in feet into each",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feet := 1.0
			if len(args) == 1 {
				f, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid distance %q: %w", args[0], err)
				}
				feet = f
			}

			rows := make([][]string, 0, len(model.DefinedUnits))
			for _, u := range model.DefinedUnits {
				rows = append(rows, []string{
					strconv.Itoa(int(u)),
					u.String(),
					strconv.FormatFloat(u.MetersPerUnit(), 'g', -1, 64),
					fmt.Sprintf("%.4f", model.FeetToNativeUnits(feet, u)),
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"Code", "Unit", "Meters/unit", fmt.Sprintf("%g ft", feet)}, rows)
		},
	}
}
