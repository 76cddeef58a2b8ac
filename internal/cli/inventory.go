package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/SeatPlan/internal/importer"
	"github.com/piwi3910/SeatPlan/internal/model"
	"github.com/piwi3910/SeatPlan/internal/project"
)

func newInventoryCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage table and chair presets",
	}
	cmd.PersistentFlags().StringVar(&path, "file", "", "inventory file (default ~/.seatplan/inventory.json)")

	load := func() (model.Inventory, string, error) {
		if path == "" {
			return project.LoadOrCreateInventory()
		}
		inv, err := project.LoadInventory(path)
		return inv, path, err
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, _, err := load()
			if err != nil {
				return err
			}
			g := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
			var rows [][]string
			for _, t := range inv.Tables {
				rows = append(rows, []string{"table", t.ID, t.Name, g(t.Width), g(t.Height), g(t.Spacing), strconv.Itoa(t.ChairsPerTable)})
			}
			for _, c := range inv.Chairs {
				rows = append(rows, []string{"chair", c.ID, c.Name, g(c.Width), g(c.Height), g(c.Spacing), strconv.Itoa(c.ChairsPerRow)})
			}
			return printTable(cmd.OutOrStdout(), []string{"Kind", "ID", "Name", "Width", "Height", "Spacing", "Seats/row"}, rows)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.csv|file.xlsx|file.json>",
		Short: "Add presets from a spreadsheet or another inventory file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			inv, dst, err := load()
			if err != nil {
				return err
			}

			before := len(inv.Tables) + len(inv.Chairs)
			if isJSON(args[0]) {
				if inv, err = project.ImportInventory(args[0], inv); err != nil {
					return err
				}
			} else {
				res := importer.ImportFile(args[0])
				for _, w := range res.Warnings {
					logger.Warn(w)
				}
				for _, e := range res.Errors {
					logger.Error(e)
				}
				if res.Count() == 0 && len(res.Errors) > 0 {
					return fmt.Errorf("nothing imported from %s", args[0])
				}
				res.MergeInto(&inv)
			}

			if err := project.SaveInventory(dst, inv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d preset(s) to %s\n", len(inv.Tables)+len(inv.Chairs)-before, dst)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file.json>",
		Short: "Write the inventory to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, _, err := load()
			if err != nil {
				return err
			}
			return project.SaveInventory(args[0], inv)
		},
	})

	var appConfig string
	backup := &cobra.Command{
		Use:   "backup <file.json>",
		Short: "Back up the inventory together with the saved layout defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, _, err := load()
			if err != nil {
				return err
			}
			appCfg, err := project.LoadAppConfig(appConfig)
			if err != nil {
				return err
			}
			return project.ExportAllData(args[0], appCfg, inv)
		},
	}
	restore := &cobra.Command{
		Use:   "restore <file.json>",
		Short: "Restore the inventory and layout defaults from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			_, dst, err := load()
			if err != nil {
				return err
			}
			if err := project.SaveInventory(dst, data.Inventory); err != nil {
				return err
			}
			if err := project.SaveAppConfig(appConfig, data.Config); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("Restored backup", "created", data.CreatedAt, "version", data.Version)
			return nil
		},
	}
	for _, c := range []*cobra.Command{backup, restore} {
		c.Flags().StringVar(&appConfig, "app-config", project.DefaultConfigPath(), "saved layout defaults")
		cmd.AddCommand(c)
	}

	return cmd
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
