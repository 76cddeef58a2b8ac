package cli

import (
	"context"
	"errors"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/SeatPlan/internal/config"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the seatplan CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd builds the command tree. The persistent pre-run loads the
// runtime config and attaches it, with a logger, to the command context.
func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "seatplan",
		Short:        "SeatPlan lays out tables and chairs on venue floor plans",
		Long:         `SeatPlan flattens CAD venue drawings and packs tables and chairs into a floor plan's seating areas around stages and doors.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, errs := config.Load(configPath)
			if len(errs) > 0 {
				return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
			}

			level, err := charmlog.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = charmlog.InfoLevel
			}
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			logger.Debug("configuration loaded", "settings", cfg.LogSummary())

			ctx := withLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("seatplan %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (SEATPLAN_* env vars override it)")

	root.AddCommand(newFlattenCmd())
	root.AddCommand(newPackCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newNudgeCmd())
	root.AddCommand(newUnitsCmd())
	root.AddCommand(newInventoryCmd())

	return root
}
