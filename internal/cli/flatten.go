package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/SeatPlan/internal/flatten"
)

type flattenOpts struct {
	output         string // JSON output file, single drawing only
	ignorePosition bool
	maxTexts       int
}

func newFlattenCmd() *cobra.Command {
	var opts flattenOpts

	cmd := &cobra.Command{
		Use:   "flatten <drawing>...",
		Short: "Flatten drawings into line and curve primitives",
		Long: `Fetch each drawing (a path, http(s):// URL or s3://bucket/key), expand its
blocks and print a summary. With --output the flattened result of a single
drawing is written as JSON.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && len(args) > 1 {
				return fmt.Errorf("--output takes a single drawing, got %d", len(args))
			}
			return runFlatten(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the flattened drawing as JSON")
	cmd.Flags().BoolVar(&opts.ignorePosition, "ignore-position", false, "keep natural coordinates instead of centring")
	cmd.Flags().IntVar(&opts.maxTexts, "max-texts", 0, "texts to keep (0 uses the configured cap, negative keeps all)")

	return cmd
}

func runFlatten(cmd *cobra.Command, ids []string, opts flattenOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	geo, err := newGeometry(ctx, configFromContext(ctx), func(o *flatten.Options) {
		o.IgnorePosition = opts.ignorePosition
		if opts.maxTexts != 0 {
			o.MaxTexts = opts.maxTexts
		}
	})
	if err != nil {
		return err
	}
	defer geo.push(ctx)

	results, err := loadAll(ctx, geo, ids)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, res := range results {
		s := res.Stats
		fmt.Fprintf(out, "%s: %d primitives (%d lines, %d curves), %d texts, %d placeholders, units %s\n",
			ids[i], len(res.Primitives), s.Lines, s.Curves, s.Texts, s.Placeholders, res.Units)
		if s.DroppedTexts > 0 {
			fmt.Fprintf(out, "  %d texts dropped over the cap\n", s.DroppedTexts)
		}
		if b := res.NaturalBounds; b.Valid {
			fmt.Fprintf(out, "  bounds %.2f,%.2f .. %.2f,%.2f\n", b.MinX, b.MinY, b.MaxX, b.MaxY)
		}
		for _, w := range res.Warnings {
			logger.Warn(w, "drawing", ids[i])
		}
	}

	if opts.output != "" {
		data, err := json.MarshalIndent(results[0], "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", ids[0], err)
		}
		if err := os.WriteFile(opts.output, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
		logger.Info("Wrote flattened drawing", "path", opts.output)
	}

	prog.done(fmt.Sprintf("Flattened %d drawing(s)", len(ids)))
	return nil
}

// loadAll loads the drawings concurrently. Repeated ids share one load.
func loadAll(ctx context.Context, geo *geometry, ids []string) ([]*flatten.Result, error) {
	results := make([]*flatten.Result, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			res, err := geo.cache.Load(gctx, id)
			if err != nil {
				return fmt.Errorf("load %s: %w", id, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
