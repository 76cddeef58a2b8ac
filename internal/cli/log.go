// Package cli implements the seatplan command-line interface.
//
// The commands flatten venue drawings, pack tables and chairs into a floor
// plan's table areas, compare pack modes, nudge a unit clear of doors and
// manage the furniture inventory. Runtime settings come from
// internal/config; the logger and the loaded config travel through the
// command's context.Context.
//
// # Commands
//
//   - flatten: fetch and flatten one or more drawings, optionally to JSON
//   - pack: seat an event on a floor plan and export PDF, cards or XLSX
//   - compare: pack one table area in every mode and report the best
//   - nudge: move a unit clear of the floor plan's doors
//   - units: list drawing units and convert a clearance in feet
//   - inventory: list, import, export and back up furniture presets
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/SeatPlan/internal/config"
)

// newLogger creates a logger writing to w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Packed 3 areas (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the attached logger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func withConfig(ctx context.Context, c *config.Config) context.Context {
	return context.WithValue(ctx, configKey, c)
}

// configFromContext returns the attached config, or config.Default().
func configFromContext(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey).(*config.Config); ok {
		return c
	}
	return config.Default()
}
