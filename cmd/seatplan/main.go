// SeatPlan - venue floor plan flattening and seating layout
//
// Reads venue floor plans drawn in CAD, packs tables and chair columns
// into their table areas and exports print-ready seating sheets.
//
// Build:
//   go build -o seatplan ./cmd/seatplan
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o seatplan.exe ./cmd/seatplan
//   GOOS=darwin  GOARCH=arm64 go build -o seatplan-darwin ./cmd/seatplan

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/piwi3910/SeatPlan/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
