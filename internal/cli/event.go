package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/SeatPlan/internal/model"
	"github.com/piwi3910/SeatPlan/internal/project"
)

// recentVenueLimit caps the recent venue list in the app config.
const recentVenueLimit = 10

// eventFlags are the inputs shared by pack and compare.
type eventFlags struct {
	venue     string
	event     string
	floorPlan string
	stage     string
	guests    int
	mode      string
	appConfig string
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.venue, "venue", "", "venue JSON file (required)")
	cmd.Flags().StringVar(&f.event, "event", "", "event JSON file")
	cmd.Flags().StringVar(&f.floorPlan, "floor-plan", "", "floor plan name (default: the event's, else the first)")
	cmd.Flags().StringVar(&f.stage, "stage", "", "stage name, overrides the event's")
	cmd.Flags().IntVar(&f.guests, "guests", 0, "guest count, overrides the event's")
	cmd.Flags().StringVar(&f.mode, "mode", "", "pack mode: tables-only, chairs-only or auto")
	cmd.Flags().StringVar(&f.appConfig, "app-config", project.DefaultConfigPath(), "saved layout defaults")
	_ = cmd.MarkFlagRequired("venue")
}

// eventInput is a resolved seating request.
type eventInput struct {
	venue     model.Venue
	floorPlan *model.FloorPlan
	event     model.Event
	settings  model.LayoutSettings
}

// load reads the venue, event and saved defaults, then applies flag
// overrides. Tables and chairs missing from the event come from the
// defaults.
func (f *eventFlags) load(logger *log.Logger) (*eventInput, error) {
	appCfg, err := project.LoadAppConfig(f.appConfig)
	if err != nil {
		return nil, fmt.Errorf("load app config: %w", err)
	}
	settings := model.DefaultSettings()
	appCfg.ApplyToSettings(&settings)

	venue, err := project.LoadVenue(f.venue)
	if err != nil {
		return nil, err
	}

	ev := model.Event{Mode: settings.Mode}
	if f.event != "" {
		if ev, err = project.LoadEvent(f.event); err != nil {
			return nil, err
		}
	}
	if f.floorPlan != "" {
		ev.FloorPlan = f.floorPlan
	}
	if f.stage != "" {
		ev.Stage = f.stage
	}
	if f.guests > 0 {
		ev.Guests = f.guests
	}
	if f.mode != "" {
		if ev.Mode, err = model.ParsePackMode(f.mode); err != nil {
			return nil, err
		}
	}
	if ev.Guests <= 0 {
		return nil, fmt.Errorf("no guest count: pass --guests or an --event file")
	}
	if ev.Table.ChairsPerTable == 0 {
		ev.Table = settings.Table
	}
	if ev.Chair == nil {
		chair := settings.Chair
		ev.Chair = &chair
	}

	fp := venue.FindFloorPlan(ev.FloorPlan)
	if fp == nil {
		return nil, fmt.Errorf("floor plan %q not found in venue %q", ev.FloorPlan, venue.Name)
	}

	appCfg.AddRecentVenue(f.venue, recentVenueLimit)
	if err := project.SaveAppConfig(f.appConfig, appCfg); err != nil {
		logger.Warn("could not update recent venues", "path", f.appConfig, "err", err)
	}

	logger.Debug("event resolved", "venue", venue.Name, "floor_plan", fp.Name, "stage", ev.Stage,
		"guests", ev.Guests, "mode", ev.Mode)
	return &eventInput{venue: venue, floorPlan: fp, event: ev, settings: settings}, nil
}
