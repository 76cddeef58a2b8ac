package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// VenueExtension is the file extension for saved venues.
const VenueExtension = ".venue.json"

// ErrInvalidVenue is returned when a venue file decodes but cannot be used.
var ErrInvalidVenue = errors.New("invalid venue")

// SaveVenue writes a venue to path as JSON.
func SaveVenue(path string, v model.Venue) error {
	if err := writeJSON(path, v); err != nil {
		return fmt.Errorf("save venue %s: %w", path, err)
	}
	return nil
}

// LoadVenue reads and checks a venue file. Every floor plan needs at least
// one table area, and stage names must be unique within a plan.
func LoadVenue(path string) (model.Venue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Venue{}, err
	}
	var v model.Venue
	if err := json.Unmarshal(data, &v); err != nil {
		return model.Venue{}, fmt.Errorf("parse venue %s: %w", path, err)
	}
	if err := validateVenue(v); err != nil {
		return model.Venue{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func validateVenue(v model.Venue) error {
	if len(v.FloorPlans) == 0 {
		return fmt.Errorf("%w: no floor plans", ErrInvalidVenue)
	}
	for _, fp := range v.FloorPlans {
		if len(fp.TableAreas) == 0 {
			return fmt.Errorf("%w: floor plan %q has no table area", ErrInvalidVenue, fp.Name)
		}
		seen := map[string]bool{}
		for _, s := range fp.Stages {
			if seen[s.Name] {
				return fmt.Errorf("%w: floor plan %q has two stages named %q", ErrInvalidVenue, fp.Name, s.Name)
			}
			seen[s.Name] = true
		}
	}
	return nil
}

// SaveEvent writes a seating request to path as JSON.
func SaveEvent(path string, ev model.Event) error {
	return writeJSON(path, ev)
}

// LoadEvent reads a seating request. Guests must be positive.
func LoadEvent(path string) (model.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Event{}, err
	}
	var ev model.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return model.Event{}, fmt.Errorf("parse event %s: %w", path, err)
	}
	if ev.Guests <= 0 {
		return model.Event{}, fmt.Errorf("event %s: guests must be positive, got %d", path, ev.Guests)
	}
	if ev.Mode == "" {
		ev.Mode = model.ModeAuto
	}
	return ev, nil
}
