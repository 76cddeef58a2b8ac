package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultTableWidth != defaults.Table.Footprint.Width {
		t.Errorf("TableWidth mismatch: config=%f settings=%f", cfg.DefaultTableWidth, defaults.Table.Footprint.Width)
	}
	if cfg.DefaultChairsPerTable != defaults.Table.ChairsPerTable {
		t.Errorf("ChairsPerTable mismatch: config=%d settings=%d", cfg.DefaultChairsPerTable, defaults.Table.ChairsPerTable)
	}
	if cfg.DefaultStageClearanceFeet != defaults.StageClearanceFeet {
		t.Errorf("StageClearance mismatch: config=%f settings=%f", cfg.DefaultStageClearanceFeet, defaults.StageClearanceFeet)
	}
	if cfg.DefaultMode != ModeAuto {
		t.Errorf("expected default mode=auto, got %s", cfg.DefaultMode)
	}
	if cfg.RecentVenues == nil {
		t.Error("RecentVenues should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultTableSpacing = 200
	cfg.DefaultChairsPerTable = 10
	cfg.DefaultMode = ModeChairsOnly

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Table.Footprint.Spacing != 200 {
		t.Errorf("expected table spacing=200, got %f", s.Table.Footprint.Spacing)
	}
	if s.Table.ChairsPerTable != 10 {
		t.Errorf("expected chairs per table=10, got %d", s.Table.ChairsPerTable)
	}
	if s.Mode != ModeChairsOnly {
		t.Errorf("expected mode=chairs-only, got %s", s.Mode)
	}
}

func TestAddRecentVenue(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentVenue("a.json", 2)
	cfg.AddRecentVenue("b.json", 2)
	cfg.AddRecentVenue("a.json", 2)
	cfg.AddRecentVenue("c.json", 2)

	if len(cfg.RecentVenues) != 2 {
		t.Fatalf("expected 2 recent venues, got %d", len(cfg.RecentVenues))
	}
	if cfg.RecentVenues[0] != "c.json" || cfg.RecentVenues[1] != "a.json" {
		t.Errorf("unexpected order: %v", cfg.RecentVenues)
	}
}
