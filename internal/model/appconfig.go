package model

// LayoutSettings holds the packing parameters for one layout run.
type LayoutSettings struct {
	Mode               PackMode  `json:"mode"`
	Table              TableSpec `json:"table"`
	Chair              ChairSpec `json:"chair"`
	StageClearanceFeet float64   `json:"stage_clearance_feet"` // gap between stage edge and seating
	DoorClearance      float64   `json:"door_clearance"`       // applied to doors that carry none
}

// DefaultSettings returns banquet defaults in centimeters: 180cm round
// tables of 8 with 150cm between them, and 45cm chairs with 45cm rows.
func DefaultSettings() LayoutSettings {
	return LayoutSettings{
		Mode: ModeAuto,
		Table: TableSpec{
			Name:           "Round 180",
			Footprint:      UnitFootprint{Width: 180, Height: 180, Spacing: 150},
			ChairsPerTable: 8,
		},
		Chair: ChairSpec{
			Name:         "Banquet chair",
			Footprint:    UnitFootprint{Width: 45, Height: 45, Spacing: 45},
			ChairsPerRow: 10,
			AisleSpacing: 120,
		},
		StageClearanceFeet: 6,
		DoorClearance:      100,
	}
}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default layout settings applied to new events
	DefaultMode               PackMode `json:"default_mode"`
	DefaultTableWidth         float64  `json:"default_table_width"`
	DefaultTableHeight        float64  `json:"default_table_height"`
	DefaultTableSpacing       float64  `json:"default_table_spacing"`
	DefaultChairsPerTable     int      `json:"default_chairs_per_table"`
	DefaultChairWidth         float64  `json:"default_chair_width"`
	DefaultChairHeight        float64  `json:"default_chair_height"`
	DefaultChairSpacing       float64  `json:"default_chair_spacing"`
	DefaultChairsPerRow       int      `json:"default_chairs_per_row"`
	DefaultAisleSpacing       float64  `json:"default_aisle_spacing"`
	DefaultStageClearanceFeet float64  `json:"default_stage_clearance_feet"`
	DefaultDoorClearance      float64  `json:"default_door_clearance"`

	// Application preferences
	RecentVenues []string `json:"recent_venues"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultMode:               defaults.Mode,
		DefaultTableWidth:         defaults.Table.Footprint.Width,
		DefaultTableHeight:        defaults.Table.Footprint.Height,
		DefaultTableSpacing:       defaults.Table.Footprint.Spacing,
		DefaultChairsPerTable:     defaults.Table.ChairsPerTable,
		DefaultChairWidth:         defaults.Chair.Footprint.Width,
		DefaultChairHeight:        defaults.Chair.Footprint.Height,
		DefaultChairSpacing:       defaults.Chair.Footprint.Spacing,
		DefaultChairsPerRow:       defaults.Chair.ChairsPerRow,
		DefaultAisleSpacing:       defaults.Chair.AisleSpacing,
		DefaultStageClearanceFeet: defaults.StageClearanceFeet,
		DefaultDoorClearance:      defaults.DoorClearance,
		RecentVenues:              []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a LayoutSettings struct.
// This is used when creating a new event so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *LayoutSettings) {
	s.Mode = c.DefaultMode
	s.Table.Footprint.Width = c.DefaultTableWidth
	s.Table.Footprint.Height = c.DefaultTableHeight
	s.Table.Footprint.Spacing = c.DefaultTableSpacing
	s.Table.ChairsPerTable = c.DefaultChairsPerTable
	s.Chair.Footprint.Width = c.DefaultChairWidth
	s.Chair.Footprint.Height = c.DefaultChairHeight
	s.Chair.Footprint.Spacing = c.DefaultChairSpacing
	s.Chair.ChairsPerRow = c.DefaultChairsPerRow
	s.Chair.AisleSpacing = c.DefaultAisleSpacing
	s.StageClearanceFeet = c.DefaultStageClearanceFeet
	s.DoorClearance = c.DefaultDoorClearance
}

// AddRecentVenue moves path to the front of the recent list, keeping at most limit entries.
func (c *AppConfig) AddRecentVenue(path string, limit int) {
	out := []string{path}
	for _, p := range c.RecentVenues {
		if p != path {
			out = append(out, p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	c.RecentVenues = out
}
