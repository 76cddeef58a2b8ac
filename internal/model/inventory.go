package model

import "github.com/google/uuid"

// TablePreset represents a reusable table definition.
type TablePreset struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Spacing        float64 `json:"spacing"`
	ChairsPerTable int     `json:"chairs_per_table"`
}

// NewTablePreset creates a new TablePreset with a generated ID.
func NewTablePreset(name string, width, height, spacing float64, chairs int) TablePreset {
	return TablePreset{
		ID:             uuid.New().String()[:8],
		Name:           name,
		Width:          width,
		Height:         height,
		Spacing:        spacing,
		ChairsPerTable: chairs,
	}
}

// ToTableSpec converts a TablePreset into a TableSpec.
func (tp TablePreset) ToTableSpec() TableSpec {
	return TableSpec{
		Name:           tp.Name,
		Footprint:      UnitFootprint{Width: tp.Width, Height: tp.Height, Spacing: tp.Spacing},
		ChairsPerTable: tp.ChairsPerTable,
	}
}

// ChairPreset represents a reusable chair definition.
type ChairPreset struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Spacing      float64 `json:"spacing"`
	ChairsPerRow int     `json:"chairs_per_row"`
}

// NewChairPreset creates a new ChairPreset with a generated ID.
func NewChairPreset(name string, width, height, spacing float64, perRow int) ChairPreset {
	return ChairPreset{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Width:        width,
		Height:       height,
		Spacing:      spacing,
		ChairsPerRow: perRow,
	}
}

// ToChairSpec converts a ChairPreset into a ChairSpec. The aisle after
// every ChairsPerRow chairs is the given width.
func (cp ChairPreset) ToChairSpec(aisle float64) ChairSpec {
	return ChairSpec{
		Name:         cp.Name,
		Footprint:    UnitFootprint{Width: cp.Width, Height: cp.Height, Spacing: cp.Spacing},
		ChairsPerRow: cp.ChairsPerRow,
		AisleSpacing: aisle,
	}
}

// Inventory holds the user's saved table and chair presets.
type Inventory struct {
	Tables []TablePreset `json:"tables"`
	Chairs []ChairPreset `json:"chairs"`
}

// DefaultInventory returns an inventory populated with common rental
// furniture, sizes in centimeters.
func DefaultInventory() Inventory {
	return Inventory{
		Tables: []TablePreset{
			NewTablePreset("Round 152 (5ft) of 8", 152, 152, 150, 8),
			NewTablePreset("Round 183 (6ft) of 10", 183, 183, 150, 10),
			NewTablePreset("Banquet 183x76 of 6", 183, 76, 120, 6),
			NewTablePreset("Banquet 244x76 of 8", 244, 76, 120, 8),
			NewTablePreset("Cocktail 76", 76, 76, 120, 4),
		},
		Chairs: []ChairPreset{
			NewChairPreset("Banquet chair", 45, 45, 45, 10),
			NewChairPreset("Chiavari chair", 40, 40, 45, 12),
			NewChairPreset("Folding chair", 44, 47, 40, 14),
		},
	}
}

// FindTableByID returns a pointer to the table with the given ID, or nil.
func (inv *Inventory) FindTableByID(id string) *TablePreset {
	for i := range inv.Tables {
		if inv.Tables[i].ID == id {
			return &inv.Tables[i]
		}
	}
	return nil
}

// FindChairByID returns a pointer to the chair with the given ID, or nil.
func (inv *Inventory) FindChairByID(id string) *ChairPreset {
	for i := range inv.Chairs {
		if inv.Chairs[i].ID == id {
			return &inv.Chairs[i]
		}
	}
	return nil
}

// FindTableByName returns a pointer to the first table with the given name, or nil.
func (inv *Inventory) FindTableByName(name string) *TablePreset {
	for i := range inv.Tables {
		if inv.Tables[i].Name == name {
			return &inv.Tables[i]
		}
	}
	return nil
}

// FindChairByName returns a pointer to the first chair with the given name, or nil.
func (inv *Inventory) FindChairByName(name string) *ChairPreset {
	for i := range inv.Chairs {
		if inv.Chairs[i].Name == name {
			return &inv.Chairs[i]
		}
	}
	return nil
}

// TableNames returns the table preset names in order.
func (inv *Inventory) TableNames() []string {
	names := make([]string, len(inv.Tables))
	for i, t := range inv.Tables {
		names[i] = t.Name
	}
	return names
}

// ChairNames returns the chair preset names in order.
func (inv *Inventory) ChairNames() []string {
	names := make([]string, len(inv.Chairs))
	for i, c := range inv.Chairs {
		names[i] = c.Name
	}
	return names
}
