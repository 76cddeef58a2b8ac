package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// DefaultInventoryPath returns the default file path for the furniture
// inventory, ~/.seatplan/inventory.json.
func DefaultInventoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".seatplan", "inventory.json"), nil
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory from the default path.
// If the file does not exist, it creates one with default entries.
func LoadOrCreateInventory() (model.Inventory, string, error) {
	path, err := DefaultInventoryPath()
	if err != nil {
		return model.DefaultInventory(), "", err
	}
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ImportInventory merges the inventory stored at path into existing.
// Presets whose ID is already present are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	tableIDs := make(map[string]bool, len(existing.Tables))
	for _, t := range existing.Tables {
		tableIDs[t.ID] = true
	}
	chairIDs := make(map[string]bool, len(existing.Chairs))
	for _, c := range existing.Chairs {
		chairIDs[c.ID] = true
	}

	for _, t := range imported.Tables {
		if !tableIDs[t.ID] {
			existing.Tables = append(existing.Tables, t)
			tableIDs[t.ID] = true
		}
	}
	for _, c := range imported.Chairs {
		if !chairIDs[c.ID] {
			existing.Chairs = append(existing.Chairs, c)
			chairIDs[c.ID] = true
		}
	}

	return existing, nil
}
