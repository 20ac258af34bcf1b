package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cafestock/cafestock-backend/internal/inventory/domain"
)

// Snapshot is an exported copy of the in-memory collections
type Snapshot struct {
	Items     []domain.InventoryItem `json:"items" yaml:"items"`
	Movements []domain.StockMovement `json:"movements" yaml:"movements"`
	Alerts    []domain.StockAlert    `json:"alerts" yaml:"alerts"`
}

// LoadSnapshot reads a snapshot file; .yaml and .yml are YAML, anything else JSON
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &snap)
	default:
		err = json.Unmarshal(data, &snap)
	}
	if err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", filepath.Base(path), err)
	}

	return &snap, nil
}
