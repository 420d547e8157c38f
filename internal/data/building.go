package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BuildingDef holds static data for one placeable building template, loaded
// from building_list.yaml. The footprint feeds placement validation.
type BuildingDef struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Cost   int    `yaml:"cost"`
}

type buildingListFile struct {
	Buildings []BuildingDef `yaml:"buildings"`
}

// BuildingTable holds all building templates indexed by ID.
type BuildingTable struct {
	defs map[string]BuildingDef
}

// LoadBuildingTable loads building templates from YAML. Templates with a
// non-positive footprint are rejected.
func LoadBuildingTable(path string) (*BuildingTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read building list %s: %w", path, err)
	}
	var file buildingListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse building list: %w", err)
	}

	table := &BuildingTable{
		defs: make(map[string]BuildingDef, len(file.Buildings)),
	}
	for _, def := range file.Buildings {
		if def.ID == "" {
			return nil, fmt.Errorf("building list %s: entry with empty id", path)
		}
		if def.Width < 1 || def.Height < 1 {
			return nil, fmt.Errorf("building %s: invalid footprint %dx%d", def.ID, def.Width, def.Height)
		}
		table.defs[def.ID] = def
	}
	return table, nil
}

// Get returns the template for a building id.
func (t *BuildingTable) Get(id string) (BuildingDef, bool) {
	def, ok := t.defs[id]
	return def, ok
}

// Count returns the number of templates loaded.
func (t *BuildingTable) Count() int {
	return len(t.defs)
}
