package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TerrainDef holds the default flags for one tile type, loaded from
// terrain_list.yaml. Scenario edits that set a tile's type apply these
// defaults unless they override the flags themselves.
type TerrainDef struct {
	Type      string `yaml:"type"`
	Walkable  bool   `yaml:"walkable"`
	Buildable bool   `yaml:"buildable"`
}

type terrainListFile struct {
	Terrains []TerrainDef `yaml:"terrains"`
}

// TerrainTable holds all terrain definitions indexed by type.
type TerrainTable struct {
	defs map[string]TerrainDef
}

// LoadTerrainTable loads terrain definitions from YAML.
func LoadTerrainTable(path string) (*TerrainTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read terrain list %s: %w", path, err)
	}
	var file terrainListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse terrain list: %w", err)
	}

	table := &TerrainTable{
		defs: make(map[string]TerrainDef, len(file.Terrains)),
	}
	for _, def := range file.Terrains {
		if def.Type == "" {
			return nil, fmt.Errorf("terrain list %s: entry with empty type", path)
		}
		table.defs[def.Type] = def
	}
	return table, nil
}

// Get returns the definition for a terrain type.
func (t *TerrainTable) Get(typ string) (TerrainDef, bool) {
	def, ok := t.defs[typ]
	return def, ok
}

// Count returns the number of terrain types loaded.
func (t *TerrainTable) Count() int {
	return len(t.defs)
}
