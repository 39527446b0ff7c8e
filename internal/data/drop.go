package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YieldItem is one possible item a resource node pays out on the harvest
// swing that depletes it (handler.HarvestNode). No container-destruction
// path reads yield lists.
type YieldItem struct {
	ItemDefID int32 `yaml:"item_def_id"`
	Min       int32 `yaml:"min"`
	Max       int32 `yaml:"max"`
	Chance    int   `yaml:"chance"` // out of 1,000,000 (100% = 1000000)
}

type yieldEntry struct {
	SourceID int32       `yaml:"source_id"`
	Items    []YieldItem `yaml:"items"`
}

type yieldListFile struct {
	Yields []yieldEntry `yaml:"yields"`
}

// YieldTable holds all seeded resource/destruction yield lists, indexed by
// a source id (container item def, or resource node species id).
type YieldTable struct {
	yields map[int32][]YieldItem
}

func NewYieldTable() *YieldTable {
	return &YieldTable{yields: make(map[int32][]YieldItem)}
}

// LoadYieldTable reads yield lists from a YAML fixture.
func LoadYieldTable(path string) (*YieldTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yield table: %w", err)
	}
	var f yieldListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse yield table: %w", err)
	}
	t := NewYieldTable()
	for _, e := range f.Yields {
		t.yields[e.SourceID] = e.Items
	}
	return t, nil
}

// Put seeds or overwrites the yield list for a source id.
func (t *YieldTable) Put(sourceID int32, items []YieldItem) {
	t.yields[sourceID] = items
}

// Get returns the yield list for a source, or nil if none defined.
func (t *YieldTable) Get(sourceID int32) []YieldItem {
	return t.yields[sourceID]
}

// Count returns the number of sources with yield entries.
func (t *YieldTable) Count() int { return len(t.yields) }
