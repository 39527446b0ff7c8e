package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Species is one of the three hostile NPC species spec §4.5 names.
type Species string

const (
	SpeciesShorebound   Species = "Shorebound"
	SpeciesShardkin     Species = "Shardkin"
	SpeciesDrownedWatch Species = "DrownedWatch"
)

// SpeciesTemplate holds the static tuning for a hostile NPC species, seeded
// once the way the teacher seeds its NpcTemplate table from YAML.
type SpeciesTemplate struct {
	Species         Species `yaml:"species"`
	Health          float64 `yaml:"health"`
	MoveSpeed       float64 `yaml:"move_speed"`
	IdleRadius      float64 `yaml:"idle_radius"`
	AttackingRadius float64 `yaml:"attacking_radius"`
	WeaponReach     float64 `yaml:"weapon_reach"`
	AttackDamage    float64 `yaml:"attack_damage"`
	Flying          bool    `yaml:"flying"`
	WaterCapable    bool    `yaml:"water_capable"`
	GroupMin        int     `yaml:"group_min"`
	GroupMax        int     `yaml:"group_max"`
	SpreadRadius    float64 `yaml:"spread_radius"`
}

type speciesFile struct {
	Species []SpeciesTemplate `yaml:"species"`
}

// SpeciesTable holds all seeded species templates indexed by name.
type SpeciesTable struct {
	defs map[Species]SpeciesTemplate
}

func NewSpeciesTable() *SpeciesTable {
	return &SpeciesTable{defs: make(map[Species]SpeciesTemplate)}
}

// LoadSpeciesTable reads species templates from a YAML fixture.
func LoadSpeciesTable(path string) (*SpeciesTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read species table: %w", err)
	}
	var f speciesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse species table: %w", err)
	}
	t := NewSpeciesTable()
	for _, d := range f.Species {
		t.defs[d.Species] = d
	}
	return t, nil
}

// Put seeds or overwrites a single species template.
func (t *SpeciesTable) Put(d SpeciesTemplate) { t.defs[d.Species] = d }

// Get returns the template for species, or false if never seeded.
func (t *SpeciesTable) Get(s Species) (SpeciesTemplate, bool) {
	d, ok := t.defs[s]
	return d, ok
}

// Count returns the number of seeded species templates.
func (t *SpeciesTable) Count() int { return len(t.defs) }

// DefaultSpeciesTable returns the three species with spec-reasonable tuning,
// used by tests and as a fallback seed.
func DefaultSpeciesTable() *SpeciesTable {
	t := NewSpeciesTable()
	t.Put(SpeciesTemplate{
		Species: SpeciesShorebound, Health: 80, MoveSpeed: 90,
		IdleRadius: 18, AttackingRadius: 10, WeaponReach: 40, AttackDamage: 12,
		GroupMin: 1, GroupMax: 1,
	})
	t.Put(SpeciesTemplate{
		Species: SpeciesShardkin, Health: 35, MoveSpeed: 110,
		IdleRadius: 14, AttackingRadius: 8, WeaponReach: 30, AttackDamage: 6,
		GroupMin: 2, GroupMax: 4, SpreadRadius: 80,
	})
	t.Put(SpeciesTemplate{
		Species: SpeciesDrownedWatch, Health: 220, MoveSpeed: 70,
		IdleRadius: 24, AttackingRadius: 14, WeaponReach: 50, AttackDamage: 28,
		GroupMin: 1, GroupMax: 1, WaterCapable: true,
	})
	return t
}
