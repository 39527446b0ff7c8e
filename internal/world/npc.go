package world

import "github.com/soitun/survivalcore/internal/data"

// HostileState is the coarse behavior state of a hostile NPC.
type HostileState int

const (
	HostileIdle HostileState = iota
	HostileChasing
	HostileAttacking
	HostileFleeing
)

// Hostile is the WildAnimal row of spec §3: created during Dusk/Night by
// spawn pressure, deleted at dawn by staggered cleanup. DespawnAt set means
// a cleanup schedule has already claimed this hostile for removal.
type Hostile struct {
	ID      HostileID
	Species data.Species

	PosX, PosY float64
	Facing     float64 // radians

	State          HostileState
	StateChangedAt int64 // unix seconds

	Health    float64
	MaxHealth float64

	SpawnOriginX, SpawnOriginY float64

	TargetPlayer PlayerID // 0 = no target
	LastAttackAt int64

	Hostile bool // true once it has aggroed and should not be treated as idle wildlife

	DespawnAt int64 // unix seconds; 0 = not yet scheduled for removal
}

func (h *Hostile) Dead() bool { return h.Health <= 0 }
