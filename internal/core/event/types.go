package event

// PlayerRegistered fires when register_player creates a brand new identity
// row (spec §6: "If identity is new, a player row is created").
type PlayerRegistered struct {
	PlayerID uint64
	Username string
}

// PlayerConnected/PlayerDisconnected track the ActiveConnection lifecycle.
type PlayerConnected struct {
	PlayerID     uint64
	ConnectionID uint64
}

type PlayerDisconnected struct {
	PlayerID     uint64
	ConnectionID uint64
}

// EffectKind names a stat-modifier effect the client renders a cue for.
type EffectKind string

const (
	EffectCozy       EffectKind = "Cozy"
	EffectExhausted  EffectKind = "Exhausted"
	EffectTreeCover  EffectKind = "TreeCover"
	EffectHotSpring  EffectKind = "HotSpring"
	EffectFumarole   EffectKind = "Fumarole"
	EffectSafeZone   EffectKind = "SafeZone"
	EffectEntrainment EffectKind = "Entrainment"
)

// EffectEntered/EffectExited fire on the edges of a player entering or
// leaving a stat-modifier effect, for client-side cues (spec §4.4).
type EffectEntered struct {
	PlayerID uint64
	Effect   EffectKind
}

type EffectExited struct {
	PlayerID uint64
	Effect   EffectKind
}

// InsanityThresholdCrossed reports crossing one of {25,50,75,90,100} once
// per increase, per spec §4.4.
type InsanityThresholdCrossed struct {
	PlayerID  uint64
	Threshold int
}

// PlayerDied / PlayerRespawned bracket the death→corpse→respawn lifecycle
// (spec §4.4).
type PlayerDied struct {
	PlayerID uint64
	CorpseID uint64
	DeathX   float64
	DeathY   float64
}

type PlayerRespawned struct {
	PlayerID uint64
}

// HostileSpawned / HostileDespawned report hostile pressure-system activity
// (spec §4.5), useful for tests and for future telemetry collaborators.
type HostileSpawned struct {
	HostileID uint64
}

type HostileDespawned struct {
	HostileID uint64
}
