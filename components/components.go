// Package components defines ECS components for the arena simulation.
package components

import "github.com/mlange-42/ark/ecs"

// Kind distinguishes the two actor populations.
type Kind uint8

const (
	KindPlayer Kind = iota // one of the player's cells
	KindBot                // a bot-controlled cell
)

// PlayerCell marks an entity as one of the player's cells.
type PlayerCell struct {
	LastSplitTime float64 // simulation seconds; gates autofusion
}

// TargetKind tags the variant held by a Target.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetPellet
	TargetActor
	TargetWaypoint
)

// Target is a bot's current steering goal.
// Pellets are referenced by ID, actors by entity; waypoints carry their own point.
type Target struct {
	Kind     TargetKind
	PelletID uint32
	Entity   ecs.Entity
	X, Y     float64
}

// Bot holds bot policy and respawn state.
type Bot struct {
	Target     Target
	RetargetAt float64 // simulation seconds
	Respawning bool
	RespawnAt  float64 // simulation seconds
}

// Live reports whether the bot is in play.
func (b *Bot) Live() bool {
	return !b.Respawning
}
