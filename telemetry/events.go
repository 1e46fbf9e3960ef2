// Package telemetry provides match event tracking, window statistics and CSV output.
package telemetry

import "github.com/pthm-cable/gobble/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventPellet       EventType = iota // an actor ate a pellet
	EventEat                           // an actor ate another actor
	EventCellLost                      // a player cell was eaten
	EventRespawn                       // a bot came back
	EventSplit                         // the player split
	EventFusion                        // a player cell fused into the primary
	EventVirusHit                      // the virus halved an actor
	EventShieldAbsorb                  // a shield absorbed the virus
	EventBonus                         // a player cell collected a bonus
	EventBonusSpawn                    // a bonus appeared
	EventMatchWon
	EventMatchLost
)

var eventNames = [...]string{
	EventPellet:       "pellet",
	EventEat:          "eat",
	EventCellLost:     "cell_lost",
	EventRespawn:      "respawn",
	EventSplit:        "split",
	EventFusion:       "fusion",
	EventVirusHit:     "virus_hit",
	EventShieldAbsorb: "shield_absorb",
	EventBonus:        "bonus",
	EventBonusSpawn:   "bonus_spawn",
	EventMatchWon:     "match_won",
	EventMatchLost:    "match_lost",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int
	EntityID uint32
	Kind     components.Kind

	// Optional fields depending on event type
	TargetID   uint32          // prey, pellet or bonus ID
	TargetKind components.Kind // prey kind for eat events
	Amount     float64         // radius gained, prey radius, or score
	Label      string          // bonus kind
}

// NewPelletEvent creates a pellet event.
func NewPelletEvent(tick int, eaterID uint32, kind components.Kind, pelletID uint32) Event {
	return Event{
		Type:     EventPellet,
		Tick:     tick,
		EntityID: eaterID,
		Kind:     kind,
		TargetID: pelletID,
	}
}

// NewEatEvent creates an actor-eats-actor event. Amount is the prey radius.
func NewEatEvent(tick int, eaterID uint32, eaterKind components.Kind, preyID uint32, preyKind components.Kind, preyRadius float64) Event {
	return Event{
		Type:       EventEat,
		Tick:       tick,
		EntityID:   eaterID,
		Kind:       eaterKind,
		TargetID:   preyID,
		TargetKind: preyKind,
		Amount:     preyRadius,
	}
}

// NewCellLostEvent creates an event for a player cell being eaten.
func NewCellLostEvent(tick int, cellID, eaterID uint32) Event {
	return Event{
		Type:     EventCellLost,
		Tick:     tick,
		EntityID: cellID,
		Kind:     components.KindPlayer,
		TargetID: eaterID,
	}
}

// NewRespawnEvent creates a bot respawn event. Amount is the new radius.
func NewRespawnEvent(tick int, botID uint32, radius float64) Event {
	return Event{
		Type:     EventRespawn,
		Tick:     tick,
		EntityID: botID,
		Kind:     components.KindBot,
		Amount:   radius,
	}
}

// NewSplitEvent creates a split event. TargetID is the new cell.
func NewSplitEvent(tick int, primaryID, childID uint32) Event {
	return Event{
		Type:     EventSplit,
		Tick:     tick,
		EntityID: primaryID,
		Kind:     components.KindPlayer,
		TargetID: childID,
	}
}

// NewFusionEvent creates a fusion event. Amount is the number of cells fused.
func NewFusionEvent(tick int, primaryID uint32, fused int) Event {
	return Event{
		Type:     EventFusion,
		Tick:     tick,
		EntityID: primaryID,
		Kind:     components.KindPlayer,
		Amount:   float64(fused),
	}
}

// NewVirusEvent creates a virus contact event.
func NewVirusEvent(tick int, entityID uint32, kind components.Kind, shielded bool) Event {
	t := EventVirusHit
	if shielded {
		t = EventShieldAbsorb
	}
	return Event{
		Type:     t,
		Tick:     tick,
		EntityID: entityID,
		Kind:     kind,
	}
}

// NewBonusEvent creates a bonus pickup event.
func NewBonusEvent(tick int, cellID, bonusID uint32, bonusKind string) Event {
	return Event{
		Type:     EventBonus,
		Tick:     tick,
		EntityID: cellID,
		Kind:     components.KindPlayer,
		TargetID: bonusID,
		Label:    bonusKind,
	}
}

// NewBonusSpawnEvent creates a bonus spawn event.
func NewBonusSpawnEvent(tick int, bonusID uint32, bonusKind string) Event {
	return Event{
		Type:     EventBonusSpawn,
		Tick:     tick,
		TargetID: bonusID,
		Label:    bonusKind,
	}
}

// NewMatchEndEvent creates a won or lost event. Amount is the final score.
func NewMatchEndEvent(tick int, won bool, score int) Event {
	t := EventMatchLost
	if won {
		t = EventMatchWon
	}
	return Event{
		Type:   t,
		Tick:   tick,
		Kind:   components.KindPlayer,
		Amount: float64(score),
	}
}
