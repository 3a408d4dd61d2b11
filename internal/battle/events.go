package battle

import "github.com/vovakirdan/tui-monsters/internal/dex"

// Event is produced by the Manager and consumed by the presentation layer.
type Event interface {
	battleEvent()
}

// StateChangedEvent is emitted on every state transition.
type StateChangedEvent struct {
	State State
}

func (StateChangedEvent) battleEvent() {}

// MessageEvent is a line of narration the player must dismiss.
type MessageEvent struct {
	Text string
}

func (MessageEvent) battleEvent() {}

// DamageEvent reports HP lost by a side's active monster.
type DamageEvent struct {
	Side   Side
	Damage int
	HP     int
	MaxHP  int
}

func (DamageEvent) battleEvent() {}

// FaintEvent reports that a side's active monster fainted.
type FaintEvent struct {
	Side Side
}

func (FaintEvent) battleEvent() {}

// BattleEndEvent is emitted once, when the battle finishes.
type BattleEndEvent struct {
	Result Result
}

func (BattleEndEvent) battleEvent() {}

// StatusAppliedEvent reports a status condition landing on a side's active monster.
type StatusAppliedEvent struct {
	Side   Side
	Status dex.StatusEffect
}

func (StatusAppliedEvent) battleEvent() {}

// SwitchEvent reports a new active monster for a side.
type SwitchEvent struct {
	Side  Side
	Index int
}

func (SwitchEvent) battleEvent() {}
