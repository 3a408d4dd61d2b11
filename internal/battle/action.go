// Package battle implements the turn-based battle state machine: action
// ordering, move resolution, damage, faint and battle-end detection.
package battle

import (
	"sort"

	"github.com/vovakirdan/tui-monsters/internal/core"
)

// Side identifies a combatant's team.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// ActionKind is the tag of a battle action.
type ActionKind int

const (
	ActionFight ActionKind = iota
	ActionItem
	ActionSwitch
	ActionRun
)

func (k ActionKind) String() string {
	switch k {
	case ActionFight:
		return "fight"
	case ActionItem:
		return "item"
	case ActionSwitch:
		return "switch"
	case ActionRun:
		return "run"
	default:
		return "unknown"
	}
}

// Action is one combatant's choice for a turn. Priority and Speed are
// filled in by the Manager before ordering.
type Action struct {
	Kind      ActionKind
	Side      Side
	MoveIndex int    // ActionFight
	ItemID    string // ActionItem
	SwitchTo  int    // ActionSwitch: team index
	Priority  int
	Speed     int
}

// Fight returns a fight action using move slot i.
func Fight(i int) Action {
	return Action{Kind: ActionFight, MoveIndex: i}
}

// UseItem returns an item action.
func UseItem(id string) Action {
	return Action{Kind: ActionItem, ItemID: id}
}

// SwitchTo returns a switch action to team index i.
func SwitchTo(i int) Action {
	return Action{Kind: ActionSwitch, SwitchTo: i}
}

// Run returns an escape attempt.
func Run() Action {
	return Action{Kind: ActionRun}
}

// orderActions sorts by priority descending, then speed descending. Full
// ties resolve in random order.
func orderActions(actions []Action, rng core.Rand) {
	// Shuffle first so the stable sort leaves ties in random order
	for i := len(actions) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		actions[i], actions[j] = actions[j], actions[i]
	}
	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].Priority != actions[j].Priority {
			return actions[i].Priority > actions[j].Priority
		}
		return actions[i].Speed > actions[j].Speed
	})
}
