package battle

import "github.com/vovakirdan/tui-monsters/internal/monster"

// State is the battle protocol state.
type State int

const (
	StateInitializing State = iota
	StateIntro
	StateSelectAction
	StateSelectMove
	StateExecuteTurn
	StateVictory
	StateDefeat
	StateEscape
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateIntro:
		return "intro"
	case StateSelectAction:
		return "select_action"
	case StateSelectMove:
		return "select_move"
	case StateExecuteTurn:
		return "execute_turn"
	case StateVictory:
		return "victory"
	case StateDefeat:
		return "defeat"
	case StateEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// IsOver reports whether the battle has ended.
func (s State) IsOver() bool {
	return s == StateVictory || s == StateDefeat || s == StateEscape
}

// acceptsInput reports whether a player selection is meaningful.
func (s State) acceptsInput() bool {
	return s == StateSelectAction || s == StateSelectMove
}

// Result is the outcome of a finished battle.
type Result int

const (
	ResultNone Result = iota
	ResultVictory
	ResultDefeat
	ResultEscape
)

func (r Result) String() string {
	switch r {
	case ResultNone:
		return "none"
	case ResultVictory:
		return "victory"
	case ResultDefeat:
		return "defeat"
	case ResultEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// ParseResult resolves a stored result name.
func ParseResult(s string) (Result, bool) {
	for _, r := range []Result{ResultNone, ResultVictory, ResultDefeat, ResultEscape} {
		if r.String() == s {
			return r, true
		}
	}
	return ResultNone, false
}

// Kind distinguishes wild encounters from trainer battles.
type Kind int

const (
	KindWild Kind = iota
	KindTrainer
)

func (k Kind) String() string {
	switch k {
	case KindWild:
		return "wild"
	case KindTrainer:
		return "trainer"
	default:
		return "unknown"
	}
}

// ParseKind resolves a stored battle kind name.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "wild":
		return KindWild, true
	case "trainer":
		return KindTrainer, true
	}
	return KindWild, false
}

// Config is read once when the battle is created. Teams are copied; the
// caller's slices are never mutated.
type Config struct {
	Kind        Kind
	CanEscape   bool
	CanCapture  bool
	PlayerTeam  []monster.Instance
	EnemyTeam   []monster.Instance
	TrainerName string
}

// WildConfig returns the configuration of an escapable wild encounter.
func WildConfig(player []monster.Instance, wild monster.Instance) Config {
	return Config{
		Kind:       KindWild,
		CanEscape:  true,
		CanCapture: true,
		PlayerTeam: player,
		EnemyTeam:  []monster.Instance{wild},
	}
}
