package battle

import (
	"slices"

	"github.com/vovakirdan/tui-monsters/internal/monster"
)

// Summary describes a finished (or abandoned) battle for the record ledger.
type Summary struct {
	ID              string
	Kind            Kind
	Result          Result
	Turns           int
	TrainerName     string
	PlayerLead      string
	PlayerLevel     int
	EnemyLead       string
	EnemyLevel      int
	PlayerRemaining int // Living player monsters at the end
	EnemyRemaining  int
}

// Summary returns the battle's record-ledger entry.
func (m *Manager) Summary() Summary {
	s := Summary{
		ID:              m.id,
		Kind:            m.cfg.Kind,
		Result:          m.result,
		Turns:           m.turn,
		TrainerName:     m.cfg.TrainerName,
		PlayerRemaining: len(m.player) - countFainted(m.player),
		EnemyRemaining:  len(m.enemy) - countFainted(m.enemy),
	}
	if p := m.ActivePlayer(); p != nil {
		s.PlayerLead, s.PlayerLevel = p.Name(), p.Level()
	}
	if e := m.ActiveEnemy(); e != nil {
		s.EnemyLead, s.EnemyLevel = e.Name(), e.Level()
	}
	return s
}

// Snapshot is the complete observable battle state, using primitive types
// only so two runs can be compared directly.
type Snapshot struct {
	State        string
	Result       string
	Turn         int
	Pending      int
	PlayerActive int
	EnemyActive  int

	// Per monster: HP, Status, then remaining PP of each slot
	PlayerData []int
	EnemyData  []int
}

// Snapshot returns the current battle state.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		State:        m.state.String(),
		Result:       m.result.String(),
		Turn:         m.turn,
		Pending:      len(m.queue),
		PlayerActive: m.playerActive,
		EnemyActive:  m.enemyActive,
		PlayerData:   flattenTeam(m.cfg.PlayerTeam),
		EnemyData:    flattenTeam(m.cfg.EnemyTeam),
	}
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.State != o.State || s.Result != o.Result || s.Turn != o.Turn || s.Pending != o.Pending ||
		s.PlayerActive != o.PlayerActive || s.EnemyActive != o.EnemyActive {
		return false
	}
	return slices.Equal(s.PlayerData, o.PlayerData) && slices.Equal(s.EnemyData, o.EnemyData)
}

func flattenTeam(team []monster.Instance) []int {
	var out []int
	for _, inst := range team {
		out = append(out, inst.CurrentHP, int(inst.Status))
		for _, slot := range inst.Moves {
			out = append(out, slot.PP)
		}
	}
	return out
}

func countFainted(team []*monster.Monster) int {
	n := 0
	for _, mon := range team {
		if mon.IsFainted() {
			n++
		}
	}
	return n
}
