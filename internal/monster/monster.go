package monster

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/dex"
)

// ErrInvalidInstance is returned when an instance breaks a structural limit.
var ErrInvalidInstance = errors.New("monster: invalid instance")

// Monster pairs an Instance with its resolved species and moves.
// Mutations write through to the wrapped Instance.
type Monster struct {
	inst    *Instance
	species *dex.Species
	moves   []*dex.Move
	nature  dex.NatureModifier
}

// New wraps inst. Unknown species or move ids are integrity errors.
func New(d *dex.Dex, inst *Instance) (*Monster, error) {
	species, err := d.Species(inst.SpeciesID)
	if err != nil {
		return nil, fmt.Errorf("monster: %w", err)
	}
	if inst.Level < 1 {
		return nil, fmt.Errorf("%w: level %d", ErrInvalidInstance, inst.Level)
	}
	if len(inst.Moves) > MaxMoveSlots {
		return nil, fmt.Errorf("%w: %d move slots", ErrInvalidInstance, len(inst.Moves))
	}
	for _, iv := range inst.IVs.Values() {
		if iv < 0 || iv > MaxIV {
			return nil, fmt.Errorf("%w: iv %d", ErrInvalidInstance, iv)
		}
	}

	moves := make([]*dex.Move, len(inst.Moves))
	for i, slot := range inst.Moves {
		mv, err := d.Move(slot.MoveID)
		if err != nil {
			return nil, fmt.Errorf("monster: slot %d: %w", i, err)
		}
		moves[i] = mv
	}

	return &Monster{
		inst:    inst,
		species: species,
		moves:   moves,
		nature:  d.NatureModifier(inst.Nature),
	}, nil
}

// Name returns the nickname, or the species name when there is none.
func (m *Monster) Name() string {
	if m.inst.Nickname != "" {
		return m.inst.Nickname
	}
	return m.species.Name
}

func (m *Monster) Level() int { return m.inst.Level }

// Stats derives the six combat stats from the current instance state.
func (m *Monster) Stats() dex.Stats {
	return dex.ComputeStats(m.species.BaseStats, m.inst.IVs, m.inst.EVs, m.nature, m.inst.Level)
}

func (m *Monster) MaxHP() int { return m.Stats().HP }

func (m *Monster) HP() int { return m.inst.CurrentHP }

// SetHP sets current HP clamped to [0, MaxHP].
func (m *Monster) SetHP(hp int) {
	m.inst.CurrentHP = max(0, min(hp, m.MaxHP()))
}

// TakeDamage lowers HP, never below 0.
func (m *Monster) TakeDamage(amount int) {
	m.SetHP(m.inst.CurrentHP - amount)
}

// Heal raises HP, never above MaxHP.
func (m *Monster) Heal(amount int) {
	m.SetHP(m.inst.CurrentHP + amount)
}

func (m *Monster) IsFainted() bool { return m.inst.CurrentHP <= 0 }

// HPFraction returns current HP over max HP in [0, 1].
func (m *Monster) HPFraction() float64 {
	maxHP := m.MaxHP()
	if maxHP <= 0 {
		return 0
	}
	return core.ClampF(float64(m.inst.CurrentHP)/float64(maxHP), 0, 1)
}

// Moves returns a copy of the move slots.
func (m *Monster) Moves() []MoveSlot {
	return append([]MoveSlot(nil), m.inst.Moves...)
}

// Move returns the move definition in slot i.
func (m *Monster) Move(i int) (*dex.Move, bool) {
	if i < 0 || i >= len(m.moves) {
		return nil, false
	}
	return m.moves[i], true
}

// UsePP consumes one PP from slot i. It reports false when the slot is
// missing or exhausted.
func (m *Monster) UsePP(i int) bool {
	if i < 0 || i >= len(m.inst.Moves) {
		return false
	}
	slot := &m.inst.Moves[i]
	if slot.PP <= 0 {
		return false
	}
	slot.PP--
	return true
}

// UsableMoves returns the indices of slots with PP left.
func (m *Monster) UsableMoves() []int {
	var idx []int
	for i, slot := range m.inst.Moves {
		if slot.PP > 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

func (m *Monster) Status() dex.StatusEffect { return m.inst.Status }

func (m *Monster) SetStatus(s dex.StatusEffect) { m.inst.Status = s }

// Types returns the species' present types.
func (m *Monster) Types() []dex.ElementType { return m.species.TypeList() }

func (m *Monster) Species() *dex.Species { return m.species }

// Instance returns the wrapped instance; mutations are shared.
func (m *Monster) Instance() *Instance { return m.inst }

func (m *Monster) Shiny() bool { return m.inst.Shiny }

// Restore fully heals: max HP, max PP in every slot, no status.
func (m *Monster) Restore() {
	m.SetHP(m.MaxHP())
	for i, mv := range m.moves {
		m.inst.Moves[i].PP = mv.PP
	}
	m.inst.Status = dex.StatusNone
}
