package monster

import (
	"fmt"

	"github.com/vovakirdan/tui-monsters/internal/config"
	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/dex"
)

// Factory rolls new instances. All randomness comes from the injected source.
type Factory struct {
	dex *dex.Dex
	rng core.Rand
	cfg config.MonsterConfig
}

// NewFactory creates a factory drawing from rng.
func NewFactory(d *dex.Dex, rng core.Rand, cfg config.MonsterConfig) *Factory {
	return &Factory{dex: d, rng: rng, cfg: cfg}
}

// Wild rolls a fully random instance: uniform nature, IVs in [0,31], zero
// EVs, the last four learnset moves unlocked at level, full HP.
func (f *Factory) Wild(speciesID, level int) (*Monster, error) {
	species, err := f.dex.Species(speciesID)
	if err != nil {
		return nil, fmt.Errorf("monster: wild: %w", err)
	}
	if level < 1 {
		return nil, fmt.Errorf("%w: level %d", ErrInvalidInstance, level)
	}

	moves, err := f.learnedMoves(species, level)
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		SpeciesID: speciesID,
		Level:     level,
		Moves:     moves,
		IVs:       f.rollIVs(0),
		Nature:    dex.Nature(f.rng.Intn(dex.NatureCount)),
		Shiny:     f.rollShiny(),
	}

	m, err := New(f.dex, inst)
	if err != nil {
		return nil, err
	}
	m.SetHP(m.MaxHP())
	return m, nil
}

// Starter rolls a wild instance, then re-rolls IVs in [StarterIVFloor, 31]
// and resets HP to the new maximum.
func (f *Factory) Starter(speciesID, level int) (*Monster, error) {
	m, err := f.Wild(speciesID, level)
	if err != nil {
		return nil, err
	}
	m.inst.IVs = f.rollIVs(f.cfg.StarterIVFloor)
	m.SetHP(m.MaxHP())
	return m, nil
}

func (f *Factory) rollIVs(floor int) dex.Stats {
	floor = core.Clamp(floor, 0, MaxIV)
	roll := func() int { return floor + f.rng.Intn(MaxIV+1-floor) }
	return dex.Stats{
		HP:        roll(),
		Attack:    roll(),
		Defense:   roll(),
		SpAttack:  roll(),
		SpDefense: roll(),
		Speed:     roll(),
	}
}

func (f *Factory) rollShiny() bool {
	if f.cfg.ShinyOdds <= 0 {
		return false
	}
	return core.Chance(f.rng, 1/float64(f.cfg.ShinyOdds))
}

// learnedMoves takes at most the last four learnset entries unlocked at
// level, falling back to the first entry.
func (f *Factory) learnedMoves(species *dex.Species, level int) ([]MoveSlot, error) {
	var unlocked []dex.LearnsetEntry
	for _, e := range species.Learnset {
		if e.Level <= level {
			unlocked = append(unlocked, e)
		}
	}
	if len(unlocked) > MaxMoveSlots {
		unlocked = unlocked[len(unlocked)-MaxMoveSlots:]
	}
	if len(unlocked) == 0 && len(species.Learnset) > 0 {
		unlocked = species.Learnset[:1]
	}

	slots := make([]MoveSlot, 0, len(unlocked))
	for _, e := range unlocked {
		mv, err := f.dex.Move(e.MoveID)
		if err != nil {
			return nil, fmt.Errorf("monster: species %d: %w", species.ID, err)
		}
		slots = append(slots, MoveSlot{MoveID: mv.ID, PP: mv.PP})
	}
	return slots, nil
}
