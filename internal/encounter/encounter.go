// Package encounter decides, step by step, when a wild monster appears in
// tall grass and rolls the monster that does.
package encounter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-monsters/internal/config"
	"github.com/vovakirdan/tui-monsters/internal/core"
	"github.com/vovakirdan/tui-monsters/internal/dex"
	"github.com/vovakirdan/tui-monsters/internal/monster"
)

// WildFactory builds wild monsters. *monster.Factory satisfies it.
type WildFactory interface {
	Wild(speciesID, level int) (*monster.Monster, error)
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger used for encounter tracing.
func WithLogger(l *log.Logger) Option {
	return func(s *System) {
		if l != nil {
			s.log = l
		}
	}
}

// System tracks consecutive grass steps for one zone.
type System struct {
	zone    *dex.Zone
	cfg     config.EncounterConfig
	factory WildFactory
	rng     core.Rand
	log     *log.Logger

	grass map[core.Tile]struct{}
	steps int
}

// New creates an encounter system for zone. The zone's layout, if any,
// seeds the grass tiles.
func New(zone *dex.Zone, factory WildFactory, rng core.Rand, cfg config.EncounterConfig, opts ...Option) *System {
	s := &System{
		zone:    zone,
		cfg:     cfg,
		factory: factory,
		rng:     rng,
		log:     log.New(io.Discard),
		grass:   make(map[core.Tile]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetGrassTiles(ParseGrass(zone.Layout))
	return s
}

// Zone returns the zone this system rolls from.
func (s *System) Zone() *dex.Zone { return s.zone }

// SetGrassTiles replaces the grass set.
func (s *System) SetGrassTiles(tiles []core.Tile) {
	clear(s.grass)
	for _, t := range tiles {
		s.grass[t] = struct{}{}
	}
}

// AddGrassTile marks one tile as grass.
func (s *System) AddGrassTile(x, y int) {
	s.grass[core.T(x, y)] = struct{}{}
}

// IsGrassTile reports whether (x, y) is grass.
func (s *System) IsGrassTile(x, y int) bool {
	_, ok := s.grass[core.T(x, y)]
	return ok
}

// GrassTiles returns the number of grass tiles.
func (s *System) GrassTiles() int { return len(s.grass) }

// Steps returns the consecutive steps taken in grass.
func (s *System) Steps() int { return s.steps }

// ResetSteps clears the consecutive step counter.
func (s *System) ResetSteps() { s.steps = 0 }

// TriggerChance is the probability that the current step triggers an
// encounter: the zone rate plus a capped per-step bonus.
func (s *System) TriggerChance() float64 {
	bonus := min(float64(s.steps)*s.cfg.StepBonus, s.cfg.MaxBonus)
	return s.zone.Rate/100 + bonus
}

// CheckEncounter registers a step onto (x, y). It returns the wild monster
// when the step triggers an encounter and nil otherwise. Leaving the grass
// resets the step counter; a failed roll keeps it.
func (s *System) CheckEncounter(x, y int) (*monster.Instance, error) {
	if !s.IsGrassTile(x, y) {
		s.steps = 0
		return nil, nil
	}

	s.steps++
	p := s.TriggerChance()
	if !core.Chance(s.rng, p) {
		return nil, nil
	}
	steps := s.steps
	s.steps = 0

	entry, ok := s.pickEntry()
	if !ok {
		return nil, nil
	}
	level := core.IntBetween(s.rng, entry.MinLevel, entry.MaxLevel)

	mon, err := s.factory.Wild(entry.SpeciesID, level)
	if err != nil {
		return nil, fmt.Errorf("encounter: zone %s: %w", s.zone.ID, err)
	}
	s.log.Debug("wild encounter", "zone", s.zone.ID, "tile", core.T(x, y), "steps", steps,
		"chance", p, "species", mon.Name(), "level", level)

	inst := mon.Instance().Clone()
	return &inst, nil
}

// pickEntry draws a zone entry by weight. A uniform sample scaled by the
// total weight is reduced by each entry's weight until it is exhausted.
func (s *System) pickEntry() (dex.ZoneEntry, bool) {
	entries := s.zone.Entries
	if len(entries) == 0 {
		return dex.ZoneEntry{}, false
	}

	total := 0
	for _, e := range entries {
		total += e.Weight
	}
	r := s.rng.Float64() * float64(total)
	for _, e := range entries {
		r -= float64(e.Weight)
		if r <= 0 {
			return e, true
		}
	}
	return entries[0], true
}
