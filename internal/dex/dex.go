package dex

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownSpecies is returned when a species id is absent from the Dex.
	ErrUnknownSpecies = errors.New("dex: unknown species")
	// ErrUnknownMove is returned when a move id is absent from the Dex.
	ErrUnknownMove = errors.New("dex: unknown move")
	// ErrUnknownZone is returned when a zone id is absent from the Dex.
	ErrUnknownZone = errors.New("dex: unknown zone")
)

// Tables is the raw content a Dex is built from.
type Tables struct {
	Species []Species
	Moves   []Move
	Natures map[Nature]NatureModifier
	Chart   TypeChart
	Zones   []Zone
}

// Dex is the validated, read-only set of static battle tables.
type Dex struct {
	species map[int]*Species
	moves   map[string]*Move
	natures map[Nature]NatureModifier
	chart   TypeChart
	zones   map[string]*Zone
}

// New validates the tables and indexes them.
func New(t Tables) (*Dex, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}

	d := &Dex{
		species: make(map[int]*Species, len(t.Species)),
		moves:   make(map[string]*Move, len(t.Moves)),
		natures: make(map[Nature]NatureModifier, NatureCount),
		chart:   t.Chart,
		zones:   make(map[string]*Zone, len(t.Zones)),
	}
	for i := range t.Species {
		s := t.Species[i]
		d.species[s.ID] = &s
	}
	for i := range t.Moves {
		m := t.Moves[i]
		d.moves[m.ID] = &m
	}
	for n, mod := range t.Natures {
		d.natures[n] = mod
	}
	for i := range t.Zones {
		z := t.Zones[i]
		d.zones[z.ID] = &z
	}
	if d.chart == nil {
		d.chart = TypeChart{}
	}
	return d, nil
}

// Species returns the species with the given id.
func (d *Dex) Species(id int) (*Species, error) {
	s, ok := d.species[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSpecies, id)
	}
	return s, nil
}

// Move returns the move with the given id.
func (d *Dex) Move(id string) (*Move, error) {
	m, ok := d.moves[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMove, id)
	}
	return m, nil
}

// NatureModifier returns the coefficients for n. Unknown natures are neutral.
func (d *Dex) NatureModifier(n Nature) NatureModifier {
	if mod, ok := d.natures[n]; ok {
		return mod
	}
	return NeutralModifier()
}

// Chart returns the type-effectiveness chart.
func (d *Dex) Chart() TypeChart {
	return d.chart
}

// Zone returns the encounter zone with the given id.
func (d *Dex) Zone(id string) (*Zone, error) {
	z, ok := d.zones[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, id)
	}
	return z, nil
}

// SpeciesList returns all species ordered by id.
func (d *Dex) SpeciesList() []*Species {
	list := make([]*Species, 0, len(d.species))
	for _, s := range d.species {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Moves returns all moves ordered by id.
func (d *Dex) Moves() []*Move {
	list := make([]*Move, 0, len(d.moves))
	for _, m := range d.moves {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// ZoneIDs returns all zone ids in lexical order.
func (d *Dex) ZoneIDs() []string {
	ids := make([]string, 0, len(d.zones))
	for id := range d.zones {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
