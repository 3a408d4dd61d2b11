package dex

import (
	"fmt"
	"sort"
)

// ValidationError describes why a set of tables was rejected.
type ValidationError struct {
	Code    string
	Message string
	Err     error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the sentinel for lookups that failed.
func (e ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks internal consistency of the tables.
// Checks:
//   - Move ids are unique and their numbers are in range
//   - Species ids are unique, typed, and every learnset move exists
//   - Every nature has positive coefficients
//   - Chart multipliers are non-negative
//   - Zone entries reference existing species with sane level ranges
func Validate(t Tables) error {
	moves, err := validateMoves(t.Moves)
	if err != nil {
		return err
	}
	species, err := validateSpecies(t.Species, moves)
	if err != nil {
		return err
	}
	if err := validateNatures(t.Natures); err != nil {
		return err
	}
	if err := validateChart(t.Chart); err != nil {
		return err
	}
	return validateZones(t.Zones, species)
}

func validateMoves(moves []Move) (map[string]bool, error) {
	seen := make(map[string]bool, len(moves))
	for _, m := range moves {
		switch {
		case m.ID == "":
			return nil, ValidationError{Code: "EMPTY_MOVE_ID", Message: fmt.Sprintf("move %q has no id", m.Name)}
		case seen[m.ID]:
			return nil, ValidationError{Code: "DUPLICATE_MOVE", Message: fmt.Sprintf("move %q defined twice", m.ID)}
		case m.Type == TypeNone:
			return nil, ValidationError{Code: "UNTYPED_MOVE", Message: fmt.Sprintf("move %q has no type", m.ID)}
		case m.Power < 0:
			return nil, ValidationError{Code: "INVALID_POWER", Message: fmt.Sprintf("move %q has power %d", m.ID, m.Power)}
		case m.Accuracy < 0 || m.Accuracy > 100:
			return nil, ValidationError{Code: "INVALID_ACCURACY", Message: fmt.Sprintf("move %q has accuracy %d", m.ID, m.Accuracy)}
		case m.PP < 1:
			return nil, ValidationError{Code: "INVALID_PP", Message: fmt.Sprintf("move %q has pp %d", m.ID, m.PP)}
		case m.EffectChance < 0 || m.EffectChance > 100:
			return nil, ValidationError{Code: "INVALID_EFFECT_CHANCE", Message: fmt.Sprintf("move %q has effect chance %d", m.ID, m.EffectChance)}
		}
		seen[m.ID] = true
	}
	return seen, nil
}

func validateSpecies(list []Species, moves map[string]bool) (map[int]bool, error) {
	seen := make(map[int]bool, len(list))
	for _, s := range list {
		switch {
		case s.ID <= 0:
			return nil, ValidationError{Code: "INVALID_SPECIES_ID", Message: fmt.Sprintf("species %q has id %d", s.Name, s.ID)}
		case seen[s.ID]:
			return nil, ValidationError{Code: "DUPLICATE_SPECIES", Message: fmt.Sprintf("species %d defined twice", s.ID)}
		case s.Types[0] == TypeNone:
			return nil, ValidationError{Code: "UNTYPED_SPECIES", Message: fmt.Sprintf("species %d has no primary type", s.ID)}
		case s.BaseStats.HP <= 0:
			return nil, ValidationError{Code: "INVALID_BASE_STATS", Message: fmt.Sprintf("species %d has base hp %d", s.ID, s.BaseStats.HP)}
		case len(s.Learnset) == 0:
			return nil, ValidationError{Code: "EMPTY_LEARNSET", Message: fmt.Sprintf("species %d learns no moves", s.ID)}
		}
		for _, e := range s.Learnset {
			if !moves[e.MoveID] {
				return nil, ValidationError{
					Code:    "UNKNOWN_MOVE",
					Message: fmt.Sprintf("species %d learns unknown move %q", s.ID, e.MoveID),
					Err:     ErrUnknownMove,
				}
			}
			if e.Level < 1 {
				return nil, ValidationError{Code: "INVALID_LEARN_LEVEL", Message: fmt.Sprintf("species %d learns %q at level %d", s.ID, e.MoveID, e.Level)}
			}
		}
		seen[s.ID] = true
	}
	return seen, nil
}

func validateNatures(natures map[Nature]NatureModifier) error {
	for _, n := range AllNatures() {
		mod, ok := natures[n]
		if !ok {
			return ValidationError{Code: "MISSING_NATURE", Message: fmt.Sprintf("nature %s has no modifier", n)}
		}
		for _, c := range []float64{mod.Attack, mod.Defense, mod.SpAttack, mod.SpDefense, mod.Speed} {
			if c <= 0 {
				return ValidationError{Code: "INVALID_NATURE", Message: fmt.Sprintf("nature %s has coefficient %v", n, c)}
			}
		}
	}
	return nil
}

func validateChart(chart TypeChart) error {
	// Deterministic order for stable error messages
	atks := make([]ElementType, 0, len(chart))
	for atk := range chart {
		atks = append(atks, atk)
	}
	sort.Slice(atks, func(i, j int) bool { return atks[i] < atks[j] })

	for _, atk := range atks {
		for def, m := range chart[atk] {
			if m < 0 {
				return ValidationError{Code: "INVALID_MULTIPLIER", Message: fmt.Sprintf("%s vs %s is %v", atk, def, m)}
			}
		}
	}
	return nil
}

func validateZones(zones []Zone, species map[int]bool) error {
	seen := make(map[string]bool, len(zones))
	for _, z := range zones {
		switch {
		case z.ID == "":
			return ValidationError{Code: "EMPTY_ZONE_ID", Message: fmt.Sprintf("zone %q has no id", z.Name)}
		case seen[z.ID]:
			return ValidationError{Code: "DUPLICATE_ZONE", Message: fmt.Sprintf("zone %q defined twice", z.ID)}
		case z.Rate < 0 || z.Rate > 100:
			return ValidationError{Code: "INVALID_RATE", Message: fmt.Sprintf("zone %q has rate %v", z.ID, z.Rate)}
		case len(z.Entries) == 0:
			return ValidationError{Code: "EMPTY_ZONE", Message: fmt.Sprintf("zone %q has no species", z.ID)}
		}
		for _, e := range z.Entries {
			if !species[e.SpeciesID] {
				return ValidationError{
					Code:    "UNKNOWN_SPECIES",
					Message: fmt.Sprintf("zone %q references unknown species %d", z.ID, e.SpeciesID),
					Err:     ErrUnknownSpecies,
				}
			}
			if e.MinLevel < 1 || e.MaxLevel < e.MinLevel {
				return ValidationError{Code: "INVALID_LEVEL_RANGE", Message: fmt.Sprintf("zone %q species %d levels %d-%d", z.ID, e.SpeciesID, e.MinLevel, e.MaxLevel)}
			}
			if e.Weight <= 0 {
				return ValidationError{Code: "INVALID_WEIGHT", Message: fmt.Sprintf("zone %q species %d weight %d", z.ID, e.SpeciesID, e.Weight)}
			}
		}
		seen[z.ID] = true
	}
	return nil
}
