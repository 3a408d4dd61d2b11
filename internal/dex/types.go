// Package dex holds the static, read-only battle data: species, moves,
// natures, the type chart and encounter zones. A Dex is loaded once at
// startup and shared by reference; nothing in the engine mutates it.
package dex

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ElementType is an elemental type carried by species and moves.
type ElementType int

const (
	TypeNone ElementType = iota // Absent second type
	TypeNormal
	TypeFire
	TypeWater
	TypeGrass
	TypeElectric
	TypeIce
	TypeFighting
	TypePoison
	TypeGround
	TypeFlying
	TypePsychic
	TypeBug
	TypeRock
	TypeGhost
	TypeDragon
	TypeDark
	TypeSteel
	TypeFairy
)

var elementNames = [...]string{
	TypeNone:     "none",
	TypeNormal:   "normal",
	TypeFire:     "fire",
	TypeWater:    "water",
	TypeGrass:    "grass",
	TypeElectric: "electric",
	TypeIce:      "ice",
	TypeFighting: "fighting",
	TypePoison:   "poison",
	TypeGround:   "ground",
	TypeFlying:   "flying",
	TypePsychic:  "psychic",
	TypeBug:      "bug",
	TypeRock:     "rock",
	TypeGhost:    "ghost",
	TypeDragon:   "dragon",
	TypeDark:     "dark",
	TypeSteel:    "steel",
	TypeFairy:    "fairy",
}

// String returns the lowercase identifier used in data files.
func (t ElementType) String() string {
	if t < 0 || int(t) >= len(elementNames) {
		return "unknown"
	}
	return elementNames[t]
}

// DisplayName returns the type name for presentation ("Fire").
func (t ElementType) DisplayName() string {
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.English).String(t.String())
}

// ParseElementType resolves a data-file identifier. "none" is not accepted.
func ParseElementType(s string) (ElementType, bool) {
	for i, name := range elementNames {
		if ElementType(i) != TypeNone && name == s {
			return ElementType(i), true
		}
	}
	return TypeNone, false
}

// MoveCategory selects which stat pair a move uses.
type MoveCategory int

const (
	CategoryPhysical MoveCategory = iota
	CategorySpecial
	CategoryStatus
)

// String returns the data-file identifier.
func (c MoveCategory) String() string {
	switch c {
	case CategoryPhysical:
		return "physical"
	case CategorySpecial:
		return "special"
	case CategoryStatus:
		return "status"
	default:
		return "unknown"
	}
}

// ParseMoveCategory resolves a data-file identifier.
func ParseMoveCategory(s string) (MoveCategory, bool) {
	switch s {
	case "physical":
		return CategoryPhysical, true
	case "special":
		return CategorySpecial, true
	case "status":
		return CategoryStatus, true
	default:
		return CategoryPhysical, false
	}
}

// StatusEffect is a persistent status condition. Only the shape is modeled;
// conditions are assigned but never resolved.
type StatusEffect int

const (
	StatusNone StatusEffect = iota
	StatusBurn
	StatusFreeze
	StatusParalysis
	StatusPoison
	StatusSleep
	StatusConfusion
)

// String returns the data-file identifier.
func (s StatusEffect) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusBurn:
		return "burn"
	case StatusFreeze:
		return "freeze"
	case StatusParalysis:
		return "paralysis"
	case StatusPoison:
		return "poison"
	case StatusSleep:
		return "sleep"
	case StatusConfusion:
		return "confusion"
	default:
		return "unknown"
	}
}

// Verb returns the narration fragment used when the status is applied.
func (s StatusEffect) Verb() string {
	switch s {
	case StatusBurn:
		return "was burned"
	case StatusFreeze:
		return "was frozen solid"
	case StatusParalysis:
		return "is paralyzed"
	case StatusPoison:
		return "was poisoned"
	case StatusSleep:
		return "fell asleep"
	case StatusConfusion:
		return "became confused"
	default:
		return ""
	}
}

// ParseStatusEffect resolves a data-file identifier. Empty means none.
func ParseStatusEffect(s string) (StatusEffect, bool) {
	switch s {
	case "", "none":
		return StatusNone, true
	case "burn":
		return StatusBurn, true
	case "freeze":
		return StatusFreeze, true
	case "paralysis":
		return StatusParalysis, true
	case "poison":
		return StatusPoison, true
	case "sleep":
		return StatusSleep, true
	case "confusion":
		return StatusConfusion, true
	default:
		return StatusNone, false
	}
}

// Stats is a six-stat block, used for base stats, IVs, EVs and derived stats.
type Stats struct {
	HP        int `yaml:"hp" json:"hp"`
	Attack    int `yaml:"attack" json:"attack"`
	Defense   int `yaml:"defense" json:"defense"`
	SpAttack  int `yaml:"sp_attack" json:"sp_attack"`
	SpDefense int `yaml:"sp_defense" json:"sp_defense"`
	Speed     int `yaml:"speed" json:"speed"`
}

// Values returns the stats in canonical order.
func (s Stats) Values() [6]int {
	return [6]int{s.HP, s.Attack, s.Defense, s.SpAttack, s.SpDefense, s.Speed}
}

// Total returns the sum of all six stats.
func (s Stats) Total() int {
	total := 0
	for _, v := range s.Values() {
		total += v
	}
	return total
}

// LearnsetEntry unlocks a move at a level.
type LearnsetEntry struct {
	Level  int
	MoveID string
}

// Species is the static template of a kind of creature.
type Species struct {
	ID        int
	Name      string
	Types     [2]ElementType // Types[1] is TypeNone for single-typed species
	BaseStats Stats
	Learnset  []LearnsetEntry
	CatchRate int
	ExpYield  int
	SpriteKey string
}

// TypeList returns the species' present types (one or two).
func (s *Species) TypeList() []ElementType {
	if s.Types[1] == TypeNone {
		return []ElementType{s.Types[0]}
	}
	return []ElementType{s.Types[0], s.Types[1]}
}

// HasType reports whether t is one of the species' types.
func (s *Species) HasType(t ElementType) bool {
	return t != TypeNone && (s.Types[0] == t || s.Types[1] == t)
}

// Move is the static definition of a battle move.
type Move struct {
	ID           string
	Name         string
	Type         ElementType
	Category     MoveCategory
	Power        int
	Accuracy     int // 0-100
	PP           int
	Priority     int
	Effect       StatusEffect
	EffectChance int // 0-100
	Description  string
}

// HasEffect reports whether the move can inflict a status condition.
func (m *Move) HasEffect() bool {
	return m.Effect != StatusNone && m.EffectChance > 0
}

// ZoneEntry is one weighted wild species in an encounter zone.
type ZoneEntry struct {
	SpeciesID int
	MinLevel  int
	MaxLevel  int
	Weight    int
}

// Zone is an encounter region: a base rate, a species weight table and a
// tile layout marking grass.
type Zone struct {
	ID      string
	Name    string
	Rate    float64 // Base encounter rate in percent
	Entries []ZoneEntry
	Layout  []string
}
