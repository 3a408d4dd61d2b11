package dex

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Data file names inside a dex directory.
const (
	SpeciesFile   = "species.yaml"
	MovesFile     = "moves.yaml"
	NaturesFile   = "natures.yaml"
	TypeChartFile = "typechart.yaml"
	ZonesFile     = "zones.yaml"
)

type yamlSpeciesFile struct {
	Species []yamlSpecies `yaml:"species"`
}

type yamlSpecies struct {
	ID        int            `yaml:"id"`
	Name      string         `yaml:"name"`
	Types     []string       `yaml:"types"`
	BaseStats Stats          `yaml:"base_stats"`
	Learnset  []yamlLearnset `yaml:"learnset"`
	CatchRate int            `yaml:"catch_rate"`
	ExpYield  int            `yaml:"exp_yield"`
	Sprite    string         `yaml:"sprite"`
}

type yamlLearnset struct {
	Level int    `yaml:"level"`
	Move  string `yaml:"move"`
}

type yamlMovesFile struct {
	Moves []yamlMove `yaml:"moves"`
}

type yamlMove struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	Category     string `yaml:"category"`
	Power        int    `yaml:"power"`
	Accuracy     int    `yaml:"accuracy"`
	PP           int    `yaml:"pp"`
	Priority     int    `yaml:"priority,omitempty"`
	Effect       string `yaml:"effect,omitempty"`
	EffectChance int    `yaml:"effect_chance,omitempty"`
	Description  string `yaml:"description,omitempty"`
}

// Natures list only the coefficients that differ from 1.
type yamlNaturesFile struct {
	Natures map[string]map[string]float64 `yaml:"natures"`
}

type yamlChartFile struct {
	Chart map[string]map[string]float64 `yaml:"chart"`
}

type yamlZonesFile struct {
	Zones []yamlZone `yaml:"zones"`
}

type yamlZone struct {
	ID      string          `yaml:"id"`
	Name    string          `yaml:"name"`
	Rate    float64         `yaml:"rate"`
	Entries []yamlZoneEntry `yaml:"entries"`
	Layout  []string        `yaml:"layout,omitempty"`
}

type yamlZoneEntry struct {
	Species  int `yaml:"species"`
	MinLevel int `yaml:"min_level"`
	MaxLevel int `yaml:"max_level"`
	Weight   int `yaml:"weight"`
}

// Default returns the Dex built from the embedded data files.
func Default() (*Dex, error) {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("dex: open embedded defaults: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir reads a Dex from a directory holding the five data files.
func LoadDir(dir string) (*Dex, error) {
	return LoadFS(os.DirFS(dir))
}

// Load resolves the data directory and builds the Dex.
// Search order: customDir -> ~/.monsters/dex -> ./dex -> embedded default
func Load(customDir string) (*Dex, error) {
	if customDir != "" {
		return LoadDir(customDir)
	}

	if home, err := os.UserHomeDir(); err == nil {
		if d, err := tryLoadDir(filepath.Join(home, ".monsters", "dex")); err == nil {
			return d, nil
		}
	}

	if d, err := tryLoadDir("dex"); err == nil {
		return d, nil
	}

	return Default()
}

func tryLoadDir(dir string) (*Dex, error) {
	if _, err := os.Stat(filepath.Join(dir, SpeciesFile)); err != nil {
		return nil, err
	}
	return LoadDir(dir)
}

// LoadFS reads the five data files from fsys and builds the Dex.
func LoadFS(fsys fs.FS) (*Dex, error) {
	var t Tables
	var err error

	if t.Moves, err = readMoves(fsys); err != nil {
		return nil, err
	}
	if t.Species, err = readSpecies(fsys); err != nil {
		return nil, err
	}
	if t.Natures, err = readNatures(fsys); err != nil {
		return nil, err
	}
	if t.Chart, err = readChart(fsys); err != nil {
		return nil, err
	}
	if t.Zones, err = readZones(fsys); err != nil {
		return nil, err
	}

	d, err := New(t)
	if err != nil {
		return nil, fmt.Errorf("dex: validate: %w", err)
	}
	return d, nil
}

func readYAML(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("dex: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("dex: parse %s: %w", name, err)
	}
	return nil
}

func readSpecies(fsys fs.FS) ([]Species, error) {
	var f yamlSpeciesFile
	if err := readYAML(fsys, SpeciesFile, &f); err != nil {
		return nil, err
	}

	list := make([]Species, 0, len(f.Species))
	for _, ys := range f.Species {
		s := Species{
			ID:        ys.ID,
			Name:      ys.Name,
			BaseStats: ys.BaseStats,
			CatchRate: ys.CatchRate,
			ExpYield:  ys.ExpYield,
			SpriteKey: ys.Sprite,
		}
		if len(ys.Types) == 0 || len(ys.Types) > 2 {
			return nil, fmt.Errorf("dex: species %d: want 1 or 2 types, got %d", ys.ID, len(ys.Types))
		}
		for i, name := range ys.Types {
			t, ok := ParseElementType(name)
			if !ok {
				return nil, fmt.Errorf("dex: species %d: unknown type %q", ys.ID, name)
			}
			s.Types[i] = t
		}
		for _, e := range ys.Learnset {
			s.Learnset = append(s.Learnset, LearnsetEntry{Level: e.Level, MoveID: e.Move})
		}
		list = append(list, s)
	}
	return list, nil
}

func readMoves(fsys fs.FS) ([]Move, error) {
	var f yamlMovesFile
	if err := readYAML(fsys, MovesFile, &f); err != nil {
		return nil, err
	}

	list := make([]Move, 0, len(f.Moves))
	for _, ym := range f.Moves {
		typ, ok := ParseElementType(ym.Type)
		if !ok {
			return nil, fmt.Errorf("dex: move %q: unknown type %q", ym.ID, ym.Type)
		}
		cat, ok := ParseMoveCategory(ym.Category)
		if !ok {
			return nil, fmt.Errorf("dex: move %q: unknown category %q", ym.ID, ym.Category)
		}
		effect, ok := ParseStatusEffect(ym.Effect)
		if !ok {
			return nil, fmt.Errorf("dex: move %q: unknown effect %q", ym.ID, ym.Effect)
		}
		list = append(list, Move{
			ID:           ym.ID,
			Name:         ym.Name,
			Type:         typ,
			Category:     cat,
			Power:        ym.Power,
			Accuracy:     ym.Accuracy,
			PP:           ym.PP,
			Priority:     ym.Priority,
			Effect:       effect,
			EffectChance: ym.EffectChance,
			Description:  ym.Description,
		})
	}
	return list, nil
}

func readNatures(fsys fs.FS) (map[Nature]NatureModifier, error) {
	var f yamlNaturesFile
	if err := readYAML(fsys, NaturesFile, &f); err != nil {
		return nil, err
	}

	natures := make(map[Nature]NatureModifier, len(f.Natures))
	for name, coeffs := range f.Natures {
		n, ok := ParseNature(name)
		if !ok {
			return nil, fmt.Errorf("dex: unknown nature %q", name)
		}
		mod := NeutralModifier()
		for stat, c := range coeffs {
			switch stat {
			case "attack":
				mod.Attack = c
			case "defense":
				mod.Defense = c
			case "sp_attack":
				mod.SpAttack = c
			case "sp_defense":
				mod.SpDefense = c
			case "speed":
				mod.Speed = c
			default:
				return nil, fmt.Errorf("dex: nature %q: unknown stat %q", name, stat)
			}
		}
		natures[n] = mod
	}
	return natures, nil
}

func readChart(fsys fs.FS) (TypeChart, error) {
	var f yamlChartFile
	if err := readYAML(fsys, TypeChartFile, &f); err != nil {
		return nil, err
	}

	chart := make(TypeChart, len(f.Chart))
	for atkName, row := range f.Chart {
		atk, ok := ParseElementType(atkName)
		if !ok {
			return nil, fmt.Errorf("dex: chart: unknown type %q", atkName)
		}
		chart[atk] = make(map[ElementType]float64, len(row))
		for defName, m := range row {
			def, ok := ParseElementType(defName)
			if !ok {
				return nil, fmt.Errorf("dex: chart: %s: unknown type %q", atkName, defName)
			}
			chart[atk][def] = m
		}
	}
	return chart, nil
}

func readZones(fsys fs.FS) ([]Zone, error) {
	var f yamlZonesFile
	if err := readYAML(fsys, ZonesFile, &f); err != nil {
		return nil, err
	}

	list := make([]Zone, 0, len(f.Zones))
	for _, yz := range f.Zones {
		z := Zone{ID: yz.ID, Name: yz.Name, Rate: yz.Rate, Layout: yz.Layout}
		for _, e := range yz.Entries {
			z.Entries = append(z.Entries, ZoneEntry{
				SpeciesID: e.Species,
				MinLevel:  e.MinLevel,
				MaxLevel:  e.MaxLevel,
				Weight:    e.Weight,
			})
		}
		list = append(list, z)
	}
	return list, nil
}
