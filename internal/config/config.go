// Package config provides YAML-based engine tunables with environment
// overrides for the battle engine.
package config

import "fmt"

// EngineConfig contains every tunable of the battle engine.
type EngineConfig struct {
	Battle    BattleConfig    `yaml:"battle"`
	Monster   MonsterConfig   `yaml:"monster"`
	Encounter EncounterConfig `yaml:"encounter"`
	Log       LogConfig       `yaml:"log"`
}

// BattleConfig defines damage and turn-resolution parameters.
type BattleConfig struct {
	CritChance     float64 `yaml:"crit_chance" env:"MONSTERS_CRIT_CHANCE"`
	CritMultiplier float64 `yaml:"crit_multiplier"`
	STABMultiplier float64 `yaml:"stab_multiplier"`
	SpreadMin      float64 `yaml:"spread_min"`
	SpreadMax      float64 `yaml:"spread_max"`
	EscapeChance   float64 `yaml:"escape_chance" env:"MONSTERS_ESCAPE_CHANCE"`
	SwitchPriority int     `yaml:"switch_priority"`
	ItemPriority   int     `yaml:"item_priority"`
	RunPriority    int     `yaml:"run_priority"`
}

// MonsterConfig defines instance generation parameters.
type MonsterConfig struct {
	ShinyOdds      int `yaml:"shiny_odds" env:"MONSTERS_SHINY_ODDS"` // 1 in N
	StarterIVFloor int `yaml:"starter_iv_floor" env:"MONSTERS_STARTER_IV_FLOOR"`
	StarterLevel   int `yaml:"starter_level"`
}

// EncounterConfig defines wild-encounter escalation.
type EncounterConfig struct {
	StepBonus   float64 `yaml:"step_bonus"`
	MaxBonus    float64 `yaml:"max_bonus"`
	DefaultZone string  `yaml:"default_zone" env:"MONSTERS_ZONE"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level" env:"MONSTERS_LOG_LEVEL"`
}

// Validate rejects tunables outside their meaningful range.
func (c EngineConfig) Validate() error {
	b := c.Battle
	switch {
	case b.CritChance < 0 || b.CritChance > 1:
		return fmt.Errorf("config: battle.crit_chance %v not in [0,1]", b.CritChance)
	case b.CritMultiplier < 1:
		return fmt.Errorf("config: battle.crit_multiplier %v below 1", b.CritMultiplier)
	case b.STABMultiplier < 1:
		return fmt.Errorf("config: battle.stab_multiplier %v below 1", b.STABMultiplier)
	case b.SpreadMin <= 0 || b.SpreadMax < b.SpreadMin || b.SpreadMax > 1:
		return fmt.Errorf("config: battle spread [%v,%v] invalid", b.SpreadMin, b.SpreadMax)
	case b.EscapeChance < 0 || b.EscapeChance > 1:
		return fmt.Errorf("config: battle.escape_chance %v not in [0,1]", b.EscapeChance)
	}

	m := c.Monster
	switch {
	case m.ShinyOdds < 0:
		return fmt.Errorf("config: monster.shiny_odds %d is negative", m.ShinyOdds)
	case m.StarterIVFloor < 0 || m.StarterIVFloor > 31:
		return fmt.Errorf("config: monster.starter_iv_floor %d not in [0,31]", m.StarterIVFloor)
	case m.StarterLevel < 1:
		return fmt.Errorf("config: monster.starter_level %d below 1", m.StarterLevel)
	}

	e := c.Encounter
	if e.StepBonus < 0 || e.MaxBonus < 0 || e.MaxBonus > 1 {
		return fmt.Errorf("config: encounter bonus %v/%v invalid", e.StepBonus, e.MaxBonus)
	}
	return nil
}
