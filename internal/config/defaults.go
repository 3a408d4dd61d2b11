package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Battle: BattleConfig{
			CritChance:     0.0625, // 1/16
			CritMultiplier: 1.5,
			STABMultiplier: 1.5,
			SpreadMin:      0.85,
			SpreadMax:      1.0,
			EscapeChance:   0.8,
			SwitchPriority: 6,
			ItemPriority:   5,
			RunPriority:    0,
		},
		Monster: MonsterConfig{
			ShinyOdds:      4096,
			StarterIVFloor: 10,
			StarterLevel:   5,
		},
		Encounter: EncounterConfig{
			StepBonus:   0.03,
			MaxBonus:    0.4,
			DefaultZone: "grass-area",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default engine YAML.
func DefaultYAML() []byte {
	return defaultEngineYAML
}
